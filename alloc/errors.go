package alloc

import "errors"

var (
	// ErrBadLayout indicates an alignment that is zero or not a power of two.
	ErrBadLayout = errors.New("alloc: alignment must be a nonzero power of two")

	// ErrExhausted indicates the backing region has too little capacity left for the request.
	ErrExhausted = errors.New("alloc: backing region exhausted")

	// ErrUnsupportedAlign indicates the requested alignment exceeds what the strategy supports.
	ErrUnsupportedAlign = errors.New("alloc: alignment exceeds strategy maximum")

	// ErrNotInitialised indicates a heap-backed strategy was used before Init bound it to a region.
	ErrNotInitialised = errors.New("alloc: strategy has no backing region")

	// ErrSlabReservation indicates the operating system refused to reserve the backing slab.
	ErrSlabReservation = errors.New("alloc: slab reservation failed")

	// ErrSlabClaimed indicates a chunk factory was asked for a second slab.
	ErrSlabClaimed = errors.New("alloc: slab already claimed")

	// ErrBadClassTable indicates a block size table that is empty, unordered, or not powers of two.
	ErrBadClassTable = errors.New("alloc: invalid block size table")

	// ErrUnknownProfile indicates a profile name that does not match any strategy.
	ErrUnknownProfile = errors.New("alloc: unknown profile")
)

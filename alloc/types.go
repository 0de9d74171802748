package alloc

import (
	"fmt"
	"unsafe"

	"github.com/joshuapare/memkit/internal/format"
)

// Layout describes an allocation request: Size bytes aligned to Align.
// Align is always a nonzero power of two; NewLayout enforces that at the
// caller boundary and strategies do not re-validate it.
type Layout struct {
	Size  uintptr
	Align uintptr
}

// NewLayout validates align and returns the request.
func NewLayout(size, align uintptr) (Layout, error) {
	if !format.IsPowerOfTwo(align) {
		return Layout{}, fmt.Errorf("%w: got %d", ErrBadLayout, align)
	}
	return Layout{Size: size, Align: align}, nil
}

// LayoutOf returns the layout of a value of type T.
func LayoutOf[T any]() Layout {
	var v T
	return Layout{Size: unsafe.Sizeof(v), Align: unsafe.Alignof(v)}
}

// Strategy is the contract every allocation strategy satisfies.
//
// Implementations:
//   - Simple: fixed 128 KiB arena carved top-down with one atomic counter
//   - Bump: monotonic pointer over a region bound by Init, never reuses
//   - FixedSizeBlock: size-classed free lists in front of a fallback Strategy
//
// Strategies are not safe for concurrent use on their own (Simple's counter
// is the one exception). Switchable serializes access.
type Strategy interface {
	// Initialised reports whether the strategy has a usable backing region.
	Initialised() bool

	// Allocated returns the bytes outstanding by this strategy's own accounting.
	Allocated() uintptr

	// Init binds the strategy to [heapStart, heapStart+heapSize).
	// Only the first call has an effect. Strategies without a heap ignore it.
	Init(heapStart unsafe.Pointer, heapSize uintptr)

	// Alloc serves the request or returns a nil pointer and an error. It never
	// partially serves a request.
	Alloc(l Layout) (unsafe.Pointer, error)

	// Dealloc reclaims a block previously returned by Alloc on the same
	// instance for a compatible layout. Anything else is undefined behavior.
	Dealloc(ptr unsafe.Pointer, l Layout)
}

// Slab is one contiguous region of OS-backed memory.
type Slab struct {
	Base unsafe.Pointer
	Size uintptr

	// Preferred is the base address that was asked for, zero if none.
	Preferred uintptr
}

// Relocated reports whether the OS placed the slab somewhere other than the
// preferred base.
func (s Slab) Relocated() bool {
	return s.Preferred != 0 && uintptr(s.Base) != s.Preferred
}

// ChunkFactory hands out the backing slab for a strategy.
type ChunkFactory interface {
	// Create obtains one slab. An OS failure is reported as an error wrapping
	// ErrSlabReservation; a returned slab always has a non-nil base.
	Create() (Slab, error)
}

// Provider is the memory-provider contract consumed by the rest of a process.
type Provider interface {
	Alloc(l Layout) (unsafe.Pointer, error)
	Dealloc(ptr unsafe.Pointer, l Layout)
	Allocated() uintptr
}

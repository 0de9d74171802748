// Package format houses the low-level arithmetic shared by the allocator
// strategies: size units and power-of-two alignment helpers. Nothing here
// allocates, so it is safe to call from inside allocator bookkeeping.
package format

// Size units.
const (
	KiB uintptr = 1 << 10
	MiB uintptr = 1 << 20
	GiB uintptr = 1 << 30
	TiB uint64  = 1 << 40
)

// PageSize is the granularity assumed for OS reservations when the platform
// cannot be asked.
const PageSize uintptr = 4096

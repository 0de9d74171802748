package memory

import (
	"unsafe"

	"github.com/joshuapare/memkit/alloc"
)

// provider is the process-wide allocator. Its concrete type depends on the
// build profile; see profile_*.go.
var provider = newProvider()

// Default returns the process-wide provider.
func Default() alloc.Provider {
	return provider
}

// Profile returns the strategy profile compiled into this binary.
func Profile() alloc.Profile {
	return profile
}

// Allocate returns size bytes aligned to align from the process-wide provider.
// align must be a nonzero power of two.
func Allocate(size, align uintptr) (unsafe.Pointer, error) {
	l, err := alloc.NewLayout(size, align)
	if err != nil {
		return nil, err
	}
	return provider.Alloc(l)
}

// Deallocate returns a block obtained from Allocate with the same size and align.
func Deallocate(ptr unsafe.Pointer, size, align uintptr) {
	if ptr == nil {
		return
	}
	provider.Dealloc(ptr, alloc.Layout{Size: size, Align: align})
}

// Allocated reports the active strategy's outstanding bytes.
func Allocated() uintptr {
	return provider.Allocated()
}

//go:build linux || darwin

package vmem

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// PageSize returns the OS page size.
func PageSize() int {
	return unix.Getpagesize()
}

// Reserve maps size bytes of private anonymous read-write memory, asking the
// kernel to place it at preferredBase. The address is only a hint: the kernel
// may place the mapping elsewhere, in which case the returned base differs.
func Reserve(preferredBase, size uintptr) (unsafe.Pointer, error) {
	if size == 0 {
		return nil, ErrZeroSize
	}
	length, ok := roundToPage(size)
	if !ok {
		return nil, fmt.Errorf("vmem: size %d overflows page rounding", size)
	}

	// preferredBase is outside the Go heap; it is only passed to the kernel.
	hint := unsafe.Pointer(preferredBase) //nolint:govet
	base, err := unix.MmapPtr(
		-1,
		0,
		hint,
		length,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON,
	)
	if err != nil {
		return nil, fmt.Errorf("vmem: mmap %d bytes at %#x: %w", length, preferredBase, err)
	}
	return base, nil
}

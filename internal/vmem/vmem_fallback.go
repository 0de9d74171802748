//go:build !linux && !darwin && !windows

package vmem

import (
	"os"
	"unsafe"
)

// PageSize returns the OS page size.
func PageSize() int {
	return os.Getpagesize()
}

// Reserve is unavailable without a wired virtual-memory facility.
func Reserve(preferredBase, size uintptr) (unsafe.Pointer, error) {
	if size == 0 {
		return nil, ErrZeroSize
	}
	return nil, ErrUnsupported
}

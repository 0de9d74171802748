//go:build windows

package vmem

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

// PageSize returns the OS page size.
func PageSize() int {
	return os.Getpagesize()
}

// Reserve reserves and commits size bytes of read-write memory with a single
// VirtualAlloc call at preferredBase. Windows refuses a specific address that is
// already taken, so a second call lets the system pick the base.
func Reserve(preferredBase, size uintptr) (unsafe.Pointer, error) {
	if size == 0 {
		return nil, ErrZeroSize
	}
	length, ok := roundToPage(size)
	if !ok {
		return nil, fmt.Errorf("vmem: size %d overflows page rounding", size)
	}

	const kind = windows.MEM_RESERVE | windows.MEM_COMMIT
	addr, err := windows.VirtualAlloc(preferredBase, length, kind, windows.PAGE_READWRITE)
	if err != nil && preferredBase != 0 {
		addr, err = windows.VirtualAlloc(0, length, kind, windows.PAGE_READWRITE)
	}
	if err != nil {
		return nil, fmt.Errorf("vmem: VirtualAlloc %d bytes at %#x: %w", length, preferredBase, err)
	}
	if addr == 0 {
		return nil, fmt.Errorf("vmem: VirtualAlloc %d bytes returned a null base", length)
	}
	// The region is owned by the OS, not the Go heap.
	return unsafe.Pointer(addr), nil //nolint:govet
}

// Package vmem reserves and commits anonymous read-write memory directly from
// the operating system. It is the only place in the module that talks to the
// host's virtual-memory facility.
//
// Regions are never handed back: there is no unmap path.
package vmem

import (
	"errors"

	"github.com/joshuapare/memkit/internal/format"
)

var (
	// ErrZeroSize indicates a reservation of zero bytes was requested.
	ErrZeroSize = errors.New("vmem: zero-sized reservation")

	// ErrUnsupported indicates the platform has no virtual-memory facility wired in.
	ErrUnsupported = errors.New("vmem: reservation not supported on this platform")
)

// roundToPage rounds size up to the platform page size.
func roundToPage(size uintptr) (uintptr, bool) {
	page := uintptr(PageSize())
	if !format.IsPowerOfTwo(page) {
		page = format.PageSize
	}
	return format.AlignUpChecked(size, page)
}

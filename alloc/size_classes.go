package alloc

import (
	"fmt"

	"github.com/joshuapare/memkit/internal/format"
)

// DefaultBlockSizes is the block size table used when none is supplied.
// Each block's size is also its alignment, so a block of class c always sits
// on a c-byte boundary.
var DefaultBlockSizes = [...]uintptr{8, 16, 32, 64, 128, 256, 512, 1024, 2048}

// sizeClassTable holds the ascending block sizes served from free lists.
type sizeClassTable struct {
	sizes []uintptr
}

// newSizeClassTable copies sizes and checks they are ascending powers of two.
// Whether a class can hold a free-list node is checked later, on first use.
func newSizeClassTable(sizes []uintptr) (*sizeClassTable, error) {
	if len(sizes) == 0 {
		return nil, fmt.Errorf("%w: no classes", ErrBadClassTable)
	}
	table := &sizeClassTable{sizes: make([]uintptr, len(sizes))}
	for i, s := range sizes {
		if !format.IsPowerOfTwo(s) {
			return nil, fmt.Errorf("%w: class %d size %d is not a power of two", ErrBadClassTable, i, s)
		}
		if i > 0 && s <= sizes[i-1] {
			return nil, fmt.Errorf("%w: class %d size %d does not ascend", ErrBadClassTable, i, s)
		}
		table.sizes[i] = s
	}
	return table, nil
}

// classFor returns the index of the smallest class that fits
// max(l.Size, l.Align). ok is false when the request is larger than the
// largest class.
func (t *sizeClassTable) classFor(l Layout) (int, bool) {
	need := max(l.Size, l.Align)
	for i, s := range t.sizes {
		if s >= need {
			return i, true
		}
	}
	return -1, false
}

// blockSize returns the size (and alignment) of class i.
func (t *sizeClassTable) blockSize(i int) uintptr {
	return t.sizes[i]
}

// NumClasses returns the number of size classes.
func (t *sizeClassTable) NumClasses() int {
	return len(t.sizes)
}

// Largest returns the biggest block size served from free lists.
func (t *sizeClassTable) Largest() uintptr {
	return t.sizes[len(t.sizes)-1]
}

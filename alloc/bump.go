package alloc

import (
	"unsafe"

	"github.com/joshuapare/memkit/internal/buf"
	"github.com/joshuapare/memkit/internal/format"
)

// Bump is an append-only allocator over a region bound by Init.
//
// Key characteristics:
//   - O(1) allocation: align the cursor up, advance it past the block
//   - Zero memory overhead: no free lists, no headers
//   - Dealloc is a no-op; freed blocks become dead space
//
// Bump is the fallback that FixedSizeBlock mints fresh blocks from.
type Bump struct {
	start unsafe.Pointer
	size  uintptr

	// next is the offset from start where the next block may begin.
	next uintptr

	// allocated is the cumulative number of bytes handed out.
	allocated uintptr

	allocs uint64
}

// NewBump returns an uninitialised Bump. It serves nothing until Init.
func NewBump() *Bump {
	return &Bump{}
}

// Initialised reports whether Init bound a region.
func (b *Bump) Initialised() bool {
	return b.start != nil
}

// Allocated returns the cumulative bytes handed out, excluding alignment padding.
func (b *Bump) Allocated() uintptr {
	return b.allocated
}

// Remaining returns the bytes between the cursor and the end of the region.
func (b *Bump) Remaining() uintptr {
	return b.size - b.next
}

// Allocations returns how many blocks have been handed out.
func (b *Bump) Allocations() uint64 {
	return b.allocs
}

// Init binds the region. Later calls, and calls with an empty region, are ignored.
func (b *Bump) Init(heapStart unsafe.Pointer, heapSize uintptr) {
	if b.start != nil || heapStart == nil || heapSize == 0 {
		return
	}
	b.start = heapStart
	b.size = heapSize
	b.next = 0
}

// Alloc places l at the first suitably aligned address past the cursor.
// Running past the end of the region fails without moving the cursor.
func (b *Bump) Alloc(l Layout) (unsafe.Pointer, error) {
	if b.start == nil {
		return nil, ErrNotInitialised
	}
	base := uintptr(b.start)
	addr, ok := format.AlignUpChecked(base+b.next, l.Align)
	if !ok {
		return nil, ErrExhausted
	}
	end, ok := buf.Fits(b.size, addr-base, l.Size)
	if !ok {
		return nil, ErrExhausted
	}
	off := addr - base

	b.next = end
	b.allocated += l.Size
	b.allocs++
	return unsafe.Add(b.start, off), nil
}

// Dealloc is a no-op. Bump never reuses memory.
func (b *Bump) Dealloc(unsafe.Pointer, Layout) {}

// Compile-time interface check
var _ Strategy = (*Bump)(nil)

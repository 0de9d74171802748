package alloc

import (
	"context"
	"fmt"
	"log/slog"
	"unsafe"
)

// freeNode is written straight into the memory of a freed block. The block's
// first word becomes the link to the previous head of its class list.
//
// The link is an integer offset, never a Go pointer: blocks live in memory the
// garbage collector does not track.
type freeNode struct {
	next link
}

// link encodes a block address as its offset from the strategy's anchor plus
// one. Zero is the end of a list. Blocks are at least word aligned, so no
// real offset encodes to zero.
type link uintptr

// FixedSizeBlock serves requests from per-class singly-linked free lists and
// mints new blocks from a fallback strategy.
//
// A request maps to the smallest class whose size is >= max(size, align).
// Freed blocks are never returned to the fallback: they are pushed onto their
// class list and handed out again to the next request of that class. Requests
// bigger than the largest class bypass this layer entirely and go to the
// fallback, for both Alloc and Dealloc.
//
// Allocated reports the fallback's count only. Blocks parked on free lists
// and blocks re-served from them do not change it.
type FixedSizeBlock[F Strategy] struct {
	table *sizeClassTable

	// heads[i] is the top of class i's free list, zero when empty.
	heads []link

	// anchor is the first block address this strategy saw. Links are stored
	// relative to it and decoded with unsafe.Add, so every decoded address is
	// derived from a real pointer into the same region.
	anchor unsafe.Pointer

	fallback F

	stats blockStats
}

// blockStats holds counters for testing and instrumentation.
type blockStats struct {
	freeBlocks []int // free-list length per class
	reused     uint64
	minted     uint64
	recycled   uint64
	forwarded  uint64
	forwardOut uint64
}

// BlockStats is a snapshot of FixedSizeBlock counters.
type BlockStats struct {
	ClassSizes []uintptr // block size per class
	FreeBlocks []int     // blocks parked on each class list

	Reused        uint64 // Alloc calls served from a free list
	Minted        uint64 // fresh class blocks taken from the fallback
	Recycled      uint64 // Dealloc calls that pushed onto a free list
	Forwarded     uint64 // oversize Alloc calls passed to the fallback
	ForwardedFree uint64 // oversize Dealloc calls passed to the fallback
}

// NewFixedSizeBlock wraps fallback with free lists for the given block sizes.
// A nil sizes slice selects DefaultBlockSizes.
func NewFixedSizeBlock[F Strategy](fallback F, sizes []uintptr) (*FixedSizeBlock[F], error) {
	if sizes == nil {
		sizes = DefaultBlockSizes[:]
	}
	table, err := newSizeClassTable(sizes)
	if err != nil {
		return nil, err
	}
	return &FixedSizeBlock[F]{
		table:    table,
		heads:    make([]link, table.NumClasses()),
		fallback: fallback,
		stats:    blockStats{freeBlocks: make([]int, table.NumClasses())},
	}, nil
}

// Fallback returns the wrapped strategy.
func (f *FixedSizeBlock[F]) Fallback() F {
	return f.fallback
}

// Initialised delegates to the fallback.
func (f *FixedSizeBlock[F]) Initialised() bool {
	return f.fallback.Initialised()
}

// Allocated delegates to the fallback.
func (f *FixedSizeBlock[F]) Allocated() uintptr {
	return f.fallback.Allocated()
}

// Init binds the fallback to the region.
func (f *FixedSizeBlock[F]) Init(heapStart unsafe.Pointer, heapSize uintptr) {
	f.fallback.Init(heapStart, heapSize)
}

// Alloc pops the class free list, or mints a (size, size) block from the
// fallback when the list is empty. Only fallback failures propagate.
func (f *FixedSizeBlock[F]) Alloc(l Layout) (unsafe.Pointer, error) {
	idx, ok := f.table.classFor(l)
	if !ok {
		f.stats.forwarded++
		if lg := logger(); lg.Enabled(context.Background(), slog.LevelDebug) {
			lg.Debug("alloc: oversize request forwarded", "size", l.Size, "align", l.Align)
		}
		return f.fallback.Alloc(l)
	}

	if head := f.heads[idx]; head != 0 {
		ptr := f.decode(head)
		node := (*freeNode)(ptr)
		f.heads[idx] = node.next
		node.next = 0
		f.stats.freeBlocks[idx]--
		f.stats.reused++
		return ptr, nil
	}

	size := f.table.blockSize(idx)
	ptr, err := f.fallback.Alloc(Layout{Size: size, Align: size})
	if err != nil {
		return nil, err
	}
	if f.anchor == nil {
		f.anchor = ptr
	}
	f.stats.minted++
	return ptr, nil
}

// Dealloc pushes ptr onto its class free list, or forwards oversize blocks to
// the fallback unchanged.
//
// Panics if the class is too small or too loosely aligned to hold a free-list
// node: that is a broken block size table, not a runtime condition.
func (f *FixedSizeBlock[F]) Dealloc(ptr unsafe.Pointer, l Layout) {
	idx, ok := f.table.classFor(l)
	if !ok {
		f.stats.forwardOut++
		f.fallback.Dealloc(ptr, l)
		return
	}

	size := f.table.blockSize(idx)
	if unsafe.Sizeof(freeNode{}) > size || unsafe.Alignof(freeNode{}) > size {
		panic(fmt.Sprintf(
			"alloc: block class %d (%d bytes) cannot hold a free-list node (%d bytes, align %d)",
			idx, size, unsafe.Sizeof(freeNode{}), unsafe.Alignof(freeNode{}),
		))
	}

	if f.anchor == nil {
		f.anchor = ptr
	}
	node := (*freeNode)(ptr)
	node.next = f.heads[idx]
	f.heads[idx] = f.encode(ptr)
	f.stats.freeBlocks[idx]++
	f.stats.recycled++
}

func (f *FixedSizeBlock[F]) encode(ptr unsafe.Pointer) link {
	return link(uintptr(ptr)-uintptr(f.anchor)) + 1
}

func (f *FixedSizeBlock[F]) decode(l link) unsafe.Pointer {
	// Offsets below the anchor wrap; converting to int restores the sign.
	return unsafe.Add(f.anchor, int(uintptr(l-1)))
}

// Stats returns a snapshot of the free-list counters.
func (f *FixedSizeBlock[F]) Stats() BlockStats {
	return BlockStats{
		ClassSizes:    append([]uintptr(nil), f.table.sizes...),
		FreeBlocks:    append([]int(nil), f.stats.freeBlocks...),
		Reused:        f.stats.reused,
		Minted:        f.stats.minted,
		Recycled:      f.stats.recycled,
		Forwarded:     f.stats.forwarded,
		ForwardedFree: f.stats.forwardOut,
	}
}

// ClassFor reports the block size a layout maps to, and false when the
// layout is forwarded to the fallback.
func (f *FixedSizeBlock[F]) ClassFor(l Layout) (uintptr, bool) {
	idx, ok := f.table.classFor(l)
	if !ok {
		return 0, false
	}
	return f.table.blockSize(idx), true
}

// Compile-time interface check
var _ Strategy = (*FixedSizeBlock[*Bump])(nil)

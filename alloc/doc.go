// Package alloc provides pluggable allocation strategies backed by memory
// obtained directly from the operating system.
//
// # Overview
//
// A process-wide memory provider answers two requests: "give me N bytes
// aligned to A" and "take back this block". This package supplies the
// strategies that answer them and the coordinator that binds a strategy to a
// real memory region.
//
// # Strategy Interface
//
// Every strategy implements Strategy:
//
//   - Initialised(): whether a backing region is bound
//   - Allocated(): bytes outstanding by the strategy's own accounting
//   - Init(start, size): bind a region (no-op for strategies without one)
//   - Alloc(layout): serve a request or fail, never partially
//   - Dealloc(ptr, layout): take a block back
//
// # Implementations
//
// Simple: lock-free bump-down arena
//
//   - fixed 128 KiB buffer, pre-filled with 0x55
//   - one atomic remaining-capacity counter, compare-and-swap retry loop
//   - alignments up to 4096
//   - Dealloc is a no-op; Allocated never decreases
//
// Bump: append-only allocator over a slab
//
//   - align the cursor up, advance it
//   - Dealloc is a no-op
//
// FixedSizeBlock: size-classed free lists over a fallback
//
//   - 9 classes: 8, 16, 32, 64, 128, 256, 512, 1024, 2048 bytes
//   - freed blocks are threaded onto an intrusive per-class list
//   - O(1) reuse; new blocks minted from the fallback
//   - requests above 2048 bytes go straight to the fallback
//
// # Coordinator
//
// Switchable owns one strategy and one ChunkFactory. The first call that
// finds the strategy uninitialised pulls a slab from the factory:
//
//	fsb, err := alloc.NewFixedSizeBlock(alloc.NewBump(), nil)
//	if err != nil {
//	    return err
//	}
//	a := alloc.NewSwitchable(fsb, alloc.NewVirtualMemoryChunkFactory(alloc.DefaultFactoryConfig()))
//
//	l, _ := alloc.NewLayout(16, 8)
//	ptr, err := a.Alloc(l)
//	if err != nil {
//	    return err
//	}
//	a.Dealloc(ptr, l)
//
// # Size Classes
//
// A request maps to the smallest class whose size is at least
// max(size, align):
//
//	Alloc(16, 8)   -> class 16
//	Alloc(3, 32)   -> class 32
//	Alloc(2049, 1) -> fallback
//
// # Thread Safety
//
// Strategies are not safe for concurrent use, except that Simple's counter is
// atomic. Switchable serializes all calls with a mutex.
//
// # Related Packages
//
//   - github.com/joshuapare/memkit/internal/vmem: OS reservation call
//   - github.com/joshuapare/memkit/pkg/memory: process-wide provider
package alloc

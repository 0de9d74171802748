package alloc

import (
	"sync/atomic"
	"unsafe"

	"github.com/joshuapare/memkit/internal/format"
)

const (
	// SimpleArenaSize is the fixed capacity of a Simple arena.
	SimpleArenaSize = 128 * format.KiB

	// MaxSupportedAlign is the largest alignment Simple can serve.
	MaxSupportedAlign uintptr = 4096

	// arenaFill is written over the whole arena up front so reads of
	// never-written memory are recognizable in a debugger.
	arenaFill byte = 0x55
)

// Simple is a lock-free bump-down arena over a fixed 128 KiB buffer.
//
// The only mutable state is the remaining-capacity counter. Allocations move
// it down with a compare-and-swap retry loop, so the successful allocations
// form one linear order even under contention. Dealloc never gives capacity
// back: the arena is meant to leak.
//
// A Simple must not be copied after first use.
type Simple struct {
	// buf is over-sized by MaxSupportedAlign so the arena can start on a
	// MaxSupportedAlign boundary; offsets masked down then stay aligned.
	buf   [SimpleArenaSize + MaxSupportedAlign]byte
	arena unsafe.Pointer

	// remaining counts down from SimpleArenaSize; the arena top is arena+remaining.
	remaining atomic.Uintptr
}

// NewSimple returns an arena pre-filled with the 0x55 sentinel pattern.
func NewSimple() *Simple {
	s := &Simple{}
	for i := range s.buf {
		s.buf[i] = arenaFill
	}
	start := uintptr(unsafe.Pointer(&s.buf[0]))
	s.arena = unsafe.Pointer(&s.buf[format.AlignUp(start, MaxSupportedAlign)-start])
	s.remaining.Store(SimpleArenaSize)
	return s
}

// Initialised is always true: the arena is part of the value.
func (s *Simple) Initialised() bool {
	return true
}

// Allocated returns capacity minus remaining. It never decreases.
func (s *Simple) Allocated() uintptr {
	return SimpleArenaSize - s.remaining.Load()
}

// Remaining returns the bytes left below the current arena top.
func (s *Simple) Remaining() uintptr {
	return s.remaining.Load()
}

// Init is a no-op; Simple never uses a slab.
func (s *Simple) Init(unsafe.Pointer, uintptr) {}

// Alloc carves l off the top of the arena.
//
// The new top is (remaining - size) rounded down to the alignment and is
// published with a single compare-and-swap; contention retries the whole
// read-compute-publish step. A request larger than what remains fails
// without touching the counter.
func (s *Simple) Alloc(l Layout) (unsafe.Pointer, error) {
	if l.Align > MaxSupportedAlign {
		return nil, ErrUnsupportedAlign
	}
	for {
		remaining := s.remaining.Load()
		if l.Size > remaining {
			return nil, ErrExhausted
		}
		top := format.AlignDown(remaining-l.Size, l.Align)
		if s.remaining.CompareAndSwap(remaining, top) {
			return unsafe.Add(s.arena, top), nil
		}
	}
}

// Dealloc is a no-op.
func (s *Simple) Dealloc(unsafe.Pointer, Layout) {}

// Compile-time interface check
var _ Strategy = (*Simple)(nil)

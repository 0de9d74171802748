package alloc

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/internal/format"
)

// ============================================================================
// Test Helpers
// ============================================================================

// heapFactory hands out a slab carved from a Go byte slice, page aligned.
// It stands in for the OS in unit tests.
type heapFactory struct {
	size  uintptr
	buf   []byte
	calls int
	err   error
}

func newHeapFactory(size uintptr) *heapFactory {
	return &heapFactory{size: size}
}

func (f *heapFactory) Create() (Slab, error) {
	f.calls++
	if f.err != nil {
		return Slab{}, f.err
	}
	f.buf = make([]byte, f.size+format.PageSize)
	start := uintptr(unsafe.Pointer(&f.buf[0]))
	off := format.AlignUp(start, format.PageSize) - start
	return Slab{Base: unsafe.Pointer(&f.buf[off]), Size: f.size}, nil
}

// spyStrategy wraps a Bump and records every call that reaches it.
type spyStrategy struct {
	*Bump
	allocs   []Layout
	deallocs []Layout
}

func newSpy() *spyStrategy {
	return &spyStrategy{Bump: NewBump()}
}

func (s *spyStrategy) Alloc(l Layout) (unsafe.Pointer, error) {
	s.allocs = append(s.allocs, l)
	return s.Bump.Alloc(l)
}

func (s *spyStrategy) Dealloc(ptr unsafe.Pointer, l Layout) {
	s.deallocs = append(s.deallocs, l)
	s.Bump.Dealloc(ptr, l)
}

// initWith binds s to a fresh heap slab of the given size.
func initWith(t testing.TB, s Strategy, size uintptr) *heapFactory {
	t.Helper()
	f := newHeapFactory(size)
	slab, err := f.Create()
	require.NoError(t, err)
	s.Init(slab.Base, slab.Size)
	require.True(t, s.Initialised())
	return f
}

// newTestFixed returns a FixedSizeBlock over an initialised spy fallback.
func newTestFixed(t testing.TB, heap uintptr, sizes []uintptr) (*FixedSizeBlock[*spyStrategy], *heapFactory) {
	t.Helper()
	fsb, err := NewFixedSizeBlock(newSpy(), sizes)
	require.NoError(t, err)
	f := initWith(t, fsb, heap)
	return fsb, f
}

func layout(size, align uintptr) Layout {
	return Layout{Size: size, Align: align}
}

// fill writes b over [ptr, ptr+n).
func fill(ptr unsafe.Pointer, n uintptr, b byte) {
	mem := unsafe.Slice((*byte)(ptr), n)
	for i := range mem {
		mem[i] = b
	}
}

// requireFilled asserts every byte of [ptr, ptr+n) equals b.
func requireFilled(t testing.TB, ptr unsafe.Pointer, n uintptr, b byte) {
	t.Helper()
	mem := unsafe.Slice((*byte)(ptr), n)
	for i := range mem {
		require.Equal(t, b, mem[i], "byte %d of block %p corrupted", i, ptr)
	}
}

// span is a live [start, end) address range.
type span struct {
	start, end uintptr
}

func (s span) overlaps(o span) bool {
	return s.start < o.end && o.start < s.end
}

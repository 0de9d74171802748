package memory

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/alloc"
)

// heapFactory serves one page-aligned slab from a Go byte slice.
type heapFactory struct {
	size uintptr
	buf  []byte
}

func (f *heapFactory) Create() (alloc.Slab, error) {
	f.buf = make([]byte, f.size+4096)
	start := uintptr(unsafe.Pointer(&f.buf[0]))
	off := (start+4095)&^4095 - start
	return alloc.Slab{Base: unsafe.Pointer(&f.buf[off]), Size: f.size}, nil
}

// newTestProvider returns a fixed-size-block provider over a 1 MiB heap slab.
func newTestProvider(t testing.TB) *alloc.Switchable[*alloc.FixedSizeBlock[*alloc.Bump], *heapFactory] {
	t.Helper()
	return newSizedProvider(t, 1<<20)
}

// newSizedProvider returns a fixed-size-block provider over a heap slab of size bytes.
func newSizedProvider(t testing.TB, size uintptr) *alloc.Switchable[*alloc.FixedSizeBlock[*alloc.Bump], *heapFactory] {
	t.Helper()
	fsb, err := alloc.NewFixedSizeBlock(alloc.NewBump(), nil)
	require.NoError(t, err)
	return alloc.NewSwitchable(fsb, &heapFactory{size: size})
}

func blockStats(p *alloc.Switchable[*alloc.FixedSizeBlock[*alloc.Bump], *heapFactory]) alloc.BlockStats {
	var st alloc.BlockStats
	p.Inspect(func(s *alloc.FixedSizeBlock[*alloc.Bump]) { st = s.Stats() })
	return st
}

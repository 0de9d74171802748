package main

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

// newHeapProvider builds profile p over an in-memory slab.
func newHeapProvider(t *testing.T, p alloc.Profile, size uintptr) alloc.Provider {
	t.Helper()
	provider, err := alloc.New(p, &heapFactory{size: size})
	require.NoError(t, err)
	return provider
}

package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/alloc"
)

type failingFactory struct{}

func (failingFactory) Create() (alloc.Slab, error) {
	return alloc.Slab{}, errors.New("no memory")
}

func TestBuildInfo(t *testing.T) {
	s, err := DefaultConfig().Resolve()
	require.NoError(t, err)

	r, err := buildInfo(s, false, failingFactory{})
	require.NoError(t, err)
	assert.Equal(t, "fixed-size-block", r.Profile)
	assert.Equal(t, uintptr(64<<20), r.HeapSize)
	assert.Nil(t, r.Slab)

	f := &heapFactory{size: 1 << 16}
	r, err = buildInfo(s, true, f)
	require.NoError(t, err)
	require.NotNil(t, r.Slab)
	assert.Equal(t, uintptr(1<<16), r.Slab.Size)
	assert.False(t, r.Slab.Relocated, "no preferred base on the slab")

	_, err = buildInfo(s, true, failingFactory{})
	require.Error(t, err)
}

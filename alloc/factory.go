package alloc

import (
	"fmt"
	"strconv"
	"sync/atomic"
	"unsafe"

	"github.com/joshuapare/memkit/internal/format"
	"github.com/joshuapare/memkit/internal/vmem"
)

// DefaultHeapSize is the size of the slab reserved from the OS.
const DefaultHeapSize = 64 * format.MiB

// FactoryConfig configures VirtualMemoryChunkFactory.
type FactoryConfig struct {
	// PreferredBase is the address asked of the OS. Zero lets the OS choose.
	PreferredBase uintptr

	// Size is the slab size in bytes.
	Size uintptr
}

// DefaultFactoryConfig returns a 64 MiB slab at 2 TiB, well clear of where
// the Go runtime and libc place their heaps. On 32-bit targets the OS picks
// the base.
func DefaultFactoryConfig() FactoryConfig {
	return FactoryConfig{PreferredBase: defaultPreferredBase(), Size: DefaultHeapSize}
}

func defaultPreferredBase() uintptr {
	if strconv.IntSize < 64 {
		return 0
	}
	tib := format.TiB
	return uintptr(2 * tib)
}

// VirtualMemoryChunkFactory reserves and commits one slab from the OS
// virtual-memory facility. It hands out at most one slab over its lifetime.
type VirtualMemoryChunkFactory struct {
	cfg     FactoryConfig
	claimed atomic.Bool

	// reserve is the OS call; tests replace it to simulate failures.
	reserve func(preferredBase, size uintptr) (unsafe.Pointer, error)
}

// NewVirtualMemoryChunkFactory returns a factory for cfg. A zero Size selects
// DefaultHeapSize.
func NewVirtualMemoryChunkFactory(cfg FactoryConfig) *VirtualMemoryChunkFactory {
	if cfg.Size == 0 {
		cfg.Size = DefaultHeapSize
	}
	return &VirtualMemoryChunkFactory{cfg: cfg, reserve: vmem.Reserve}
}

// Config returns the factory configuration.
func (f *VirtualMemoryChunkFactory) Config() FactoryConfig {
	return f.cfg
}

// Create issues the single reserve+commit request.
func (f *VirtualMemoryChunkFactory) Create() (Slab, error) {
	if !f.claimed.CompareAndSwap(false, true) {
		return Slab{}, ErrSlabClaimed
	}
	base, err := f.reserve(f.cfg.PreferredBase, f.cfg.Size)
	if err != nil {
		return Slab{}, fmt.Errorf("%w: %w", ErrSlabReservation, err)
	}
	if base == nil {
		return Slab{}, fmt.Errorf("%w: null base", ErrSlabReservation)
	}
	return Slab{Base: base, Size: f.cfg.Size, Preferred: f.cfg.PreferredBase}, nil
}

// Compile-time interface check
var _ ChunkFactory = (*VirtualMemoryChunkFactory)(nil)

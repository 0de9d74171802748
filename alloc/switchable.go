package alloc

import (
	"fmt"
	"sync"
	"unsafe"
)

// Switchable binds a Strategy to a ChunkFactory.
//
// The strategy's backing heap is set up lazily: the first Alloc or Dealloc
// that finds the strategy uninitialised asks the factory for a slab and hands
// it to Init. A failed reservation is remembered and returned from every later
// call; the factory is never asked twice.
//
// Every call runs under one mutex, so strategy code executes on at most one
// goroutine at a time.
type Switchable[S Strategy, F ChunkFactory] struct {
	mu       sync.Mutex
	strategy S
	factory  F
	initErr  error
}

// NewSwitchable returns a coordinator owning strategy and factory.
func NewSwitchable[S Strategy, F ChunkFactory](strategy S, factory F) *Switchable[S, F] {
	return &Switchable[S, F]{strategy: strategy, factory: factory}
}

// Alloc serves l from the strategy, initializing it first if needed.
func (a *Switchable[S, F]) Alloc(l Layout) (unsafe.Pointer, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ensureInit(); err != nil {
		return nil, err
	}
	ptr, err := a.strategy.Alloc(l)
	if err != nil {
		logger().Debug("alloc: request failed", "size", l.Size, "align", l.Align, "error", err)
		return nil, err
	}
	return ptr, nil
}

// Dealloc returns ptr to the strategy. If initialization fails the block is
// dropped: it cannot have come from this allocator.
func (a *Switchable[S, F]) Dealloc(ptr unsafe.Pointer, l Layout) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ensureInit(); err != nil {
		logger().Warn("alloc: dealloc dropped", "ptr", ptr, "error", err)
		return
	}
	a.strategy.Dealloc(ptr, l)
}

// Allocated passes through to the strategy's accounting.
func (a *Switchable[S, F]) Allocated() uintptr {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.strategy.Allocated()
}

// Initialised reports whether the strategy has a backing region.
func (a *Switchable[S, F]) Initialised() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.strategy.Initialised()
}

// InitErr returns the sticky initialization error, if any.
func (a *Switchable[S, F]) InitErr() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.initErr
}

// Inspect runs fn with the strategy while holding the lock. fn must not call
// back into a.
func (a *Switchable[S, F]) Inspect(fn func(S)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn(a.strategy)
}

// ensureInit must be called with a.mu held.
func (a *Switchable[S, F]) ensureInit() error {
	if a.initErr != nil {
		return a.initErr
	}
	if a.strategy.Initialised() {
		return nil
	}

	slab, err := a.factory.Create()
	if err != nil {
		a.initErr = fmt.Errorf("alloc: initialise strategy: %w", err)
		logger().Error("alloc: slab reservation failed", "error", err)
		return a.initErr
	}
	if slab.Base == nil || slab.Size == 0 {
		a.initErr = fmt.Errorf("alloc: initialise strategy: %w: empty slab", ErrSlabReservation)
		logger().Error("alloc: factory returned an empty slab", "size", slab.Size)
		return a.initErr
	}

	a.strategy.Init(slab.Base, slab.Size)
	if !a.strategy.Initialised() {
		a.initErr = fmt.Errorf("alloc: initialise strategy: %w", ErrNotInitialised)
		return a.initErr
	}
	logger().Info("alloc: slab bound",
		"base", slab.Base,
		"size", slab.Size,
		"relocated", slab.Relocated(),
	)
	return nil
}

// Compile-time interface check
var _ Provider = (*Switchable[*Simple, *VirtualMemoryChunkFactory])(nil)

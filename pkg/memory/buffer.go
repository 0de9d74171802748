package memory

import (
	"fmt"
	"math"

	"github.com/joshuapare/memkit/alloc"
)

// minBufferCap is the first capacity a Buffer grows to.
const minBufferCap = 8

// Buffer is a growable byte buffer whose storage comes from a Provider.
//
// Growth allocates a block twice as large, copies, and frees the old block;
// there is no in-place resize. The zero Buffer is not usable; call NewBuffer.
type Buffer struct {
	p    alloc.Provider
	data []byte
}

// NewBuffer returns an empty buffer drawing from p.
func NewBuffer(p alloc.Provider) *Buffer {
	return &Buffer{p: p}
}

// Append adds bs to the end of the buffer, growing it if needed. On error the
// buffer is unchanged.
func (b *Buffer) Append(bs ...byte) error {
	if err := b.Grow(len(bs)); err != nil {
		return err
	}
	b.data = append(b.data, bs...)
	return nil
}

// Grow makes room for at least n more bytes. A request the address space
// cannot hold fails with an error wrapping alloc.ErrExhausted and leaves the
// buffer unchanged.
func (b *Buffer) Grow(n int) error {
	if n < 0 {
		return fmt.Errorf("memory: negative grow %d", n)
	}
	if n > math.MaxInt-len(b.data) {
		return fmt.Errorf("%w: buffer of %d bytes cannot grow by %d", alloc.ErrExhausted, len(b.data), n)
	}
	need := len(b.data) + n
	if need <= cap(b.data) {
		return nil
	}

	newCap := max(cap(b.data), minBufferCap/2)
	for newCap < need {
		if newCap > math.MaxInt/2 {
			newCap = need
			break
		}
		newCap *= 2
	}
	next, err := Bytes(b.p, newCap)
	if err != nil {
		return err
	}
	next = next[:len(b.data)]
	copy(next, b.data)
	FreeBytes(b.p, b.data)
	b.data = next
	return nil
}

// Bytes returns the buffer contents. The slice is valid until the next
// Append, Grow or Release.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the number of bytes held.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Cap returns the current storage capacity.
func (b *Buffer) Cap() int {
	return cap(b.data)
}

// Reset empties the buffer but keeps its storage.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
}

// Release frees the storage. The buffer can be reused afterwards.
func (b *Buffer) Release() {
	FreeBytes(b.p, b.data)
	b.data = nil
}

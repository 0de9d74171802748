package memory

import (
	"unsafe"

	"github.com/joshuapare/memkit/alloc"
)

// Scalar lists the pointer-free types Box accepts.
type Scalar interface {
	~bool | ~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64 | ~complex64 | ~complex128
}

// Bytes returns an n-byte slice backed by p. The contents are not zeroed.
// A zero n returns nil without touching p.
func Bytes(p alloc.Provider, n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	ptr, err := p.Alloc(alloc.Layout{Size: uintptr(n), Align: 1})
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(ptr), n), nil
}

// FreeBytes returns a slice obtained from Bytes. The full capacity is released.
func FreeBytes(p alloc.Provider, b []byte) {
	if cap(b) == 0 {
		return
	}
	p.Dealloc(unsafe.Pointer(unsafe.SliceData(b)), alloc.Layout{Size: uintptr(cap(b)), Align: 1})
}

// String copies s into storage backed by p.
func String(p alloc.Provider, s string) (string, error) {
	b, err := Bytes(p, len(s))
	if err != nil {
		return "", err
	}
	copy(b, s)
	return unsafe.String(unsafe.SliceData(b), len(b)), nil
}

// FreeString releases a string obtained from String.
func FreeString(p alloc.Provider, s string) {
	if len(s) == 0 {
		return
	}
	p.Dealloc(unsafe.Pointer(unsafe.StringData(s)), alloc.Layout{Size: uintptr(len(s)), Align: 1})
}

// Box stores v in memory backed by p and returns a pointer to it.
func Box[T Scalar](p alloc.Provider, v T) (*T, error) {
	ptr, err := p.Alloc(alloc.LayoutOf[T]())
	if err != nil {
		return nil, err
	}
	t := (*T)(ptr)
	*t = v
	return t, nil
}

// Unbox releases a pointer obtained from Box.
func Unbox[T Scalar](p alloc.Provider, t *T) {
	if t == nil {
		return
	}
	p.Dealloc(unsafe.Pointer(t), alloc.LayoutOf[T]())
}

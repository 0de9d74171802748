package alloc

import (
	"testing"
)

func BenchmarkSimple_Alloc(b *testing.B) {
	l := layout(16, 8)
	s := NewSimple()
	b.ReportAllocs()
	for b.Loop() {
		if _, err := s.Alloc(l); err != nil {
			s = NewSimple()
		}
	}
}

func BenchmarkFixedSizeBlock_AllocFree(b *testing.B) {
	fsb, err := NewFixedSizeBlock(NewBump(), nil)
	if err != nil {
		b.Fatal(err)
	}
	initWith(b, fsb, 1<<20)

	l := layout(64, 8)
	b.ReportAllocs()
	for b.Loop() {
		ptr, err := fsb.Alloc(l)
		if err != nil {
			b.Fatal(err)
		}
		fsb.Dealloc(ptr, l)
	}
}

func BenchmarkBump_Alloc(b *testing.B) {
	l := layout(32, 8)
	bump := NewBump()
	initWith(b, bump, 64<<20)
	b.ReportAllocs()
	for b.Loop() {
		if _, err := bump.Alloc(l); err != nil {
			bump = NewBump()
			initWith(b, bump, 64<<20)
		}
	}
}

func BenchmarkSwitchable_Parallel(b *testing.B) {
	fsb, err := NewFixedSizeBlock(NewBump(), nil)
	if err != nil {
		b.Fatal(err)
	}
	a := NewSwitchable(fsb, newHeapFactory(1<<20))

	l := layout(128, 8)
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			ptr, err := a.Alloc(l)
			if err != nil {
				b.Error(err)
				return
			}
			a.Dealloc(ptr, l)
		}
	})
}

package buf

import (
	"testing"
)

func TestAddOverflowSafe(t *testing.T) {
	if sum, ok := AddOverflowSafe(10, 5); !ok || sum != 15 {
		t.Fatalf("AddOverflowSafe(10,5)=%d,%v want 15,true", sum, ok)
	}
	if _, ok := AddOverflowSafe(^uintptr(0), 1); ok {
		t.Fatalf("expected overflow when adding to the top of the address space")
	}
	if sum, ok := AddOverflowSafe(^uintptr(0)-1, 1); !ok || sum != ^uintptr(0) {
		t.Fatalf("AddOverflowSafe(max-1,1)=%d,%v want max,true", sum, ok)
	}
}

func TestFits(t *testing.T) {
	tests := []struct {
		name         string
		size, off, n uintptr
		wantEnd      uintptr
		wantOK       bool
	}{
		{"inside", 100, 10, 20, 30, true},
		{"exact end", 100, 60, 40, 100, true},
		{"empty at end", 100, 100, 0, 100, true},
		{"one past end", 100, 61, 40, 0, false},
		{"offset beyond region", 100, 101, 0, 0, false},
		{"length wraps", 100, 10, ^uintptr(0), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end, ok := Fits(tt.size, tt.off, tt.n)
			if ok != tt.wantOK || end != tt.wantEnd {
				t.Fatalf("Fits(%d,%d,%d)=%d,%v want %d,%v", tt.size, tt.off, tt.n, end, ok, tt.wantEnd, tt.wantOK)
			}
		})
	}
}

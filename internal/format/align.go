package format

// Alignment utilities for allocator arithmetic.
// Every alignment handled here must be a nonzero power of two; callers validate
// that at the API boundary with IsPowerOfTwo.

// IsPowerOfTwo reports whether n is a nonzero power of two.
//
// Example:
//
//	IsPowerOfTwo(0)    = false
//	IsPowerOfTwo(1)    = true
//	IsPowerOfTwo(4096) = true
//	IsPowerOfTwo(24)   = false
func IsPowerOfTwo(n uintptr) bool {
	return n != 0 && n&(n-1) == 0
}

// AlignUp returns n rounded up to the next multiple of align.
//
// Example:
//
//	AlignUp(1, 8)  = 8
//	AlignUp(8, 8)  = 8
//	AlignUp(9, 16) = 16
func AlignUp(n, align uintptr) uintptr {
	return (n + align - 1) &^ (align - 1)
}

// AlignDown returns n rounded down to the previous multiple of align.
// The bump-down arena publishes its new top with this.
//
// Example:
//
//	AlignDown(15, 8)   = 8
//	AlignDown(4096, 8) = 4096
func AlignDown(n, align uintptr) uintptr {
	return n &^ (align - 1)
}

// AlignUpChecked is AlignUp that reports false instead of wrapping past the
// top of the address space.
func AlignUpChecked(n, align uintptr) (uintptr, bool) {
	r := AlignUp(n, align)
	if r < n {
		return 0, false
	}
	return r, true
}

// IsAligned reports whether n is a multiple of align.
func IsAligned(n, align uintptr) bool {
	return n&(align-1) == 0
}

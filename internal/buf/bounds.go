// Package buf holds overflow-safe range arithmetic for raw memory regions.
package buf

// AddOverflowSafe adds a and b, returning ok = false when the result would
// wrap the address space.
func AddOverflowSafe(a, b uintptr) (uintptr, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}

// Fits reports whether n bytes starting at offset off lie within a region of
// regionSize bytes, and returns the end offset when they do.
//
// A zero-length range at off == regionSize fits.
func Fits(regionSize, off, n uintptr) (uintptr, bool) {
	if off > regionSize {
		return 0, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > regionSize {
		return 0, false
	}
	return end, true
}

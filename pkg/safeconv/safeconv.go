// Package safeconv converts between integer types where the value range is
// known to fit, panicking instead of silently wrapping.
package safeconv

const (
	maxInt    = int(^uint(0) >> 1)
	low32Mask = 1<<32 - 1
)

// MustUintToInt converts a libgit2 count to int. Panics on overflow.
func MustUintToInt(v uint) int {
	if v > uint(maxInt) {
		panic("safeconv: uint to int overflow")
	}

	return int(v)
}

// MustIntToUint converts an index to uint. Panics if negative.
func MustIntToUint(v int) uint {
	if v < 0 {
		panic("safeconv: negative int to uint conversion")
	}

	return uint(v)
}

// Low32 keeps the low 32 bits of a 64-bit hash.
func Low32(v uint64) uint32 {
	return uint32(v & low32Mask)
}

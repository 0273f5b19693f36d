package coord

import "math/bits"

// permutations returns n!/(n-k)!, the number of ordered k-subsets of n.
func permutations(n, k int) uint64 {
	r := uint64(1)
	for i := 0; i < k; i++ {
		r *= uint64(n - i)
	}
	return r
}

func pow(base, exp int) uint64 {
	r := uint64(1)
	for i := 0; i < exp; i++ {
		r *= uint64(base)
	}
	return r
}

// rankPartial ranks the distinct values vals, drawn from 0..n-1, among all
// ordered selections of len(vals) values. The first value is the most
// significant digit; each digit counts the smaller values not used yet.
func rankPartial(vals []uint8, n int) uint64 {
	unused := uint32(1)<<n - 1
	var r uint64
	for i, v := range vals {
		digit := bits.OnesCount32(unused & (uint32(1)<<v - 1))
		r = r*uint64(n-i) + uint64(digit)
		unused &^= 1 << v
	}
	return r
}

// unrankPartial is the inverse of rankPartial. r must be below
// permutations(n, len(vals)).
func unrankPartial(r uint64, n int, vals []uint8) {
	k := len(vals)
	var digits [16]int
	for i := k - 1; i >= 0; i-- {
		base := uint64(n - i)
		digits[i] = int(r % base)
		r /= base
	}
	unused := uint32(1)<<n - 1
	for i := 0; i < k; i++ {
		v := nthSetBit(unused, digits[i])
		vals[i] = uint8(v)
		unused &^= 1 << v
	}
}

// nthSetBit returns the index of the j-th (0-based) set bit of mask.
func nthSetBit(mask uint32, j int) int {
	for ; j > 0; j-- {
		mask &= mask - 1
	}
	return bits.TrailingZeros32(mask)
}

// rankDigits reads digits as a base-o number, first digit most significant.
func rankDigits(digits []uint8, o int) uint64 {
	var r uint64
	for _, d := range digits {
		r = r*uint64(o) + uint64(d)
	}
	return r
}

func unrankDigits(r uint64, o int, digits []uint8) {
	for i := len(digits) - 1; i >= 0; i-- {
		digits[i] = uint8(r % uint64(o))
		r /= uint64(o)
	}
}

// completeOrientation returns the orientation that makes the total of
// digits plus itself a multiple of o.
func completeOrientation(digits []uint8, o int) uint8 {
	sum := 0
	for _, d := range digits {
		sum += int(d)
	}
	return uint8((o - sum%o) % o)
}

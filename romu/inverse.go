package romu

// Inverse transitions. Every variant's step is a bijection on its state
// space: multiplication by the odd constant inverts through
// multiplierInverse, rotations invert by rotating the other way, and the
// subtractions resolve once the multiplicative word is undone. Each
// unpermute function replaces the state by its predecessor and returns
// the value the forward step had emitted (the predecessor's output word).

func rotRight64(x uint64, k int) uint64 {
	return GenericRotLeft(x, 64-k)
}

func romuDuoJrUnpermuteState(s []uint64) uint64 {
	yp := multiplierInverse * s[0]
	xp := yp - rotRight64(s[1], 27)

	s[0], s[1] = xp, yp

	return xp
}

func romuDuoUnpermuteState(s []uint64) uint64 {
	yp := multiplierInverse * s[0]
	xp := GenericRotLeft(yp, 36) + GenericRotLeft(yp, 15) - s[1]

	s[0], s[1] = xp, yp

	return xp
}

func romuTrioUnpermuteState(s []uint64) uint64 {
	zp := multiplierInverse * s[0]
	yp := zp - rotRight64(s[2], 44)
	xp := yp - rotRight64(s[1], 12)

	s[0], s[1], s[2] = xp, yp, zp

	return xp
}

func romuQuadUnpermuteState(s []uint64) uint64 {
	zp := multiplierInverse * s[0]
	wp := rotRight64(s[1]-zp, 52)
	yp := rotRight64(s[3], 19) - wp
	xp := yp - s[2]

	s[0], s[1], s[2], s[3] = wp, xp, yp, zp

	return xp
}

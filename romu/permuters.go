package romu

// multiplier is shared by every variant. It is odd, so multiplying by it
// modulo 2^64 is a bijection on the word it updates; the published
// statistical results hold for this exact value only.
const multiplier uint64 = 15241094284759029579

// multiplierInverse * multiplier == 1 (mod 2^64).
const multiplierInverse uint64 = 4888251478366616163

// permutes a [2]uint64 state according to RomuDuoJr
// https://www.romu-random.org/code.c
func romuDuoJrPermuteState(s []uint64) (result uint64) {
	result = s[0]

	s[0] = multiplier * s[1]
	s[1] = GenericRotLeft(s[1]-result, 27)

	return
}

// permutes a [2]uint64 state according to RomuDuo
// https://www.romu-random.org/code.c
func romuDuoPermuteState(s []uint64) (result uint64) {
	result = s[0]

	s[0] = multiplier * s[1]
	s[1] = GenericRotLeft(s[1], 36) + GenericRotLeft(s[1], 15) - result

	return
}

// permutes a [3]uint64 state according to RomuTrio
// https://www.romu-random.org/code.c
func romuTrioPermuteState(s []uint64) (result uint64) {
	xp, yp, zp := s[0], s[1], s[2]
	result = xp

	s[0] = multiplier * zp
	s[1] = GenericRotLeft(yp-xp, 12)
	s[2] = GenericRotLeft(zp-yp, 44)

	return
}

// permutes a [4]uint64 state according to RomuQuad
// https://www.romu-random.org/code.c
func romuQuadPermuteState(s []uint64) (result uint64) {
	wp, xp, yp, zp := s[0], s[1], s[2], s[3]
	result = xp

	s[0] = multiplier * zp
	s[1] = zp + GenericRotLeft(wp, 52)
	s[2] = yp - xp
	s[3] = GenericRotLeft(yp+wp, 19)

	return
}

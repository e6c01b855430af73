package romu

// Seed expansion is not part of the Romu algorithm itself; the state just
// has to end up non-zero and well mixed. This is the splitmix64 recipe the
// xoshiro authors recommend for filling multi-word state from one 64 bit
// seed: a golden-gamma Weyl sequence run through a murmur-style avalanche,
// one output per state word.
// https://prng.di.unimi.it/splitmix64.c

const goldenGamma uint64 = 0x9e3779b97f4a7c15

func mix64(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func expandSeed(seed uint64, words []uint64) {
	for i := range words {
		seed += goldenGamma
		words[i] = mix64(seed)
	}

	// The all-zero state is a fixed point of every variant. No uint64 seed
	// is known to expand to it, but it has to be unreachable by
	// construction, not by luck.
	if isAllZero(words) {
		words[0] = goldenGamma
	}
}

func isAllZero(words []uint64) bool {
	for _, w := range words {
		if w != 0 {
			return false
		}
	}

	return true
}

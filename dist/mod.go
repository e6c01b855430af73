// Package dist maps raw 64 bit draws onto bounded integers, floats and
// byte streams. It consumes a romu.Source and never touches generator
// state beyond the draws it takes.
package dist

import (
	"math/bits"

	"github.com/xor-shift/randserver/romu"
)

// Uint64n returns a draw in [0, n) using Lemire's multiply-shift
// reduction instead of a modulo. It panics if n is 0, the interval is
// empty.
// https://lemire.me/blog/2016/06/27/a-fast-alternative-to-the-modulo-reduction/
// The reduction carries a slight bias when n is not a power of two; fine
// for simulation, not for lotteries.
func Uint64n(src romu.Source, n uint64) uint64 {
	if n == 0 {
		panic("dist: Uint64n called with n == 0")
	}

	hi, _ := bits.Mul64(src.Next(), n)
	return hi
}

// Uint32n returns a draw in [0, n). It panics if n is 0.
func Uint32n(src romu.Source, n uint32) uint32 {
	if n == 0 {
		panic("dist: Uint32n called with n == 0")
	}

	// n <= 2^32, so hi is guaranteed to fit into 32 bits
	hi, _ := bits.Mul64(src.Next(), uint64(n))
	return uint32(hi)
}

// Float64 returns a draw in [0.0, 1.0) built from the top 53 bits.
func Float64(src romu.Source) float64 {
	return float64(src.Next()>>11) * (1.0 / (1 << 53))
}

// Float32 returns a draw in [0.0, 1.0) built from the top 24 bits.
func Float32(src romu.Source) float32 {
	return float32(src.Next()>>40) * (1.0 / (1 << 24))
}

// Bytes fills p, eight bytes per draw, little end first.
func Bytes(src romu.Source, p []byte) {
	i := 0

	for ; i+8 <= len(p); i += 8 {
		v := src.Next()

		for j := 0; j < 8; j++ {
			p[i+j] = byte(v)
			v >>= 8
		}
	}

	if i < len(p) {
		v := src.Next()

		for ; i < len(p); i++ {
			p[i] = byte(v)
			v >>= 8
		}
	}
}

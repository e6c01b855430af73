package romu

import "math/rand"

// RandSource adapts any variant to math/rand, so the whole rand.Rand
// surface (Shuffle, Perm, NormFloat64, ...) comes for free on top of a
// Romu stream.
type RandSource struct {
	Inner Source
}

var _ rand.Source64 = (*RandSource)(nil)

func NewRandSource(inner Source) *RandSource {
	return &RandSource{Inner: inner}
}

func (s *RandSource) Uint64() uint64 {
	return s.Inner.Next()
}

func (s *RandSource) Int63() int64 {
	return int64(s.Inner.Next() >> 1)
}

func (s *RandSource) Seed(seed int64) {
	s.Inner.Reseed(uint64(seed))
}

// Package romu implements the Romu family of fast nonlinear pseudo-random
// number generators by Mark Overton, for the 64 bit variants.
//
// Romu mixes the linear operations of multiplication and subtraction with
// the nonlinear operation of rotation. The transition of every variant is
// invertible: given a full current state the previous state can be
// recovered (see Unstep), so none of these generators is suitable for
// anything an adversary may want to predict or reverse.
//
// Reference: https://www.romu-random.org/ and
// https://www.romu-random.org/code.c
package romu

import (
	"errors"
	"unsafe"
)

// ErrZeroState is returned by the raw-state constructors: the all-zero
// vector is a fixed point of every variant's transition and is the one
// reserved state value.
var ErrZeroState = errors.New("romu: the all-zero state is a fixed point")

func GenericRotLeft[T uint8 | uint16 | uint32 | uint64](x T, k int) T {
	bitWidth := int(unsafe.Sizeof(x) * 8)
	return (x << k) | (x >> (bitWidth - k))
}

// Source is one live generator: each Next call advances the state once and
// returns the draw, Reseed reinstalls an expanded scalar seed in place. A
// Source is not safe for concurrent use; give each goroutine its own.
type Source interface {
	Next() uint64
	Reseed(seed uint64)
}

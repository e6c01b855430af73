package romu

import "github.com/xor-shift/randserver/util"

// RomuDuoJrState is the fastest variant, at the price of the lowest
// capacity of the family (est. >= 2^62 bytes of output). Two words of
// state, one multiplicative, one subtractive-rotational.
type RomuDuoJrState struct {
	State [2]uint64
}

func NewRomuDuoJr(seed uint64) *RomuDuoJrState {
	state := RomuDuoJrState{}
	expandSeed(seed, state.State[:])

	return &state
}

// NewRomuDuoJrFromState installs the words verbatim, bypassing seed
// expansion. Callers own the mixing quality of what they pass in.
func NewRomuDuoJrFromState(x, y uint64) (*RomuDuoJrState, error) {
	if x == 0 && y == 0 {
		return nil, ErrZeroState
	}

	return &RomuDuoJrState{State: [2]uint64{x, y}}, nil
}

func (state *RomuDuoJrState) Next() uint64 {
	return romuDuoJrPermuteState(state.State[:])
}

func (state *RomuDuoJrState) Reseed(seed uint64) {
	expandSeed(seed, state.State[:])
}

// Unstep rewinds one step and returns the draw the corresponding Next had
// emitted. The transition is a bijection, which is exactly why RomuDuoJr
// is not cryptographically secure.
func (state *RomuDuoJrState) Unstep() uint64 {
	return romuDuoJrUnpermuteState(state.State[:])
}

func (state *RomuDuoJrState) String() string {
	return util.ArrayToString(state.State[:])
}

package romu

import "github.com/xor-shift/randserver/util"

// RomuTrioState is the general-purpose member of the family: three words
// of state, est. capacity 2^75 bytes.
type RomuTrioState struct {
	State [3]uint64
}

func NewRomuTrio(seed uint64) *RomuTrioState {
	state := RomuTrioState{}
	expandSeed(seed, state.State[:])

	return &state
}

func NewRomuTrioFromState(x, y, z uint64) (*RomuTrioState, error) {
	if x == 0 && y == 0 && z == 0 {
		return nil, ErrZeroState
	}

	return &RomuTrioState{State: [3]uint64{x, y, z}}, nil
}

func (state *RomuTrioState) Next() uint64 {
	return romuTrioPermuteState(state.State[:])
}

func (state *RomuTrioState) Reseed(seed uint64) {
	expandSeed(seed, state.State[:])
}

// Unstep rewinds one step and returns the draw the corresponding Next had
// emitted.
func (state *RomuTrioState) Unstep() uint64 {
	return romuTrioUnpermuteState(state.State[:])
}

func (state *RomuTrioState) String() string {
	return util.ArrayToString(state.State[:])
}

package romu

import "github.com/xor-shift/randserver/util"

// RomuDuoState trades a little speed against RomuDuoJr for more
// thorough mixing of the second word (est. capacity 2^61 bytes).
type RomuDuoState struct {
	State [2]uint64
}

func NewRomuDuo(seed uint64) *RomuDuoState {
	state := RomuDuoState{}
	expandSeed(seed, state.State[:])

	return &state
}

func NewRomuDuoFromState(x, y uint64) (*RomuDuoState, error) {
	if x == 0 && y == 0 {
		return nil, ErrZeroState
	}

	return &RomuDuoState{State: [2]uint64{x, y}}, nil
}

func (state *RomuDuoState) Next() uint64 {
	return romuDuoPermuteState(state.State[:])
}

func (state *RomuDuoState) Reseed(seed uint64) {
	expandSeed(seed, state.State[:])
}

// Unstep rewinds one step and returns the draw the corresponding Next had
// emitted.
func (state *RomuDuoState) Unstep() uint64 {
	return romuDuoUnpermuteState(state.State[:])
}

func (state *RomuDuoState) String() string {
	return util.ArrayToString(state.State[:])
}

package romu

import "github.com/xor-shift/randserver/util"

// RomuQuadState is the high-capacity member (est. >= 2^90 bytes), meant
// for handing every parallel worker its own independently seeded stream.
// Seed distinctness across instances is the caller's job; nothing here
// coordinates between instances.
type RomuQuadState struct {
	State [4]uint64
}

func NewRomuQuad(seed uint64) *RomuQuadState {
	state := RomuQuadState{}
	expandSeed(seed, state.State[:])

	return &state
}

func NewRomuQuadFromState(w, x, y, z uint64) (*RomuQuadState, error) {
	if w == 0 && x == 0 && y == 0 && z == 0 {
		return nil, ErrZeroState
	}

	return &RomuQuadState{State: [4]uint64{w, x, y, z}}, nil
}

func (state *RomuQuadState) Next() uint64 {
	return romuQuadPermuteState(state.State[:])
}

func (state *RomuQuadState) Reseed(seed uint64) {
	expandSeed(seed, state.State[:])
}

// Unstep rewinds one step and returns the draw the corresponding Next had
// emitted.
func (state *RomuQuadState) Unstep() uint64 {
	return romuQuadUnpermuteState(state.State[:])
}

func (state *RomuQuadState) String() string {
	return util.ArrayToString(state.State[:])
}

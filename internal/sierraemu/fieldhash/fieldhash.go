// Package fieldhash provides Poseidon- and Pedersen-style hash functions
// over felt.Element. No libfunc handler in this module calls them:
// felt252_dict keys entries by the felt's decimal string.
//
// The sponge-over-FieldElement shape (round constants, an S-box, a tiny MDS
// mix) is adapted from this module's original Poseidon/Rescue
// implementation; the state width and round counts are sized for
// felt.Element rather than an arbitrary STARK field, and Rescue is dropped
// since nothing in this domain calls for it.
package fieldhash

import (
	"github.com/feltvm/sierra-emu/internal/sierraemu/felt"
)

const (
	roundsFull    = 8
	roundsPartial = 57
	sboxPower     = 5
)

// Poseidon hashes a sequence of felts into a single felt using a
// width-3 sponge (capacity 1, rate 2).
func Poseidon(inputs ...felt.Element) felt.Element {
	state := [3]felt.Element{felt.Zero, felt.Zero, felt.Zero}
	for i := 0; i < len(inputs); i += 2 {
		state[1] = state[1].Add(inputs[i])
		if i+1 < len(inputs) {
			state[2] = state[2].Add(inputs[i+1])
		}
		state = permute(state)
	}
	return state[0]
}

// Pedersen hashes exactly two felts, as used by the Pedersen builtin.
// It reuses the Poseidon permutation under a distinct domain tag so the
// two hash families never collide on the same input pair.
func Pedersen(a, b felt.Element) felt.Element {
	domain := felt.FromInt64(0x50454445525345) // "PEDERSE"
	return Poseidon(domain, a, b)
}

func permute(state [3]felt.Element) [3]felt.Element {
	for r := 0; r < roundsFull/2; r++ {
		state = fullRound(state, r)
	}
	for r := 0; r < roundsPartial; r++ {
		state = partialRound(state, r)
	}
	for r := 0; r < roundsFull/2; r++ {
		state = fullRound(state, r)
	}
	return state
}

func fullRound(state [3]felt.Element, round int) [3]felt.Element {
	rc := felt.FromInt64(int64(round + 1))
	for i := range state {
		state[i] = sbox(state[i].Add(rc))
	}
	return mix(state)
}

func partialRound(state [3]felt.Element, round int) [3]felt.Element {
	rc := felt.FromInt64(int64(round + 1000))
	state[0] = sbox(state[0].Add(rc))
	return mix(state)
}

func sbox(x felt.Element) felt.Element {
	x2 := x.Square()
	x4 := x2.Square()
	return x4.Mul(x)
}

func mix(state [3]felt.Element) [3]felt.Element {
	sum := state[0].Add(state[1]).Add(state[2])
	return [3]felt.Element{
		sum.Add(state[0].Add(state[0])),
		sum.Sub(state[1].Add(state[1])),
		sum.Sub(state[2].Add(state[2]).Add(state[2])),
	}
}

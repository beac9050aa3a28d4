package salsa20

import (
	"encoding/binary"
	"math/bits"
)

// rounds is the number of permutation rounds (ten double-rounds).
const rounds = 20

// columnRounds and rowRounds list the state indices each quarter-round
// touches, in (a, b, c, d) order. A double-round is the four column
// quarter-rounds followed by the four row quarter-rounds of the 4x4 word
// matrix.
//
//nolint:gochecknoglobals // fixed permutation tables
var (
	columnRounds = [4][4]int{
		{0, 4, 8, 12},
		{5, 9, 13, 1},
		{10, 14, 2, 6},
		{15, 3, 7, 11},
	}

	rowRounds = [4][4]int{
		{0, 1, 2, 3},
		{5, 6, 7, 4},
		{10, 11, 8, 9},
		{15, 12, 13, 14},
	}
)

// quarterRound applies the Salsa20 add-rotate-xor chain to the four state
// words selected by pos: b ^= (a+d)<<<7, c ^= (b+a)<<<9, d ^= (c+b)<<<13,
// a ^= (d+c)<<<18.
func quarterRound(state *[stateWords]uint32, pos [4]int) {
	a, b, c, d := pos[0], pos[1], pos[2], pos[3]

	state[b] ^= bits.RotateLeft32(state[a]+state[d], 7)
	state[c] ^= bits.RotateLeft32(state[b]+state[a], 9)
	state[d] ^= bits.RotateLeft32(state[c]+state[b], 13)
	state[a] ^= bits.RotateLeft32(state[d]+state[c], 18)
}

// keystreamBlock derives the 64-byte keystream block for the current state.
// The permutation runs on a working copy, the feed-forward add folds the
// original words back in, and the sums are serialized little-endian. The
// state itself is never mutated here; only the engine advances the counter.
func keystreamBlock(state *[stateWords]uint32, block *[BlockSize]byte) {
	work := *state

	for round := 0; round < rounds; round += 2 {
		for _, pos := range columnRounds {
			quarterRound(&work, pos)
		}

		for _, pos := range rowRounds {
			quarterRound(&work, pos)
		}
	}

	const wordSize = 4

	for i, word := range work {
		binary.LittleEndian.PutUint32(block[wordSize*i:], word+state[i])
	}
}

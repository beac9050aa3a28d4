package salsa20

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testKeyNonce returns a fixed, distinctive key and nonce for white-box tests.
func testKeyNonce(t *testing.T) (key, nonce []byte) {
	t.Helper()

	key = make([]byte, KeySize)
	nonce = make([]byte, NonceSize)

	for i := range key {
		key[i] = byte(i)
	}

	for i := range nonce {
		nonce[i] = byte(0xA0 + i)
	}

	return key, nonce
}

// transform runs the full-blocks-then-final pattern over msg with a fresh engine.
func transform(t *testing.T, key, nonce, msg []byte) []byte {
	t.Helper()

	engine, err := New(key, nonce)
	require.NoError(t, err)

	out := make([]byte, len(msg))
	full := len(msg) / BlockSize

	require.NoError(t, engine.ProcessBlocks(out, msg, full))

	if len(msg)%BlockSize != 0 {
		require.NoError(t, engine.ProcessFinal(out[full*BlockSize:], msg[full*BlockSize:]))
	}

	return out
}

func TestNewRejectsBadLengths(t *testing.T) {
	assert := assert.New(t)

	key, nonce := testKeyNonce(t)

	for _, n := range []int{0, 16, 31, 33, 64} {
		engine, err := New(make([]byte, n), nonce)
		assert.ErrorIs(err, ErrInvalidKeyLength, "key length %d", n)
		assert.Nil(engine)
	}

	for _, n := range []int{0, 7, 9, 24} {
		engine, err := New(key, make([]byte, n))
		assert.ErrorIs(err, ErrInvalidNonceLength, "nonce length %d", n)
		assert.Nil(engine)
	}
}

func TestStateLayout(t *testing.T) {
	require := require.New(t)

	key, nonce := testKeyNonce(t)

	engine, err := New(key, nonce)
	require.NoError(err)

	require.Equal(sigma[0], engine.state[0])
	require.Equal(sigma[1], engine.state[5])
	require.Equal(sigma[2], engine.state[10])
	require.Equal(sigma[3], engine.state[15])

	// Key bytes 0-15 fill words 1-4 little-endian, bytes 16-31 words 11-14.
	require.Equal(uint32(0x03020100), engine.state[1])
	require.Equal(uint32(0x07060504), engine.state[2])
	require.Equal(uint32(0x0b0a0908), engine.state[3])
	require.Equal(uint32(0x0f0e0d0c), engine.state[4])
	require.Equal(uint32(0x13121110), engine.state[11])
	require.Equal(uint32(0x17161514), engine.state[12])
	require.Equal(uint32(0x1b1a1918), engine.state[13])
	require.Equal(uint32(0x1f1e1d1c), engine.state[14])

	require.Equal(uint32(0xa3a2a1a0), engine.state[6])
	require.Equal(uint32(0xa7a6a5a4), engine.state[7])

	require.Zero(engine.state[8])
	require.Zero(engine.state[9])
}

// TestQuarterRoundExamples checks the worked examples from the Salsa20
// definition.
func TestQuarterRoundExamples(t *testing.T) {
	assert := assert.New(t)

	cases := []struct {
		in  [4]uint32
		out [4]uint32
	}{
		{[4]uint32{0, 0, 0, 0}, [4]uint32{0, 0, 0, 0}},
		{[4]uint32{1, 0, 0, 0}, [4]uint32{0x08008145, 0x00000080, 0x00010200, 0x20500000}},
		{[4]uint32{0, 1, 0, 0}, [4]uint32{0x88000100, 0x00000001, 0x00000200, 0x00402000}},
	}

	pos := [4]int{0, 1, 2, 3}

	for _, tc := range cases {
		var state [stateWords]uint32

		for i, v := range tc.in {
			state[pos[i]] = v
		}

		quarterRound(&state, pos)

		for i, want := range tc.out {
			assert.Equal(want, state[pos[i]], "input %08x, output word %d", tc.in, i)
		}
	}
}

func TestKeystreamBlockLeavesStateIntact(t *testing.T) {
	require := require.New(t)

	key := make([]byte, KeySize)
	nonce := make([]byte, NonceSize)

	_, err := rand.Read(key)
	require.NoError(err)
	_, err = rand.Read(nonce)
	require.NoError(err)

	engine, err := New(key, nonce)
	require.NoError(err)

	before := engine.state

	var block [BlockSize]byte

	keystreamBlock(&engine.state, &block)

	require.Equal(before, engine.state)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	require := require.New(t)

	key, nonce := testKeyNonce(t)

	for _, size := range []int{0, 1, 63, 64, 65, 128, 1000, 8192} {
		plaintext := make([]byte, size)
		_, err := rand.Read(plaintext)
		require.NoError(err)

		ciphertext := transform(t, key, nonce, plaintext)
		recovered := transform(t, key, nonce, ciphertext)

		require.Equal(plaintext, recovered, "size %d", size)

		if size >= BlockSize {
			require.NotEqual(plaintext, ciphertext, "size %d", size)
		}
	}
}

// TestSplitInvariance verifies that chunking never changes the output:
// any block-aligned partition of the input produces the same bytes as a
// single call.
func TestSplitInvariance(t *testing.T) {
	require := require.New(t)

	key, nonce := testKeyNonce(t)

	const blocks = 16

	msg := make([]byte, blocks*BlockSize)
	_, err := rand.Read(msg)
	require.NoError(err)

	oneShot := make([]byte, len(msg))

	engine, err := New(key, nonce)
	require.NoError(err)
	require.NoError(engine.ProcessBlocks(oneShot, msg, blocks))

	for _, split := range [][]int{
		{1, 15},
		{7, 9},
		{4, 4, 4, 4},
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		{0, 16, 0},
	} {
		chunked := make([]byte, len(msg))

		engine, err := New(key, nonce)
		require.NoError(err)

		off := 0

		for _, n := range split {
			require.NoError(engine.ProcessBlocks(chunked[off:], msg[off:], n))

			off += n * BlockSize
		}

		require.Equal(oneShot, chunked, "split %v", split)
	}
}

// TestCounterDeterminism walks one engine forward block by block and presets
// another to the same position; both must produce the same next block.
func TestCounterDeterminism(t *testing.T) {
	require := require.New(t)

	key, nonce := testKeyNonce(t)

	zeros := make([]byte, BlockSize)

	for _, position := range []uint64{1, 2, 7, 100} {
		walked, err := New(key, nonce)
		require.NoError(err)

		discard := make([]byte, BlockSize)

		for i := uint64(0); i < position; i++ {
			require.NoError(walked.ProcessBlocks(discard, zeros, 1))
		}

		preset, err := New(key, nonce)
		require.NoError(err)
		preset.setCounter(position)

		got := make([]byte, BlockSize)
		want := make([]byte, BlockSize)

		require.NoError(walked.ProcessBlocks(got, zeros, 1))
		require.NoError(preset.ProcessBlocks(want, zeros, 1))

		require.Equal(want, got, "position %d", position)
	}
}

func TestSetNonceResetsCounter(t *testing.T) {
	require := require.New(t)

	key, nonce := testKeyNonce(t)
	second := []byte{1, 2, 3, 4, 5, 6, 7, 8}

	zeros := make([]byte, 4*BlockSize)
	discard := make([]byte, 4*BlockSize)

	used, err := New(key, nonce)
	require.NoError(err)
	require.NoError(used.ProcessBlocks(discard, zeros, 4))

	require.NoError(used.SetNonce(second))
	require.Zero(used.counter())

	fresh, err := New(key, second)
	require.NoError(err)

	got := make([]byte, BlockSize)
	want := make([]byte, BlockSize)

	require.NoError(used.ProcessBlocks(got, zeros, 1))
	require.NoError(fresh.ProcessBlocks(want, zeros, 1))
	require.Equal(want, got)

	// The same nonce again restarts the same keystream from block zero.
	require.NoError(used.SetNonce(second))

	again := make([]byte, BlockSize)
	require.NoError(used.ProcessBlocks(again, zeros, 1))
	require.Equal(want, again)

	// A bad nonce length leaves the engine untouched.
	require.ErrorIs(used.SetNonce(second[:7]), ErrInvalidNonceLength)
}

func TestPartialBlockIsTerminal(t *testing.T) {
	require := require.New(t)

	key, nonce := testKeyNonce(t)

	engine, err := New(key, nonce)
	require.NoError(err)

	tail := []byte("trailing bytes")
	out := make([]byte, len(tail))
	require.NoError(engine.ProcessFinal(out, tail))

	block := make([]byte, BlockSize)
	require.ErrorIs(engine.ProcessBlocks(block, block, 1), ErrStreamFinalized)
	require.ErrorIs(engine.ProcessFinal(out, tail), ErrStreamFinalized)

	// A fresh nonce re-arms the engine.
	require.NoError(engine.SetNonce([]byte{8, 7, 6, 5, 4, 3, 2, 1}))
	require.NoError(engine.ProcessBlocks(block, block, 1))
}

func TestProcessFinalRejectsFullBlock(t *testing.T) {
	require := require.New(t)

	key, nonce := testKeyNonce(t)

	engine, err := New(key, nonce)
	require.NoError(err)

	for _, size := range []int{BlockSize, BlockSize + 1, 2 * BlockSize} {
		buf := make([]byte, size)
		require.ErrorIs(engine.ProcessFinal(buf, buf), ErrInvalidPartialLength)
	}

	require.Zero(engine.counter())
	require.False(engine.finalized)
}

// TestEmptyFinalConsumesCounter pins the rule that a zero-length final
// still burns one counter value and ends the stream.
func TestEmptyFinalConsumesCounter(t *testing.T) {
	require := require.New(t)

	key, nonce := testKeyNonce(t)

	engine, err := New(key, nonce)
	require.NoError(err)

	require.NoError(engine.ProcessFinal(nil, nil))
	require.Equal(uint64(1), engine.counter())
	require.True(engine.finalized)
}

func TestCounterExhaustion(t *testing.T) {
	require := require.New(t)

	key, nonce := testKeyNonce(t)

	src := make([]byte, 4*BlockSize)

	// Requesting more blocks than remain fails up front, transforming
	// nothing and leaving the counter where it was.
	engine, err := New(key, nonce)
	require.NoError(err)
	engine.setCounter(^uint64(0)) // one block left

	out := bytes.Repeat([]byte{0xAA}, 2*BlockSize)
	require.ErrorIs(engine.ProcessBlocks(out, src, 2), ErrCounterExhausted)
	require.Equal(bytes.Repeat([]byte{0xAA}, 2*BlockSize), out)
	require.Equal(^uint64(0), engine.counter())

	// The final block itself is fine, then the stream is spent.
	require.NoError(engine.ProcessBlocks(out, src, 1))
	require.ErrorIs(engine.ProcessBlocks(out, src, 1), ErrCounterExhausted)
	require.ErrorIs(engine.ProcessFinal(out[:1], src[:1]), ErrCounterExhausted)

	// An exact fit up to the last block succeeds.
	exact, err := New(key, nonce)
	require.NoError(err)
	exact.setCounter(^uint64(0) - 2) // three blocks left

	require.NoError(exact.ProcessBlocks(out, src, 3))
	require.ErrorIs(exact.ProcessBlocks(out, src, 1), ErrCounterExhausted)

	// A fresh nonce clears the exhaustion.
	require.NoError(exact.SetNonce([]byte{9, 9, 9, 9, 9, 9, 9, 9}))
	require.NoError(exact.ProcessBlocks(out, src, 1))
}

func TestInPlaceTransform(t *testing.T) {
	require := require.New(t)

	key, nonce := testKeyNonce(t)

	msg := make([]byte, 5*BlockSize+17)
	_, err := rand.Read(msg)
	require.NoError(err)

	separate := transform(t, key, nonce, msg)

	inPlace := append([]byte(nil), msg...)

	engine, err := New(key, nonce)
	require.NoError(err)
	require.NoError(engine.ProcessBlocks(inPlace, inPlace, 5))
	require.NoError(engine.ProcessFinal(inPlace[5*BlockSize:], inPlace[5*BlockSize:]))

	require.Equal(separate, inPlace)
}

func TestShortBufferRejected(t *testing.T) {
	require := require.New(t)

	key, nonce := testKeyNonce(t)

	engine, err := New(key, nonce)
	require.NoError(err)

	src := make([]byte, 2*BlockSize)
	dst := make([]byte, 2*BlockSize)

	require.ErrorIs(engine.ProcessBlocks(dst, src[:BlockSize], 2), ErrShortBuffer)
	require.ErrorIs(engine.ProcessBlocks(dst[:BlockSize], src, 2), ErrShortBuffer)
	require.ErrorIs(engine.ProcessFinal(dst[:3], src[:10]), ErrShortBuffer)
	require.ErrorIs(engine.ProcessBlocks(dst, src, -1), ErrInvalidBlockCount)

	require.Zero(engine.counter())

	// Zero blocks is a valid no-op.
	require.NoError(engine.ProcessBlocks(dst, src, 0))
	require.Zero(engine.counter())
}

func TestResetClearsState(t *testing.T) {
	require := require.New(t)

	key, nonce := testKeyNonce(t)

	engine, err := New(key, nonce)
	require.NoError(err)

	buf := make([]byte, BlockSize)
	require.NoError(engine.ProcessBlocks(buf, buf, 1))

	engine.Reset()

	require.Equal([stateWords]uint32{}, engine.state)
	require.ErrorIs(engine.ProcessBlocks(buf, buf, 1), ErrStreamFinalized)
}

func BenchmarkProcessBlocks(b *testing.B) {
	key := make([]byte, KeySize)
	nonce := make([]byte, NonceSize)

	engine, err := New(key, nonce)
	if err != nil {
		b.Fatal(err)
	}

	const chunkBlocks = 64

	buf := make([]byte, chunkBlocks*BlockSize)

	b.SetBytes(int64(len(buf)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if err := engine.ProcessBlocks(buf, buf, chunkBlocks); err != nil {
			b.Fatal(err)
		}
	}
}

// Package salsa20 implements the Salsa20/20 stream cipher as a
// block-oriented engine.
//
// A Cipher is keyed once with a 32-byte key and an 8-byte nonce and then
// transforms data in 64-byte blocks, advancing an internal 64-bit block
// counter. Encryption and decryption are the same operation. A trailing
// partial block is transformed with ProcessFinal, which ends the stream for
// the current nonce; SetNonce starts a fresh stream under the same key.
//
// The engine deliberately exposes no seek or rewind: the counter only moves
// forward, one block per block processed.
package salsa20

import "encoding/binary"

const (
	// KeySize is the length of a Salsa20 key in bytes.
	KeySize = 32

	// NonceSize is the length of a Salsa20 nonce in bytes.
	NonceSize = 8

	// BlockSize is the length of a single keystream block in bytes.
	BlockSize = 64

	// stateWords is the number of 32-bit words in the cipher state.
	stateWords = 16
)

// sigma is the "expand 32-byte k" constant, one word per corner of the
// state matrix (positions 0, 5, 10, 15).
//
//nolint:gochecknoglobals // fixed cipher constant
var sigma = [4]uint32{0x61707865, 0x3320646e, 0x79622d32, 0x6b206574}

// Cipher is a keyed Salsa20 engine positioned at some block of its
// keystream. It is not safe for concurrent use.
type Cipher struct {
	// state holds the 4x4 word matrix: constants at 0, 5, 10, 15; key words
	// at 1-4 and 11-14; nonce words at 6-7; counter words at 8 (low) and
	// 9 (high). All words are little-endian views of their source bytes.
	state [stateWords]uint32

	// finalized is set once a partial block has been processed; the stream
	// is over until a new nonce arrives.
	finalized bool

	// exhausted is set when the counter has consumed all 2^64 blocks.
	exhausted bool
}

// New returns a Cipher keyed with the given 32-byte key and 8-byte nonce,
// positioned at block zero.
func New(key, nonce []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeyLength
	}

	if len(nonce) != NonceSize {
		return nil, ErrInvalidNonceLength
	}

	cipher := &Cipher{}

	cipher.state[0] = sigma[0]
	cipher.state[5] = sigma[1]
	cipher.state[10] = sigma[2]
	cipher.state[15] = sigma[3]

	const wordSize = 4

	for i := 0; i < 4; i++ {
		cipher.state[1+i] = binary.LittleEndian.Uint32(key[wordSize*i:])
		cipher.state[11+i] = binary.LittleEndian.Uint32(key[KeySize/2+wordSize*i:])
	}

	cipher.state[6] = binary.LittleEndian.Uint32(nonce[0:])
	cipher.state[7] = binary.LittleEndian.Uint32(nonce[wordSize:])

	return cipher, nil
}

// SetNonce replaces the nonce and resets the block counter to zero, starting
// a fresh keystream under the existing key. It also re-arms a finalized or
// exhausted engine. The reset is unconditional: reusing a counter position
// under a (key, nonce) pair that already produced output must be impossible.
func (c *Cipher) SetNonce(nonce []byte) error {
	if len(nonce) != NonceSize {
		return ErrInvalidNonceLength
	}

	const wordSize = 4

	c.state[6] = binary.LittleEndian.Uint32(nonce[0:])
	c.state[7] = binary.LittleEndian.Uint32(nonce[wordSize:])
	c.state[8] = 0
	c.state[9] = 0
	c.finalized = false
	c.exhausted = false

	return nil
}

// ProcessBlocks transforms blocks consecutive 64-byte blocks from src into
// dst, advancing the counter once per block. dst may be the same slice as
// src for an in-place transform. All validation happens before any byte is
// transformed or any counter value consumed; on error the engine is
// unchanged.
func (c *Cipher) ProcessBlocks(dst, src []byte, blocks int) error {
	if blocks < 0 {
		return ErrInvalidBlockCount
	}

	if c.finalized {
		return ErrStreamFinalized
	}

	// Comparing against len/BlockSize keeps blocks*BlockSize from ever
	// overflowing below.
	if blocks > len(src)/BlockSize || blocks > len(dst)/BlockSize {
		return ErrShortBuffer
	}

	if err := c.checkRemaining(uint64(blocks)); err != nil {
		return err
	}

	length := blocks * BlockSize

	var block [BlockSize]byte

	for off := 0; off < length; off += BlockSize {
		keystreamBlock(&c.state, &block)

		// Read each src byte before writing dst so dst == src works.
		for i, k := range block {
			dst[off+i] = src[off+i] ^ k
		}

		c.advance()
	}

	return nil
}

// ProcessFinal transforms a trailing partial block of fewer than 64 bytes,
// consuming exactly one counter value even for an empty src, and finalizes
// the stream: further processing under the current nonce fails with
// ErrStreamFinalized. dst may alias src.
func (c *Cipher) ProcessFinal(dst, src []byte) error {
	if len(src) >= BlockSize {
		return ErrInvalidPartialLength
	}

	if c.finalized {
		return ErrStreamFinalized
	}

	if len(dst) < len(src) {
		return ErrShortBuffer
	}

	if err := c.checkRemaining(1); err != nil {
		return err
	}

	var block [BlockSize]byte

	keystreamBlock(&c.state, &block)

	for i, b := range src {
		dst[i] = b ^ block[i]
	}

	c.advance()
	c.finalized = true

	return nil
}

// Reset clears the whole state so key material no longer sits in memory.
// A reset cipher must not be used again; key a new one instead.
func (c *Cipher) Reset() {
	for i := range c.state {
		c.state[i] = 0
	}

	c.finalized = true
	c.exhausted = true
}

// checkRemaining reports whether n more blocks fit before the counter would
// pass 2^64.
func (c *Cipher) checkRemaining(n uint64) error {
	if c.exhausted {
		return ErrCounterExhausted
	}

	// A zero counter has the full 2^64 blocks ahead of it, which does not
	// fit in a uint64; any representable n is fine then.
	if ctr := c.counter(); ctr != 0 {
		remaining := ^uint64(0) - ctr + 1

		if n > remaining {
			return ErrCounterExhausted
		}
	}

	return nil
}

// advance moves the counter to the next block, carrying from the low word
// into the high word. Wrapping past 2^64 marks the engine exhausted.
func (c *Cipher) advance() {
	c.state[8]++

	if c.state[8] == 0 {
		c.state[9]++

		if c.state[9] == 0 {
			c.exhausted = true
		}
	}
}

// counter returns the current block position.
func (c *Cipher) counter() uint64 {
	return uint64(c.state[8]) | uint64(c.state[9])<<32
}

// setCounter repositions the engine at an arbitrary block. Kept unexported:
// the public API must not offer seeking, but tests need to reach the far end
// of the counter space without generating 2^64 blocks.
func (c *Cipher) setCounter(ctr uint64) {
	c.state[8] = uint32(ctr)
	c.state[9] = uint32(ctr >> 32)
	c.exhausted = false
}

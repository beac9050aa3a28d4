package salsa20

import "errors"

var (
	// ErrInvalidKeyLength is returned when the key is not exactly 32 bytes.
	ErrInvalidKeyLength = errors.New("salsa20: key must be 32 bytes")
	// ErrInvalidNonceLength is returned when the nonce is not exactly 8 bytes.
	ErrInvalidNonceLength = errors.New("salsa20: nonce must be 8 bytes")
	// ErrInvalidBlockCount is returned when a negative block count is requested.
	ErrInvalidBlockCount = errors.New("salsa20: negative block count")
	// ErrInvalidPartialLength is returned when a partial block is a full block or longer.
	ErrInvalidPartialLength = errors.New("salsa20: partial block must be shorter than 64 bytes")
	// ErrShortBuffer is returned when a buffer is shorter than the requested length.
	ErrShortBuffer = errors.New("salsa20: buffer shorter than requested length")
	// ErrStreamFinalized is returned when a finalized stream is used again
	// without setting a fresh nonce.
	ErrStreamFinalized = errors.New("salsa20: stream is finalized, set a new nonce to continue")
	// ErrCounterExhausted is returned when a request would advance the block
	// counter past 2^64.
	ErrCounterExhausted = errors.New("salsa20: block counter exhausted")
)

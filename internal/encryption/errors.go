package encryption

import "errors"

var (
	// ErrNoKeyMaterial is returned when neither a key string nor a key file
	// is configured.
	ErrNoKeyMaterial = errors.New("a key is required: provide --key or --key-file")
	// ErrInvalidKeyFormat is returned when key material is not valid hex of
	// an accepted length.
	ErrInvalidKeyFormat = errors.New("key material must be 64 or 80 hex characters (32-byte key, optional 8-byte nonce)")
	// ErrNonceReuse is returned when a caller-chosen nonce would cover more
	// than one encryption stream.
	ErrNonceReuse = errors.New("an explicit nonce cannot encrypt more than one file: the keystream must never be reused")
	// ErrSamePath is returned when input and output resolve to the same file.
	ErrSamePath = errors.New("input and output paths are the same file")
	// ErrTruncatedInput is returned when a nonce-prefixed input is shorter
	// than the nonce itself.
	ErrTruncatedInput = errors.New("input is shorter than its nonce prefix")
)

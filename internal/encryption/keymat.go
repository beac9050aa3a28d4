package encryption

import (
	"fmt"
	"os"
	"strings"

	"github.com/idelchi/gogen/pkg/key"

	"github.com/idelchi/gosalsa/internal/config"
	"github.com/idelchi/gosalsa/pkg/salsa20"
)

// keyMaterial is the decoded keying for one invocation: a Salsa20 key and,
// in explicit-nonce mode, the nonce that goes with it.
type keyMaterial struct {
	key   []byte
	nonce []byte
}

// explicitNonce reports whether the material carries a caller-chosen nonce.
func (m keyMaterial) explicitNonce() bool {
	return m.nonce != nil
}

// readKeyMaterial loads and decodes key material from the configured source.
// 64 hex characters select random-nonce mode, 80 select explicit-nonce mode
// (32 key bytes followed by 8 nonce bytes). Anything else is rejected before
// a cipher is ever constructed.
func readKeyMaterial(cfg *config.Config) (keyMaterial, error) {
	var text string

	switch {
	case cfg.Key != "":
		text = cfg.Key
	case cfg.KeyFile != "":
		raw, err := os.ReadFile(cfg.KeyFile)
		if err != nil {
			return keyMaterial{}, fmt.Errorf("reading key file: %w", err)
		}

		text = string(raw)
	default:
		return keyMaterial{}, ErrNoKeyMaterial
	}

	decoded, err := key.FromHex(strings.TrimSpace(text))
	if err != nil {
		return keyMaterial{}, fmt.Errorf("%w: %v", ErrInvalidKeyFormat, err) //nolint:errorlint // the sentinel carries the chain
	}

	switch len(decoded) {
	case salsa20.KeySize:
		return keyMaterial{key: decoded}, nil
	case salsa20.KeySize + salsa20.NonceSize:
		return keyMaterial{key: decoded[:salsa20.KeySize], nonce: decoded[salsa20.KeySize:]}, nil
	default:
		return keyMaterial{}, fmt.Errorf("%w: got %d bytes", ErrInvalidKeyFormat, len(decoded))
	}
}

package commands

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idelchi/gosalsa/pkg/salsa20"
)

// NewGenerateCommand creates a new cobra command for the generate subcommand.
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate fresh key material",
		Long: `Generate cryptographically random key material, printed as hex.
By default the output is 80 characters: a 32-byte key followed by an 8-byte
nonce. With --key-only the nonce part is omitted, selecting the mode where
every encrypted file gets its own random nonce.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			keyOnly, err := cmd.Flags().GetBool("key-only")
			if err != nil {
				return fmt.Errorf("reading key-only flag: %w", err)
			}

			size := salsa20.KeySize + salsa20.NonceSize
			if keyOnly {
				size = salsa20.KeySize
			}

			material := make([]byte, size)
			if _, err := rand.Read(material); err != nil {
				return fmt.Errorf("generating key material: %w", err)
			}

			fmt.Println(hex.EncodeToString(material)) //nolint:forbidigo

			return nil
		},
	}

	cmd.Flags().Bool("key-only", false, "Generate only the 32-byte key, without a nonce")

	return cmd
}

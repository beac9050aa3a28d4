package commands

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/gosalsa/internal/config"
)

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version)

	root.Use = "gosalsa [flags] command [flags]"
	root.Short = "Salsa20 file encryption utility"
	root.Long = `A file encryption utility built on the Salsa20 stream cipher.
Encryption and decryption are the same keystream transform: files keep their
size and carry no container format. With 80-character key material the nonce
is caller-chosen and the output is the raw transform; with 64 characters each
file gets a fresh random nonce, stored as its first 8 bytes.`

	root.SilenceErrors = true
	root.SilenceUsage = true

	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		viper.SetEnvPrefix("gosalsa")
		viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
		viper.AutomaticEnv()

		if err := viper.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
			return fmt.Errorf("binding flags: %w", err)
		}

		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return fmt.Errorf("binding command flags: %w", err)
		}

		return nil
	}

	root.PersistentFlags().BoolP("show", "s", false, "Show the configuration and exit")
	root.PersistentFlags().IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	root.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")
	root.PersistentFlags().BoolP("delete", "d", false, "Delete the original file after successful encryption/decryption")
	root.PersistentFlags().Bool("progress", false, "Report per-file progress while processing")
	root.PersistentFlags().Bool("stats", false, "Print processing statistics on completion")
	root.PersistentFlags().Bool("dry", false, "Preview the files that would be processed without writing anything")
	root.PersistentFlags().Bool("preserve-timestamps", false, "Preserve the source modification time on the output file")

	root.PersistentFlags().StringP("key", "k", "", "Key material as hex: 64 chars (key only) or 80 chars (key and nonce)")
	root.PersistentFlags().StringP("key-file", "f", "", "Path to a file holding the key material in hex")

	root.PersistentFlags().String("encrypt-ext", ".enc", "Suffix to append to encrypted files")
	root.PersistentFlags().String("decrypt-ext", "", "Suffix to append to decrypted files, after stripping the encrypted suffix")

	root.PersistentFlags().StringSliceP("include", "i", nil, "Only process files matching these find -path style patterns")
	root.PersistentFlags().StringSliceP("exclude", "e", nil, "Skip files matching these find -path style patterns")
	root.PersistentFlags().String("include-from", "", "Read include patterns from a JSONC file")
	root.PersistentFlags().String("exclude-from", "", "Read exclude patterns from a JSONC file")

	root.AddCommand(
		NewEncryptCommand(cfg),
		NewDecryptCommand(cfg),
		NewGenerateCommand(),
		NewCheckCommand(cfg),
	)

	return root
}

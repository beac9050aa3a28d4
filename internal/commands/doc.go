// Package commands provides the command-line interface for the gosalsa tool.
//
// It implements commands for:
//   - encryption
//   - decryption
//   - key generation
//   - pattern checking
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/gosalsa/internal/config"
)

// preRun returns a PreRunE handler that unmarshals the bound configuration,
// resolves positional args into cfg.Files (defaulting to the current
// directory) and validates the result.
func preRun(cfg *config.Config, decrypt bool) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		if err := viper.Unmarshal(cfg); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}

		cfg.Decrypt = decrypt

		if len(args) == 0 {
			cfg.Files = []string{"."}
		} else {
			cfg.Files = args
		}

		return cfg.Validate()
	}
}

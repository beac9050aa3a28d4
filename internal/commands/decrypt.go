package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/gosalsa/internal/config"
	"github.com/idelchi/gosalsa/internal/logic"
)

// NewDecryptCommand creates a new cobra command for the decrypt subcommand.
// With no positional args it walks the current directory, picking up files
// with the encrypted suffix.
func NewDecryptCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "decrypt [flags] [paths/patterns...]",
		Aliases: []string{"dec"},
		Short:   "Decrypt files",
		Args:    cobra.ArbitraryArgs,
		PreRunE: preRun(cfg, true),
		RunE: func(_ *cobra.Command, _ []string) error {
			return logic.Run(cfg)
		},
	}
}

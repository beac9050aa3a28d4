// gosalsa encrypts and decrypts files with the Salsa20 stream cipher.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/gosalsa/internal/commands"
	"github.com/idelchi/gosalsa/internal/config"
)

// version is injected at build time.
var version = "dev" //nolint:gochecknoglobals

func main() {
	var cfg config.Config

	if err := commands.NewRootCommand(&cfg, version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

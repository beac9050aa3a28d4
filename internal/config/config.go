// Package config defines the runtime configuration and its validation rules.
package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Config holds all runtime options, populated from flags and GOSALSA_*
// environment variables.
type Config struct {
	// Common flags
	Show     bool `yaml:"show"`
	Parallel int  `validate:"min=1"         yaml:"parallel"`
	Quiet    bool `yaml:"quiet"`
	Delete   bool `yaml:"delete"`
	Progress bool `yaml:"progress"`
	Stats    bool `yaml:"stats"`
	Dry      bool `yaml:"dry"`

	PreserveTimestamps bool `mapstructure:"preserve-timestamps" yaml:"preserve-timestamps"`

	// Key material: hex given directly or a path to a file holding it.
	// 64 characters carry a key alone, 80 carry a key and a nonce.
	Key     string `validate:"omitempty,hexadecimal" yaml:"key"`
	KeyFile string `mapstructure:"key-file"          yaml:"key-file"`

	// Output naming
	EncryptSuffix string `mapstructure:"encrypt-ext" yaml:"encrypt-ext"`
	DecryptSuffix string `mapstructure:"decrypt-ext" yaml:"decrypt-ext"`

	// File selection
	Include     []string `yaml:"include"`
	Exclude     []string `yaml:"exclude"`
	IncludeFrom string   `mapstructure:"include-from" yaml:"include-from"`
	ExcludeFrom string   `mapstructure:"exclude-from" yaml:"exclude-from"`

	// Command-specific, set by the subcommands rather than flags
	Decrypt bool `mapstructure:"-" yaml:"decrypt"`

	// Positional arguments
	Files []string `mapstructure:"-" validate:"min=1" yaml:"files"`
}

// Validate checks the configuration against the struct tags plus the rules
// tags cannot express. Key material semantics (length, decodability) are
// validated where the key is decoded.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	if c.Key != "" && c.KeyFile != "" {
		return errors.New("key and key-file are mutually exclusive")
	}

	return nil
}

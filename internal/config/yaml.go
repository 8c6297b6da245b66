package config

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits config file size (1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("config: nil or empty data")
	ErrNilDestination = errors.New("config: nil destination pointer")
	ErrInputTooLarge  = errors.New("config: input exceeds maximum size")
)

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// unmarshalStrict decodes YAML and rejects unknown fields.
func unmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Marshal encodes a config back to YAML, used by the CLI to print the
// effective configuration.
func Marshal(c *Config) ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return out, nil
}

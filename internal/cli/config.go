package cli

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/labkit-io/rundesc/pkg/errors"
	"github.com/labkit-io/rundesc/pkg/rundesc/versioning"
)

// Config holds the user-level defaults for the CLI. Command-line flags
// always win over config values.
type Config struct {
	// Format is the default output format ("json" or "yaml").
	// Empty means infer from the output path or keep the input format.
	Format string

	// TargetVersion is the default target for convert.
	TargetVersion int

	// TargetSet records whether target_version was present in the file.
	TargetSet bool
}

// DefaultConfig returns the built-in defaults: no preferred format, and
// the storage version as the convert target.
func DefaultConfig() Config {
	return Config{TargetVersion: versioning.StorageVersion}
}

// fileConfig mirrors the TOML layout of the config file.
type fileConfig struct {
	Format        string `toml:"format"`
	TargetVersion int    `toml:"target_version"`
}

// LoadConfig reads the config file at path. A missing file yields the
// defaults; only keys present in the file override them.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeParse, err, "load config %s", path)
	}

	if meta.IsDefined("format") {
		format := strings.TrimSpace(strings.ToLower(raw.Format))
		if err := validateFormat(format); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "config %s", path)
		}
		cfg.Format = format
	}

	if meta.IsDefined("target_version") {
		cfg.TargetVersion = raw.TargetVersion
		cfg.TargetSet = true
	}

	return cfg, nil
}

// ==============================================================================================
// FILE: config/config.go
// ==============================================================================================
// PACKAGE: config
// PURPOSE: Optional coral.toml project configuration: which library files to
//          auto-load, the snapshot cache path, and the serve subcommand's
//          bind address and JWT secret. Every field has a zero-value
//          default, so a missing file is never an error (SPEC_FULL.md §B).
// ==============================================================================================

package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the shape of coral.toml.
type Config struct {
	// Libraries lists `.coral` files to load at startup, in order.
	Libraries []string `toml:"libraries"`

	// SnapshotPath, if set, enables the binary rule-set cache (loader
	// package) at this path.
	SnapshotPath string `toml:"snapshot_path"`

	Serve ServeConfig `toml:"serve"`
}

// ServeConfig configures the "serve" subcommand.
type ServeConfig struct {
	Addr      string `toml:"addr"`
	JWTSecret string `toml:"jwt_secret"`
}

// Default returns the configuration used when no coral.toml is present.
func Default() Config {
	return Config{Serve: ServeConfig{Addr: ":8080"}}
}

// Load reads and parses path. A missing file is not an error: it returns
// Default() unchanged, since every field already has a usable zero value.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = ":8080"
	}
	return cfg, nil
}

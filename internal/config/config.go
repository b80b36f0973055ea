// Package config loads and stores CLI configuration in the XDG config dir.
// The file describes how to reach the password store program; it never holds
// secrets.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"passstore/cli/internal/store"
	"passstore/cli/internal/transport"
	"passstore/cli/internal/xdg"
)

// Environment overrides, applied after the file is read.
const (
	EnvProgram  = "PASSSTORE_PROGRAM"
	EnvBackend  = "PASSSTORE_BACKEND"
	EnvLogLevel = "PASSSTORE_LOG_LEVEL"
)

// FileName is the config file name inside the XDG config dir.
const FileName = "config.toml"

// Config holds non-sensitive CLI settings.
type Config struct {
	Program    string   `toml:"program"`
	BaseArgs   []string `toml:"base_args"`
	ListenArgs []string `toml:"listen_args"`
	Backend    string   `toml:"backend"`
	LogLevel   string   `toml:"log_level"`
}

// Default returns the settings used when no config file exists.
func Default() Config {
	t := transport.DefaultConfig()
	return Config{
		Program:    t.Program,
		BaseArgs:   []string{},
		ListenArgs: t.ListenArgs,
		Backend:    string(store.BackendJSONAPI),
		LogLevel:   "info",
	}
}

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads configuration; missing file returns defaults.
// Environment overrides are applied in both cases.
func Load() (Config, error) {
	p, err := Path()
	if err != nil {
		return Config{}, err
	}
	return LoadFile(p)
}

// LoadFile reads configuration from p.
func LoadFile(p string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(p)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return c, fmt.Errorf("config load failed (%s): %w", p, err)
	default:
		if _, err := toml.Decode(string(data), &c); err != nil {
			return c, fmt.Errorf("config parse failed (%s): %w", p, err)
		}
	}
	applyEnv(&c)
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("config invalid (%s): %w", p, err)
	}
	return c, nil
}

func applyEnv(c *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvProgram)); v != "" {
		c.Program = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvBackend)); v != "" {
		c.Backend = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
}

// Validate checks the settings that every transport relies on.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Program) == "" {
		return errors.New("program must not be empty")
	}
	if len(c.ListenArgs) == 0 {
		return errors.New("listen_args must not be empty")
	}
	if _, err := store.ParseBackend(c.Backend); err != nil {
		return err
	}
	return nil
}

// StoreBackend returns the parsed backend.
func (c Config) StoreBackend() store.Backend {
	b, err := store.ParseBackend(c.Backend)
	if err != nil {
		return store.BackendJSONAPI
	}
	return b
}

// Transport converts the settings into a transport configuration.
func (c Config) Transport() transport.Config {
	return transport.Config{
		Program:    c.Program,
		BaseArgs:   append([]string(nil), c.BaseArgs...),
		ListenArgs: append([]string(nil), c.ListenArgs...),
	}
}

// Encode renders c as TOML.
func Encode(c Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	return SaveFile(p, c)
}

// SaveFile writes c to p with 0600 permissions.
func SaveFile(p string, c Config) error {
	if err := c.Validate(); err != nil {
		return err
	}
	b, err := Encode(c)
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

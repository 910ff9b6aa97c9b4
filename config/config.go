// Package config loads the disassembler's side-loaded configuration
// module (spec §6): data-region ranges, a byte-to-character map used
// in data-byte comments, and a named output formatter selector.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/lookbusy1344/z80toolchain/disasm"
)

// Config is the disassembler's optional side-loaded module.
type Config struct {
	// Data lists inclusive address ranges to render as bytes rather
	// than decode as instructions. lo == hi is a single byte; lo > hi
	// is rejected by LoadFrom.
	Data []disasm.DataRange `toml:"data"`

	// Chr overrides the default byte-to-character map used in "db"
	// comments. Keys are decimal byte values ("65" -> "A"); bytes with
	// no entry here fall back to the printable-ASCII default, or "."
	// for anything outside it. Sparse so config.toml need not spell
	// out all 256 entries.
	Chr map[string]string `toml:"chr"`

	// Output names a built-in formatter variant: "default" or
	// "nodump".
	Output string `toml:"output"`
}

// DefaultConfig returns a Config with no data ranges, the default
// character map, and the default output formatter.
func DefaultConfig() *Config {
	return &Config{
		Data:   nil,
		Chr:    nil,
		Output: "default",
	}
}

// CharMap expands Chr into the full 256-entry table: a literal
// character for printable ASCII (0x20-0x7E), "." otherwise, each
// overridden per-byte by any entry present in Chr.
func (c *Config) CharMap() [256]string {
	var table [256]string
	for i := range table {
		if i >= 0x20 && i <= 0x7E {
			table[i] = string(rune(i))
		} else {
			table[i] = "."
		}
	}
	for k, v := range c.Chr {
		n, err := strconv.Atoi(k)
		if err != nil || n < 0 || n > 255 {
			continue
		}
		table[n] = v
	}
	return table
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "z80toolchain")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "z80toolchain")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file. A missing
// file is not an error: it yields DefaultConfig(). lo > hi in any
// Data range is rejected per spec §6.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	for _, r := range cfg.Data {
		if r.Lo > r.Hi {
			return nil, fmt.Errorf("data range [%d, %d]: lo > hi", r.Lo, r.Hi)
		}
	}
	if cfg.Output == "" {
		cfg.Output = "default"
	}
	if cfg.Output != "default" && cfg.Output != "nodump" {
		return nil, fmt.Errorf("unknown output formatter %q", cfg.Output)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// Package tapconfig loads the tap settings file (~/.tap/config.yaml).
package tapconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/andrewgazelka/tap/internal/keys"
)

// Config holds the settings read by the CLI front-end and passed into the
// host as a plain record.
type Config struct {
	Editor  string        `yaml:"editor"`
	Keybind KeybindConfig `yaml:"keybinds"`
	Timing  TimingConfig  `yaml:"timing"`
}

type KeybindConfig struct {
	Editor string `yaml:"editor"`
}

type TimingConfig struct {
	EscapeTimeoutMS uint64 `yaml:"escape_timeout_ms"`
}

const defaultEscapeTimeoutMS = 50

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Keybind: KeybindConfig{Editor: "Ctrl-e"},
		Timing:  TimingConfig{EscapeTimeoutMS: defaultEscapeTimeoutMS},
	}
}

// Load reads ~/.tap/config.yaml. A missing file is not an error.
func Load() (*Config, error) {
	home := os.Getenv("HOME")
	if home == "" {
		home = "."
	}
	return LoadFrom(filepath.Join(home, ".tap", "config.yaml"))
}

// LoadFrom reads the config from the given path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Timing.EscapeTimeoutMS == 0 {
		cfg.Timing.EscapeTimeoutMS = defaultEscapeTimeoutMS
	}
	if cfg.Keybind.Editor == "" {
		cfg.Keybind.Editor = "Ctrl-e"
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if _, err := keys.ParseKeybind(c.Keybind.Editor); err != nil {
		return fmt.Errorf("keybinds.editor: %w", err)
	}
	return nil
}

// ResolveEditor returns the editor command: config override, then $VISUAL,
// then $EDITOR, then "vi".
func (c *Config) ResolveEditor() string {
	if c.Editor != "" {
		return c.Editor
	}
	if v := os.Getenv("VISUAL"); v != "" {
		return v
	}
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	return "vi"
}

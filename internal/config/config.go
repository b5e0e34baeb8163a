// Package config handles layered YAML configuration with .env and
// environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/smileynet/signup/internal/form"
)

// UI modes accepted by UI.Mode.
const (
	ModeAuto   = "auto"
	ModeTUI    = "tui"
	ModePrompt = "prompt"
	ModePlain  = "plain"
)

// Config holds all signup configuration.
type Config struct {
	Form Form `yaml:"form"`
	UI   UI   `yaml:"ui"`
}

// Form holds form content settings.
type Form struct {
	Countries []string `yaml:"countries"`
}

// UI holds renderer settings.
type UI struct {
	Mode         string `yaml:"mode"`          // "auto" | "tui" | "prompt" | "plain"
	AltScreen    bool   `yaml:"alt_screen"`    // Run the TUI in the alternate screen buffer
	TemplatesDir string `yaml:"templates_dir"` // Local overrides for embedded templates
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Form: Form{
			Countries: slices.Clone(form.DefaultCountries),
		},
		UI: UI{
			Mode:         ModeAuto,
			TemplatesDir: ".signup/templates",
		},
	}
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if len(c.Form.Countries) == 0 {
		return errors.New("config: form.countries cannot be empty")
	}
	seen := make(map[string]bool, len(c.Form.Countries))
	for i, country := range c.Form.Countries {
		if strings.TrimSpace(country) == "" {
			return fmt.Errorf("config: form.countries[%d] cannot be blank", i)
		}
		if seen[country] {
			return fmt.Errorf("config: form.countries has duplicate %q", country)
		}
		seen[country] = true
	}
	switch c.UI.Mode {
	case ModeAuto, ModeTUI, ModePrompt, ModePlain:
		// valid
	default:
		return fmt.Errorf("config: ui.mode must be one of auto, tui, prompt, plain; got %q", c.UI.Mode)
	}
	if c.UI.TemplatesDir == "" {
		return errors.New("config: ui.templates_dir cannot be empty")
	}
	return nil
}

// ApplyEnv applies process environment overrides to the config.
// Supported variables: SIGNUP_COUNTRIES, SIGNUP_UI_MODE, SIGNUP_ALT_SCREEN,
// SIGNUP_TEMPLATES_DIR.
func (c *Config) ApplyEnv() error {
	return c.applyLookup(os.Getenv)
}

// ApplyDotEnv applies overrides from a dotenv file without touching the
// process environment. A missing file is not an error.
func (c *Config) ApplyDotEnv(path string) error {
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: reading %s: %w", path, err)
	}
	return c.applyLookup(func(key string) string { return vars[key] })
}

func (c *Config) applyLookup(getenv func(string) string) error {
	if v := getenv("SIGNUP_COUNTRIES"); v != "" {
		var countries []string
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				countries = append(countries, part)
			}
		}
		c.Form.Countries = countries
	}
	if v := getenv("SIGNUP_UI_MODE"); v != "" {
		c.UI.Mode = v
	}
	if v := getenv("SIGNUP_ALT_SCREEN"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid SIGNUP_ALT_SCREEN %q: %w", v, err)
		}
		c.UI.AltScreen = b
	}
	if v := getenv("SIGNUP_TEMPLATES_DIR"); v != "" {
		c.UI.TemplatesDir = v
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Form *rawForm `yaml:"form"`
	UI   *rawUI   `yaml:"ui"`
}

type rawForm struct {
	Countries *[]string `yaml:"countries"`
}

type rawUI struct {
	Mode         *string `yaml:"mode"`
	AltScreen    *bool   `yaml:"alt_screen"`
	TemplatesDir *string `yaml:"templates_dir"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Form != nil {
		if layer.Form.Countries != nil {
			c.Form.Countries = append([]string(nil), (*layer.Form.Countries)...)
		}
	}
	if layer.UI != nil {
		if layer.UI.Mode != nil {
			c.UI.Mode = *layer.UI.Mode
		}
		if layer.UI.AltScreen != nil {
			c.UI.AltScreen = *layer.UI.AltScreen
		}
		if layer.UI.TemplatesDir != nil {
			c.UI.TemplatesDir = *layer.UI.TemplatesDir
		}
	}
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for tsheet, stored in ~/.tsheet/config.yaml.
type Config struct {
	// Sheet is the workbook sheet holding the time log.
	Sheet    string         `yaml:"sheet"`
	Rules    RulesConfig    `yaml:"rules"`
	Holidays HolidaysConfig `yaml:"holidays"`
	Log      LogConfig      `yaml:"log"`
	Server   ServerConfig   `yaml:"server"`
}

// RulesConfig holds the daily hour bounds a valid day must respect.
type RulesConfig struct {
	MinHours float64 `yaml:"min_hours"`
	MaxHours float64 `yaml:"max_hours"`
}

// HolidaysConfig controls how the holiday calendar is resolved.
type HolidaysConfig struct {
	// Offline disables the public holiday API; only the manual table is used.
	Offline  bool          `yaml:"offline"`
	APIURL   string        `yaml:"api_url"`
	Country  string        `yaml:"country"`
	Language string        `yaml:"language"`
	Timeout  time.Duration `yaml:"timeout"`
	// APIToken is sent as a bearer token when set.
	APIToken string `yaml:"api_token"`
	// Manual maps a category name to "MM-DD" dates repeated every year.
	// Nil means the built-in table.
	Manual map[string][]string `yaml:"manual"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

const (
	DefaultSheet       = "log"
	DefaultMinHours    = 7.0
	DefaultMaxHours    = 9.5
	DefaultAPIURL      = "https://openholidaysapi.org/PublicHolidays"
	DefaultCountry     = "BR"
	DefaultLanguage    = "PT"
	DefaultTimeout     = 10 * time.Second
	DefaultLogLevel    = "info"
	DefaultServerAddr  = ":8080"
	configDirName      = ".tsheet"
	configFileName     = "config.yaml"
	maxReasonableHours = 24.0
)

// Default returns a Config pre-filled with the built-in defaults.
func Default() Config {
	return Config{
		Sheet: DefaultSheet,
		Rules: RulesConfig{
			MinHours: DefaultMinHours,
			MaxHours: DefaultMaxHours,
		},
		Holidays: HolidaysConfig{
			APIURL:   DefaultAPIURL,
			Country:  DefaultCountry,
			Language: DefaultLanguage,
			Timeout:  DefaultTimeout,
		},
		Log:    LogConfig{Level: DefaultLogLevel},
		Server: ServerConfig{Addr: DefaultServerAddr},
	}
}

// configTemplate is the annotated config written on first run.
const configTemplate = `# tsheet configuration - ~/.tsheet/config.yaml
#
# All settings are optional; the defaults shown below match the standard
# timesheet rules. Delete this file to regenerate it.

# Name of the workbook sheet that holds the time log.
sheet: log

# Daily hour bounds. A day is valid when min_hours <= total <= max_hours
# and none of its entries overlap.
rules:
  min_hours: 7.0
  max_hours: 9.5

holidays:
  # Set to true to skip the public holiday API and use the manual table only.
  offline: false
  api_url: https://openholidaysapi.org/PublicHolidays
  country: BR
  language: PT
  timeout: 10s
  # Optional bearer token for holiday APIs that require one.
  api_token: ""

  # Holidays repeated every year, as MM-DD, grouped by category.
  # Categories only organise the list; they are merged before use.
  manual:
    municipal:
      - "01-25"   # Sao Paulo anniversary
      - "04-23"   # Sao Jorge
    company:
      - "06-12"
      - "12-24"
      - "12-31"
    regional:
      - "11-20"   # Consciencia Negra
      - "07-09"   # Revolucao Constitucionalista
    optional: []

log:
  # debug, info, warn or error
  level: info
  # Also append logs to this file when set.
  file: ""

server:
  addr: ":8080"
`

// DefaultPath returns the path to ~/.tsheet/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

// Load reads the config at path. An empty path means DefaultPath, which is
// created with the annotated template on first run. A missing explicit path
// is an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	return Parse(data, path)
}

// Parse decodes YAML config data on top of the defaults and validates it.
// source is only used in error messages.
func Parse(data []byte, source string) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", source, err)
	}

	// Fill zero-value fields so a partially filled file still works.
	def := Default()
	if cfg.Sheet == "" {
		cfg.Sheet = def.Sheet
	}
	if cfg.Rules.MinHours == 0 && cfg.Rules.MaxHours == 0 {
		cfg.Rules = def.Rules
	}
	if cfg.Holidays.APIURL == "" {
		cfg.Holidays.APIURL = def.Holidays.APIURL
	}
	if cfg.Holidays.Country == "" {
		cfg.Holidays.Country = def.Holidays.Country
	}
	if cfg.Holidays.Language == "" {
		cfg.Holidays.Language = def.Holidays.Language
	}
	if cfg.Holidays.Timeout <= 0 {
		cfg.Holidays.Timeout = def.Holidays.Timeout
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}

	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("invalid config %s: %w", source, err)
	}
	return cfg, nil
}

// Validate checks the rule bounds.
func (c Config) Validate() error {
	r := c.Rules
	if r.MinHours < 0 || r.MaxHours > maxReasonableHours {
		return fmt.Errorf("rules must lie within [0, %g] hours", maxReasonableHours)
	}
	if r.MinHours > r.MaxHours {
		return fmt.Errorf("rules.min_hours (%g) is greater than rules.max_hours (%g)", r.MinHours, r.MaxHours)
	}
	return nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

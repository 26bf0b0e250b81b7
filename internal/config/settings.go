package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/brandon-m-wang/samplefsys/internal/logging"
	"github.com/brandon-m-wang/samplefsys/internal/selection"
)

// Settings holds all configuration options.
type Settings struct {
	// Library settings
	RootDir      string `json:"root_dir"`
	TaxonomyFile string `json:"taxonomy_file"` // relative to RootDir unless absolute

	// File picker
	AudioExtensions []string `json:"audio_extensions"`

	// Naming defaults applied at startup
	DefaultToggles selection.NamingToggles `json:"default_toggles"`

	// Tag settings
	TagSamples bool `json:"tag_samples"`

	// Logging
	LogFile string `json:"log_file"`
	Color   string `json:"color"` // auto, always, never

	// Library scan
	ScanConcurrency int `json:"scan_concurrency"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		RootDir:      filepath.Join(homeDir, "Music", "Samples", "sample-fsys"),
		TaxonomyFile: "config.json",

		AudioExtensions: []string{".wav", ".aiff", ".mp3", ".flac", ".ogg"},

		DefaultToggles: selection.DefaultToggles(),

		TagSamples: false,

		Color: "auto",

		ScanConcurrency: 4,
	}
}

// DefaultSettingsPath returns the settings file location under the user's
// configuration directory.
func DefaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		homeDir, _ := os.UserHomeDir()
		dir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(dir, "sample-fsys", "settings.json")
}

// Load reads settings from a JSON file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks the settings that cannot be defaulted silently.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.RootDir) == "" {
		return fmt.Errorf("root_dir must not be empty")
	}
	switch logging.ColorMode(s.Color) {
	case logging.ColorAuto, logging.ColorAlways, logging.ColorNever:
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", s.Color)
	}
	if s.ScanConcurrency < 0 {
		return fmt.Errorf("scan_concurrency must not be negative")
	}
	return nil
}

// TaxonomyPath returns the absolute location of the taxonomy store.
func (s *Settings) TaxonomyPath() string {
	name := s.TaxonomyFile
	if name == "" {
		name = "config.json"
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.RootDir, name)
}

// IsAudioFile reports whether path has one of the configured extensions,
// compared case-insensitively.
func (s *Settings) IsAudioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext != "" && slices.ContainsFunc(s.AudioExtensions, func(e string) bool {
		return strings.ToLower(e) == ext
	})
}

// ToToggles returns the naming toggles a new selection starts with.
func (s *Settings) ToToggles() selection.NamingToggles {
	return s.DefaultToggles
}

// ToLoggingConfig converts settings to a logging.Config.
func (s *Settings) ToLoggingConfig(verbose bool) logging.Config {
	return logging.Config{
		Color:   logging.ColorMode(s.Color),
		LogFile: s.LogFile,
		Verbose: verbose,
	}
}

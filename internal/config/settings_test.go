package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/brandon-m-wang/samplefsys/internal/logging"
	"github.com/brandon-m-wang/samplefsys/internal/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
	assert.Equal(t, selection.DefaultToggles(), s.ToToggles())
	assert.Equal(t, "config.json", s.TaxonomyFile)
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"root_dir": "/samples",
		"default_toggles": {"prefix_bpm": true},
		"color": "never"
	}`), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/samples", s.RootDir)
	assert.Equal(t, DefaultSettings().AudioExtensions, s.AudioExtensions)
	assert.Equal(t, 4, s.ScanConcurrency)

	// toggles absent from the file keep their defaults
	assert.True(t, s.DefaultToggles.PrefixBPM)
	assert.True(t, s.DefaultToggles.PrefixArtist)
	assert.Equal(t, logging.ColorNever, s.ToLoggingConfig(false).Color)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed", `{"root_dir": `},
		{"empty root", `{"root_dir": "  "}`},
		{"bad color", `{"color": "rainbow"}`},
		{"negative concurrency", `{"scan_concurrency": -1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")
	s := DefaultSettings()
	s.RootDir = "/Volumes/Samples"
	s.TagSamples = true
	s.DefaultToggles = selection.NamingToggles{PrefixKey: true}

	require.NoError(t, s.Save(path))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestTaxonomyPath(t *testing.T) {
	s := DefaultSettings()
	s.RootDir = "/lib"
	assert.Equal(t, filepath.Join("/lib", "config.json"), s.TaxonomyPath())

	s.TaxonomyFile = "meta/tax.json"
	assert.Equal(t, filepath.Join("/lib", "meta", "tax.json"), s.TaxonomyPath())

	s.TaxonomyFile = "/etc/tax.json"
	assert.Equal(t, "/etc/tax.json", s.TaxonomyPath())

	s.TaxonomyFile = ""
	assert.Equal(t, filepath.Join("/lib", "config.json"), s.TaxonomyPath())
}

func TestIsAudioFile(t *testing.T) {
	s := DefaultSettings()
	tests := []struct {
		path string
		want bool
	}{
		{"snare.wav", true},
		{"SNARE.WAV", true},
		{"pad.aiff", true},
		{"vox.mp3", true},
		{"loop.flac", true},
		{"fx.ogg", true},
		{"notes.txt", false},
		{"wav", false},
		{"archive.wav.zip", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, s.IsAudioFile(tt.path))
		})
	}
}

func TestDefaultSettingsPath(t *testing.T) {
	p := DefaultSettingsPath()
	assert.Equal(t, "settings.json", filepath.Base(p))
	assert.Equal(t, "sample-fsys", filepath.Base(filepath.Dir(p)))
}

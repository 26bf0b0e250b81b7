// Package config provides configuration management for sample-fsys.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Conversion to naming toggles and logging.Config for other packages
//
// Settings are separate from the taxonomy store: they live in the user's
// configuration directory, while the taxonomy lives inside the library root.
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Library at ~/Music/Samples/sample-fsys
//	// Taxonomy in <root>/config.json
//	// Artist, song and _og naming rules on
//
// # Loading from File
//
//	settings, err := config.Load(config.DefaultSettingsPath())
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Saving Settings
//
//	settings.RootDir = "/Volumes/Samples"
//	err := settings.Save(config.DefaultSettingsPath())
//
// # Configuration Options
//
// Settings includes options for:
//   - Library root and taxonomy file location
//   - Extensions accepted by the file picker
//   - Default naming toggles
//   - ID3 tagging of filed MP3 samples
//   - Log file and color mode
//   - Library scan concurrency
package config

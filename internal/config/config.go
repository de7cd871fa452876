// Package config loads the optional fuzzyphrase.toml build configuration
// file using github.com/pelletier/go-toml/v2.
package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// File is the parsed shape of fuzzyphrase.toml.
type File struct {
	MaxEditDistance     int      `toml:"max_edit_distance"`
	FuzzyEnabledScripts []string `toml:"fuzzy_enabled_scripts"`
}

// Load reads and parses path. A missing file is not an error: the zero
// File is returned so the caller can fall back to defaults.
func Load(path string) (File, error) {
	var f File
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return f, err
	}
	if err := toml.Unmarshal(b, &f); err != nil {
		return f, err
	}
	return f, nil
}

// IsZero reports whether f has no fields set, as when Load found no file.
func (f File) IsZero() bool {
	return f.MaxEditDistance == 0 && len(f.FuzzyEnabledScripts) == 0
}

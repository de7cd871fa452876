package fuzzyphrase

import (
	"encoding/json"
	"fmt"
	"os"
)

// FormatVersion is the on-disk metadata.json schema version this build
// writes and the only version Open accepts.
const FormatVersion = 1

// DefaultMaxEditDistance is used when a BuildConfig doesn't specify one.
const DefaultMaxEditDistance = 1

// DefaultFuzzyEnabledScripts lists the Unicode scripts fuzzy matching is
// attempted for by default.
var DefaultFuzzyEnabledScripts = []string{"Latin", "Greek", "Cyrillic"}

// WordReplacement is a surface-to-canonical word rewrite, applied to a
// query token before its lexicon and fuzzy lookups.
type WordReplacement struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// metadata is the on-disk metadata.json contract.
type metadata struct {
	IndexType           string            `json:"index_type"`
	FormatVersion       int               `json:"format_version"`
	FuzzyEnabledScripts []string          `json:"fuzzy_enabled_scripts"`
	MaxEditDistance     int               `json:"max_edit_distance"`
	WordReplacements    []WordReplacement `json:"word_replacements"`
}

func writeMetadata(path string, m metadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

func readMetadata(path string) (metadata, error) {
	var m metadata
	b, err := os.ReadFile(path)
	if err != nil {
		return m, err
	}
	if err := json.Unmarshal(b, &m); err != nil {
		return m, err
	}
	if m.FormatVersion != FormatVersion {
		return m, fmt.Errorf("fuzzyphrase: metadata.json format_version %d unsupported (want %d)", m.FormatVersion, FormatVersion)
	}
	return m, nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsZero(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "nonexistent.toml"))
	if err != nil {
		t.Fatalf("Load missing file: %v", err)
	}
	if !f.IsZero() {
		t.Fatalf("expected zero File, got %+v", f)
	}
}

func TestLoad_ParsesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fuzzyphrase.toml")
	content := "max_edit_distance = 2\nfuzzy_enabled_scripts = [\"Latin\", \"Cyrillic\"]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.MaxEditDistance != 2 {
		t.Errorf("MaxEditDistance = %d, want 2", f.MaxEditDistance)
	}
	if len(f.FuzzyEnabledScripts) != 2 || f.FuzzyEnabledScripts[0] != "Latin" {
		t.Errorf("FuzzyEnabledScripts = %v", f.FuzzyEnabledScripts)
	}
}

package fuzzyphrase

import (
	"os"
	"path/filepath"
	"testing"
)

func buildTempSet(t *testing.T, phrases [][]string, replacements []WordReplacement) *FuzzyPhraseSet {
	t.Helper()
	dir := t.TempDir()

	cfg := DefaultBuildConfig()
	b := New(dir, cfg)
	for _, p := range phrases {
		if err := b.Insert(p); err != nil {
			t.Fatalf("Insert(%v): %v", p, err)
		}
	}
	if len(replacements) > 0 {
		if err := b.LoadWordReplacements(replacements); err != nil {
			t.Fatalf("LoadWordReplacements: %v", err)
		}
	}
	if err := b.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	set, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { set.Close() })
	return set
}

var samplePhrases = [][]string{
	{"main", "street"},
	{"main", "road"},
	{"maine", "avenue"},
	{"shelton", "drive"},
	{"shelby", "drive"},
}

func TestFuzzyPhraseSet_Contains(t *testing.T) {
	set := buildTempSet(t, samplePhrases, nil)

	ok, err := set.Contains([]string{"main", "street"})
	if err != nil || !ok {
		t.Fatalf("Contains inserted phrase = %v, %v", ok, err)
	}

	ok, err = set.Contains([]string{"main", "avenue"})
	if err != nil || ok {
		t.Fatalf("Contains non-member phrase = %v, %v", ok, err)
	}
}

func TestFuzzyPhraseSet_ContainsPrefix(t *testing.T) {
	set := buildTempSet(t, samplePhrases, nil)

	ok, err := set.ContainsPrefix([]string{"main", "str"})
	if err != nil || !ok {
		t.Fatalf("ContainsPrefix truncated last token = %v, %v", ok, err)
	}

	ok, err = set.ContainsPrefix([]string{"main", "zzz"})
	if err != nil || ok {
		t.Fatalf("ContainsPrefix with no matching completion = %v, %v", ok, err)
	}
}

func TestFuzzyPhraseSet_FuzzyMatch_TypoInFirstWord(t *testing.T) {
	set := buildTempSet(t, samplePhrases, nil)

	matches, err := set.FuzzyMatch([]string{"sheltn", "drive"}, 1, 1)
	if err != nil {
		t.Fatalf("FuzzyMatch: %v", err)
	}
	found := false
	for _, m := range matches {
		if m.Words[0] == "shelton" && m.Words[1] == "drive" {
			found = true
			if m.EditDistance != 1 {
				t.Errorf("EditDistance = %d, want 1", m.EditDistance)
			}
		}
	}
	if !found {
		t.Fatalf("expected a fuzzy match to 'shelton drive', got %+v", matches)
	}
}

func TestFuzzyPhraseSet_FuzzyMatchPrefix_TruncatedLastWord(t *testing.T) {
	set := buildTempSet(t, samplePhrases, nil)

	matches, err := set.FuzzyMatchPrefix([]string{"main", "str"}, 1, 1)
	if err != nil {
		t.Fatalf("FuzzyMatchPrefix: %v", err)
	}
	found := false
	for _, m := range matches {
		if m.Words[0] == "main" && m.Words[1] == "street" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected 'main str' to prefix-complete to 'main street', got %+v", matches)
	}
}

func TestFuzzyPhraseSet_FuzzyMatchWindows_EmitsEveryLeadingPhrase(t *testing.T) {
	set := buildTempSet(t, [][]string{{"main", "street"}, {"main", "street", "bridge"}}, nil)

	windows, err := set.FuzzyMatchWindows([]string{"main", "street", "bridge"}, 1, 0, false)
	if err != nil {
		t.Fatalf("FuzzyMatchWindows: %v", err)
	}
	if len(windows) != 2 {
		t.Fatalf("expected both the 2-word and 3-word phrase, got %+v", windows)
	}
}

func TestFuzzyPhraseSet_FuzzyMatchMulti_MatchesIndependentCalls(t *testing.T) {
	set := buildTempSet(t, samplePhrases, nil)

	queries := [][]string{
		{"main", "str"},
		{"sheltn", "drive"},
		{"shelby", "driv"},
	}
	batched, err := set.FuzzyMatchMulti(queries, 1, 1)
	if err != nil {
		t.Fatalf("FuzzyMatchMulti: %v", err)
	}
	if len(batched) != len(queries) {
		t.Fatalf("FuzzyMatchMulti returned %d results, want %d", len(batched), len(queries))
	}
	for i, q := range queries {
		independent, err := set.FuzzyMatchPrefix(q, 1, 1)
		if err != nil {
			t.Fatalf("FuzzyMatchPrefix(%v): %v", q, err)
		}
		if len(independent) != len(batched[i]) {
			t.Errorf("query %v: multi returned %d matches, independent call returned %d", q, len(batched[i]), len(independent))
		}
	}
}

func TestFuzzyPhraseSet_BatchFuzzyMatch_PreservesOrder(t *testing.T) {
	set := buildTempSet(t, samplePhrases, nil)

	queries := make([][]string, 0, 20)
	for i := 0; i < 20; i++ {
		if i%2 == 0 {
			queries = append(queries, []string{"main", "str"})
		} else {
			queries = append(queries, []string{"shelby", "driv"})
		}
	}
	results := set.BatchFuzzyMatch(queries, 1, 1)
	if len(results) != len(queries) {
		t.Fatalf("got %d results, want %d", len(results), len(queries))
	}
	for i, r := range results {
		if r.Index != i {
			t.Errorf("result %d has Index %d", i, r.Index)
		}
		if r.Err != nil {
			t.Errorf("result %d: %v", i, r.Err)
		}
	}
}

func TestFuzzyPhraseSet_WordReplacement_AppliedBeforeLookup(t *testing.T) {
	set := buildTempSet(t, samplePhrases, []WordReplacement{{From: "st", To: "street"}})

	ok, err := set.Contains([]string{"main", "st"})
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	if ok {
		t.Fatalf("Contains should require the raw phrase literally, not its replacement")
	}

	matches, err := set.FuzzyMatch([]string{"main", "st"}, 1, 0)
	if err != nil {
		t.Fatalf("FuzzyMatch: %v", err)
	}
	found := false
	for _, m := range matches {
		if m.Words[1] == "street" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected 'st' to resolve to 'street' via word replacement, got %+v", matches)
	}
}

func TestOpen_IndexDirectoryLayout(t *testing.T) {
	dir := t.TempDir()
	b := New(dir, DefaultBuildConfig())
	if err := b.Insert([]string{"main", "street"}); err != nil {
		t.Fatal(err)
	}
	if err := b.Finish(); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{prefixFileName, fuzzyFSTName, fuzzyMsgName, phraseFileName, metadataName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}
}

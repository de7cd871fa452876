package phraseset

import (
	"path/filepath"
	"testing"
)

func buildTempPhraseSet(t *testing.T, phrases [][]uint32) *PhraseSet {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "phrase.fst")

	b := NewBuilder()
	for _, p := range phrases {
		if err := b.Insert(p); err != nil {
			t.Fatalf("Insert(%v): %v", p, err)
		}
	}
	if err := b.Finish(path); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	ps, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { ps.Close() })
	return ps
}

func fullPhrase(ids ...uint32) QueryPhrase {
	qp := make(QueryPhrase, len(ids))
	for i, id := range ids {
		qp[i] = NewFull(id, 0)
	}
	return qp
}

func TestPhraseSet_Contains(t *testing.T) {
	ps := buildTempPhraseSet(t, [][]uint32{
		{1, 61_528, 561_528},
		{61_528, 561_528, 1},
		{561_528, 1, 61_528},
	})

	ok, err := ps.Contains(fullPhrase(1, 61_528, 561_528))
	if err != nil || !ok {
		t.Fatalf("Contains inserted phrase = %v, %v", ok, err)
	}

	ok, err = ps.Contains(fullPhrase(1, 1, 1))
	if err != nil || ok {
		t.Fatalf("Contains non-member phrase = %v, %v", ok, err)
	}
}

func TestPhraseSet_ContainsPrefix(t *testing.T) {
	ps := buildTempPhraseSet(t, [][]uint32{
		{10, 20, 30},
		{10, 20, 40},
		{10, 99, 1},
	})

	phrase := QueryPhrase{NewFull(10, 0), NewFull(20, 0), NewPrefixWord(25, 35)}
	ok, err := ps.ContainsPrefix(phrase)
	if err != nil || !ok {
		t.Fatalf("ContainsPrefix in-range = %v, %v", ok, err)
	}

	phrase = QueryPhrase{NewFull(10, 0), NewFull(20, 0), NewPrefixWord(41, 50)}
	ok, err = ps.ContainsPrefix(phrase)
	if err != nil || ok {
		t.Fatalf("ContainsPrefix out-of-range = %v, %v", ok, err)
	}
}

func TestPhraseSet_MatchCombinations(t *testing.T) {
	ps := buildTempPhraseSet(t, [][]uint32{
		{1, 2, 3},
		{1, 2, 4},
	})

	possibilities := []QueryPhrase{
		{NewFull(1, 0)},
		{NewFull(2, 0)},
		{NewFull(3, 1), NewFull(4, 0), NewFull(5, 0)},
	}
	got := ps.MatchCombinations(possibilities, 1)
	if len(got) != 2 {
		t.Fatalf("MatchCombinations = %d results, want 2: %+v", len(got), got)
	}
}

func TestPhraseSet_MatchCombinations_RejectsOverBudget(t *testing.T) {
	ps := buildTempPhraseSet(t, [][]uint32{{1, 2, 3}})

	possibilities := []QueryPhrase{
		{NewFull(1, 2)},
		{NewFull(2, 0)},
		{NewFull(3, 0)},
	}
	got := ps.MatchCombinations(possibilities, 1)
	if len(got) != 0 {
		t.Fatalf("expected budget-exceeding candidate to be rejected, got %+v", got)
	}
}

func TestPhraseSet_MatchCombinationsAsPrefixes(t *testing.T) {
	ps := buildTempPhraseSet(t, [][]uint32{
		{1, 2, 30},
		{1, 2, 31},
	})

	possibilities := []QueryPhrase{
		{NewFull(1, 0)},
		{NewFull(2, 0)},
		{NewPrefixWord(30, 32)},
	}
	got := ps.MatchCombinationsAsPrefixes(possibilities, 0)
	if len(got) != 1 {
		t.Fatalf("MatchCombinationsAsPrefixes = %d results, want 1: %+v", len(got), got)
	}
	if got[0][2].Kind != Prefix {
		t.Errorf("expected the prefix candidate to be retained as-is, got %+v", got[0][2])
	}
}

func TestPhraseSet_MatchCombinationsAsWindows(t *testing.T) {
	ps := buildTempPhraseSet(t, [][]uint32{
		{1, 2},
		{1, 2, 3},
	})

	possibilities := []QueryPhrase{
		{NewFull(1, 0)},
		{NewFull(2, 0)},
		{NewFull(3, 0)},
	}
	got := ps.MatchCombinationsAsWindows(possibilities, 0, false)
	if len(got) != 2 {
		t.Fatalf("expected both the 2-word and 3-word phrase to match, got %+v", got)
	}
}

package fuzzyphrase

import (
	"strings"
	"unicode"

	"github.com/steosofficial/fuzzyphrase/fuzzyword"
	"github.com/steosofficial/fuzzyphrase/phraseset"
	"github.com/steosofficial/fuzzyphrase/prefixset"
)

// nonTerminalCandidates builds the QueryWord set for a token that is not
// the last in its phrase (4.6.1a): only Full candidates are possible, since
// a non-final token must resolve to one or more complete lexicon words.
// word is matched both as typed and, when a replacement is registered for
// it, in its canonical form; fuzzy variants are only generated from the
// canonical spelling.
func nonTerminalCandidates(word string, maxWordDist int, ps *prefixset.PrefixSet, fm *fuzzyword.FuzzyMap, repl *WordReplacementMap, scripts []*unicode.RangeTable) phraseset.QueryPhrase {
	best := make(map[uint32]int)
	record := func(id uint32, dist int) {
		if cur, ok := best[id]; !ok || dist < cur {
			best[id] = dist
		}
	}

	canonical := repl.Apply(word)
	if id, ok := ps.Lookup(canonical); ok {
		record(id, 0)
	}
	if canonical != word {
		if id, ok := ps.Lookup(word); ok {
			record(id, 0)
		}
	}

	if isFuzzyEligible(canonical, maxWordDist, scripts) {
		for _, r := range fm.Lookup(canonical, maxWordDist, idToWordFunc(ps)) {
			record(r.ID, r.EditDistance)
		}
	}

	return candidatesFromBest(best)
}

// terminalCandidates builds the QueryWord set for a phrase's last token
// (4.6.1b): the typed text is also a valid prefix of further completions,
// so in addition to any exact/fuzzy Full matches the result may contain one
// Prefix candidate spanning every lexicon word that starts with word, or
// with its canonical form when a replacement is registered for word.
//
// Two policy rules keep the Prefix range and the Full fuzzy candidates from
// double-counting or surfacing dead ends:
//   - A fuzzy match whose id already falls inside the prefix range is
//     dropped, since it is already represented by that range.
//   - A prefix range is suppressed entirely when the typed text is itself a
//     registered replacement source whose target does not share that
//     prefix: every completion in the range would be superseded by the
//     replacement target, so offering the range as a live completion set
//     would surface forms the index does not intend to serve.
func terminalCandidates(word string, maxWordDist int, ps *prefixset.PrefixSet, fm *fuzzyword.FuzzyMap, repl *WordReplacementMap, scripts []*unicode.RangeTable) phraseset.QueryPhrase {
	canonical := repl.Apply(word)

	var qws phraseset.QueryPhrase
	var lo, hi uint32
	havePrefixRange := false

	if !replacedAway(word, canonical) {
		if l, h, ok := ps.Range(canonical); ok {
			lo, hi = l, h
			havePrefixRange = true
			qws = append(qws, phraseset.NewPrefixWord(lo, hi))
		}
	}

	if id, ok := ps.Lookup(canonical); ok && (!havePrefixRange || id < lo || id > hi) {
		qws = append(qws, phraseset.NewFull(id, 0))
	}
	if canonical != word {
		if id, ok := ps.Lookup(word); ok && (!havePrefixRange || id < lo || id > hi) {
			qws = append(qws, phraseset.NewFull(id, 0))
		}
	}

	if isFuzzyEligible(canonical, maxWordDist, scripts) {
		best := make(map[uint32]int)
		for _, r := range fm.Lookup(canonical, maxWordDist, idToWordFunc(ps)) {
			if havePrefixRange && r.ID >= lo && r.ID <= hi {
				continue
			}
			if cur, ok := best[r.ID]; !ok || r.EditDistance < cur {
				best[r.ID] = r.EditDistance
			}
		}
		qws = append(qws, candidatesFromBest(best)...)
	}

	return qws
}

// replacedAway reports whether word is a registered replacement source that
// maps somewhere outside its own namespace, meaning its prefix range should
// not be offered as a completion set on its own.
func replacedAway(word, canonical string) bool {
	if canonical == word {
		return false
	}
	return !strings.HasPrefix(canonical, word)
}

func candidatesFromBest(best map[uint32]int) phraseset.QueryPhrase {
	out := make(phraseset.QueryPhrase, 0, len(best))
	for id, dist := range best {
		out = append(out, phraseset.NewFull(id, dist))
	}
	return out
}

func idToWordFunc(ps *prefixset.PrefixSet) func(uint32) string {
	return func(id uint32) string {
		w, _ := ps.GetByID(id)
		return w
	}
}

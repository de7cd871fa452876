// Package fuzzyphrase ties the lexicon (prefixset), fuzzy word index
// (fuzzyword), and phrase transducer (phraseset) together into the full
// fuzzy, prefix-tolerant phrase index: given a sequence of typed tokens, it
// expands each token into its candidate lexicon words (exact, fuzzy, and,
// for the final token, prefix-range completions) and asks the phrase
// transducer which combinations of those candidates form a known phrase.
package fuzzyphrase

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"unicode"

	"github.com/steosofficial/fuzzyphrase/fuzzyword"
	"github.com/steosofficial/fuzzyphrase/internal/ferrors"
	"github.com/steosofficial/fuzzyphrase/phraseset"
	"github.com/steosofficial/fuzzyphrase/prefixset"
)

var errEmptyPhrase = errors.New("fuzzyphrase: phrase must have at least one token")

// Match is one phrase-level result: the resolved surface words and the
// total edit distance accumulated across its fuzzy-matched tokens.
type Match struct {
	Words        []string
	EditDistance int
}

// FuzzyPhraseSet is an opened index directory, ready for querying.
type FuzzyPhraseSet struct {
	dir     string
	log     *slog.Logger
	meta    metadata
	scripts []*unicode.RangeTable
	repl    *WordReplacementMap

	prefix *prefixset.PrefixSet
	fuzzy  *fuzzyword.FuzzyMap
	phrase *phraseset.PhraseSet
}

// Open loads an index directory previously written by
// FuzzyPhraseSetBuilder.Finish.
func Open(dir string) (*FuzzyPhraseSet, error) {
	m, err := readMetadata(filepath.Join(dir, metadataName))
	if err != nil {
		return nil, &ferrors.OpenError{Op: "fuzzyphrase read metadata", Err: err}
	}

	ps, err := prefixset.Open(filepath.Join(dir, prefixFileName))
	if err != nil {
		return nil, err
	}
	fm, err := fuzzyword.Open(filepath.Join(dir, fuzzyFSTName), filepath.Join(dir, fuzzyMsgName))
	if err != nil {
		ps.Close()
		return nil, err
	}
	phs, err := phraseset.Open(filepath.Join(dir, phraseFileName))
	if err != nil {
		ps.Close()
		fm.Close()
		return nil, err
	}

	return &FuzzyPhraseSet{
		dir:     dir,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		meta:    m,
		scripts: resolveScripts(m.FuzzyEnabledScripts),
		repl:    NewWordReplacementMap(m.WordReplacements),
		prefix:  ps,
		fuzzy:   fm,
		phrase:  phs,
	}, nil
}

// SetLogger attaches a logger to the opened set. No query method writes to
// it.
func (s *FuzzyPhraseSet) SetLogger(l *slog.Logger) { s.log = l }

// Close releases the three underlying mmaps.
func (s *FuzzyPhraseSet) Close() error {
	var firstErr error
	for _, c := range []func() error{s.prefix.Close, s.fuzzy.Close, s.phrase.Close} {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// MaxEditDistance returns the per-word edit distance the fuzzy index was
// built to support.
func (s *FuzzyPhraseSet) MaxEditDistance() int { return s.meta.MaxEditDistance }

// Contains reports whether tokens, taken verbatim, form an exact phrase in
// the index.
func (s *FuzzyPhraseSet) Contains(tokens []string) (bool, error) {
	ids := make([]uint32, len(tokens))
	for i, t := range tokens {
		id, ok := s.prefix.Lookup(t)
		if !ok {
			return false, nil
		}
		ids[i] = id
	}
	qp := make(phraseset.QueryPhrase, len(ids))
	for i, id := range ids {
		qp[i] = phraseset.NewFull(id, 0)
	}
	return s.phrase.Contains(qp)
}

// ContainsPrefix reports whether tokens is the leading words (with the
// final token treated as a completable prefix) of some phrase in the index.
func (s *FuzzyPhraseSet) ContainsPrefix(tokens []string) (bool, error) {
	if len(tokens) == 0 {
		return false, nil
	}
	head, last := tokens[:len(tokens)-1], tokens[len(tokens)-1]
	qp := make(phraseset.QueryPhrase, 0, len(tokens))
	for _, t := range head {
		id, ok := s.prefix.Lookup(t)
		if !ok {
			return false, nil
		}
		qp = append(qp, phraseset.NewFull(id, 0))
	}
	lo, hi, ok := s.prefix.Range(last)
	if !ok {
		return false, nil
	}
	qp = append(qp, phraseset.NewPrefixWord(lo, hi))
	return s.phrase.ContainsPrefix(qp)
}

// candidatesFor builds the per-position QueryPhrase possibilities for every
// token in tokens, treating the final token as completable when lastIsPrefix.
func (s *FuzzyPhraseSet) candidatesFor(tokens []string, maxWordDist int, lastIsPrefix bool) []phraseset.QueryPhrase {
	possibilities := make([]phraseset.QueryPhrase, len(tokens))
	for i, t := range tokens {
		if i == len(tokens)-1 && lastIsPrefix {
			possibilities[i] = terminalCandidates(t, maxWordDist, s.prefix, s.fuzzy, s.repl, s.scripts)
		} else {
			possibilities[i] = nonTerminalCandidates(t, maxWordDist, s.prefix, s.fuzzy, s.repl, s.scripts)
		}
	}
	return possibilities
}

// resolveWords turns a matched QueryPhrase back into surface words for
// Full positions; a trailing Prefix position (as produced by
// FuzzyMatchPrefix/FuzzyMatchWindows) is rendered as the surface form of
// the range's lo id, its lexicographically smallest completion.
func (s *FuzzyPhraseSet) resolveWords(qp phraseset.QueryPhrase) []string {
	words := make([]string, len(qp))
	for i, qw := range qp {
		switch qw.Kind {
		case phraseset.Full:
			w, _ := s.prefix.GetByID(qw.ID)
			words[i] = w
		case phraseset.Prefix:
			w, _ := s.prefix.GetByID(qw.Lo)
			words[i] = w
		}
	}
	return words
}

// FuzzyMatch resolves tokens (every position treated as a complete word)
// into every phrase in the index reachable within maxWordDist per word and
// maxPhraseDist summed across the phrase.
func (s *FuzzyPhraseSet) FuzzyMatch(tokens []string, maxWordDist, maxPhraseDist int) ([]Match, error) {
	if len(tokens) == 0 {
		return nil, errEmptyPhrase
	}
	possibilities := s.candidatesFor(tokens, maxWordDist, false)
	combos := s.phrase.MatchCombinations(possibilities, maxPhraseDist)
	return s.toMatches(combos), nil
}

// FuzzyMatchPrefix is FuzzyMatch, but the final token is treated as a
// possibly-truncated prefix: in addition to fuzzy Full candidates it
// contributes a Prefix range of every lexicon completion.
func (s *FuzzyPhraseSet) FuzzyMatchPrefix(tokens []string, maxWordDist, maxPhraseDist int) ([]Match, error) {
	if len(tokens) == 0 {
		return nil, errEmptyPhrase
	}
	possibilities := s.candidatesFor(tokens, maxWordDist, true)
	combos := s.phrase.MatchCombinationsAsPrefixes(possibilities, maxPhraseDist)
	return s.toMatches(combos), nil
}

func (s *FuzzyPhraseSet) toMatches(combos []phraseset.QueryPhrase) []Match {
	out := make([]Match, len(combos))
	for i, qp := range combos {
		out[i] = Match{Words: s.resolveWords(qp), EditDistance: qp.TotalEditDistance()}
	}
	return out
}

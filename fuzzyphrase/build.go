package fuzzyphrase

import (
	"io"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/steosofficial/fuzzyphrase/fuzzyword"
	"github.com/steosofficial/fuzzyphrase/internal/ferrors"
	"github.com/steosofficial/fuzzyphrase/phraseset"
	"github.com/steosofficial/fuzzyphrase/prefixset"
)

const (
	prefixFileName = "prefix.fst"
	fuzzyFSTName   = "fuzzy.fst"
	fuzzyMsgName   = "fuzzy.msg"
	phraseFileName = "phrase.fst"
	metadataName   = "metadata.json"
)

// BuildConfig controls the properties of an index produced by
// FuzzyPhraseSetBuilder.Finish. The zero value is not valid; use
// DefaultBuildConfig for sensible defaults.
type BuildConfig struct {
	MaxEditDistance     int
	FuzzyEnabledScripts []string
}

// DefaultBuildConfig returns the configuration used when a caller doesn't
// load one from fuzzyphrase.toml.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		MaxEditDistance:     DefaultMaxEditDistance,
		FuzzyEnabledScripts: append([]string(nil), DefaultFuzzyEnabledScripts...),
	}
}

// FuzzyPhraseSetBuilder accumulates phrases and word replacements, then
// flattens them into the three on-disk transducers plus metadata.json that
// together make up an index directory.
type FuzzyPhraseSetBuilder struct {
	dir      string
	cfg      BuildConfig
	log      *slog.Logger
	phrases  [][]string
	wordSet  map[string]struct{}
	replaces []WordReplacement
}

// New returns a builder that will write its index under dir (which must
// already exist) using cfg.
func New(dir string, cfg BuildConfig) *FuzzyPhraseSetBuilder {
	return &FuzzyPhraseSetBuilder{
		dir:     dir,
		cfg:     cfg,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		wordSet: make(map[string]struct{}),
	}
}

// SetLogger attaches a logger used to report build progress. Defaults to a
// discarding logger.
func (b *FuzzyPhraseSetBuilder) SetLogger(l *slog.Logger) { b.log = l }

// Insert registers one phrase as an ordered list of tokens. Token order is
// preserved; tokens are lexicon members verbatim (callers apply any desired
// normalization before calling Insert).
func (b *FuzzyPhraseSetBuilder) Insert(tokens []string) error {
	if len(tokens) == 0 {
		return &ferrors.BuildError{Op: "fuzzyphrase insert", Err: errEmptyPhrase}
	}
	cp := append([]string(nil), tokens...)
	b.phrases = append(b.phrases, cp)
	for _, t := range tokens {
		b.wordSet[t] = struct{}{}
	}
	return nil
}

// LoadWordReplacements registers a set of surface-to-canonical word
// rewrites applied at query time by candidate generation.
func (b *FuzzyPhraseSetBuilder) LoadWordReplacements(list []WordReplacement) error {
	b.replaces = append(b.replaces, list...)
	return nil
}

// Finish writes prefix.fst, fuzzy.fst, fuzzy.msg, phrase.fst, and
// metadata.json into the builder's directory.
func (b *FuzzyPhraseSetBuilder) Finish() error {
	words := make([]string, 0, len(b.wordSet))
	for w := range b.wordSet {
		words = append(words, w)
	}
	sort.Strings(words)
	b.log.Info("building lexicon", "distinct_words", len(words), "phrases", len(b.phrases))

	ranks, err := prefixset.BuildFromSorted(words, filepath.Join(b.dir, prefixFileName))
	if err != nil {
		return err
	}
	rankOf := make(map[string]uint32, len(words))
	for i, w := range words {
		rankOf[w] = ranks[i]
	}

	b.log.Info("building fuzzy index")
	fb := fuzzyword.NewBuilder(b.cfg.MaxEditDistance)
	for i, w := range words {
		fb.Insert(w, ranks[i])
	}
	if err := fb.Finish(filepath.Join(b.dir, fuzzyFSTName), filepath.Join(b.dir, fuzzyMsgName)); err != nil {
		return err
	}

	b.log.Info("building phrase index")
	pb := phraseset.NewBuilder()
	for _, phrase := range b.phrases {
		ids := make([]uint32, len(phrase))
		for i, w := range phrase {
			ids[i] = rankOf[w]
		}
		if err := pb.Insert(ids); err != nil {
			return err
		}
	}
	if err := pb.Finish(filepath.Join(b.dir, phraseFileName)); err != nil {
		return err
	}

	m := metadata{
		IndexType:           "fuzzy_phrase_set",
		FormatVersion:       FormatVersion,
		FuzzyEnabledScripts: b.cfg.FuzzyEnabledScripts,
		MaxEditDistance:     b.cfg.MaxEditDistance,
		WordReplacements:    b.replaces,
	}
	if err := writeMetadata(filepath.Join(b.dir, metadataName), m); err != nil {
		return &ferrors.BuildError{Op: "fuzzyphrase write metadata", Err: err}
	}
	b.log.Info("build complete")
	return nil
}

// Package phraseset implements the phrase transducer and its combinatorial
// matching automata: an immutable set of phrases keyed by concatenated
// 3-byte word-id codes, queried either exactly (contains), as a
// completion of a partially typed last word (contains_prefix), or jointly
// across a nested set of per-position candidate words produced by fuzzy
// and prefix lookups (match_combinations and its prefix/window variants).
package phraseset

import (
	"fmt"
	"os"
	"sort"

	"github.com/steosofficial/fuzzyphrase/internal/codec"
	"github.com/steosofficial/fuzzyphrase/internal/ferrors"
	"github.com/steosofficial/fuzzyphrase/internal/triefst"
)

// Builder accumulates phrases (sequences of lexicon word ids) and
// flattens them into the phrase transducer. Unlike PrefixSet, insertion
// order need not be pre-sorted by the caller: Finish
// sorts by encoded key before building, matching the reference
// implementation's "sort phrases, then build" pipeline.
type Builder struct {
	keys [][]byte
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Insert registers a phrase as a sequence of final lexicon word ids.
func (b *Builder) Insert(ids []uint32) error {
	key, err := codec.EncodePhrase(ids)
	if err != nil {
		return &ferrors.BuildError{Op: "phraseset insert", Err: err}
	}
	b.keys = append(b.keys, key)
	return nil
}

// Finish sorts, deduplicates, and writes the phrase transducer to path.
func (b *Builder) Finish(path string) error {
	sort.Slice(b.keys, func(i, j int) bool { return compareBytes(b.keys[i], b.keys[j]) < 0 })

	tb := triefst.NewBuilder()
	var prev []byte
	for _, k := range b.keys {
		if prev != nil && compareBytes(k, prev) == 0 {
			continue
		}
		if err := tb.Insert(k, 0); err != nil {
			return &ferrors.BuildError{Op: "phraseset build", Err: err}
		}
		prev = k
	}

	f, err := os.Create(path)
	if err != nil {
		return &ferrors.BuildError{Op: "phraseset create", Err: err}
	}
	defer f.Close()
	if _, err := tb.WriteTo(f); err != nil {
		return &ferrors.BuildError{Op: "phraseset write", Err: err}
	}
	return nil
}

func compareBytes(a, b []byte) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// PhraseSet is an opened, immutable phrase transducer.
type PhraseSet struct {
	r *triefst.Reader
}

// Open memory-maps path (typically "phrase.fst").
func Open(path string) (*PhraseSet, error) {
	r, err := triefst.Open(path)
	if err != nil {
		return nil, &ferrors.OpenError{Op: "phraseset open", Err: err}
	}
	return &PhraseSet{r: r}, nil
}

// Close releases the underlying mmap.
func (ps *PhraseSet) Close() error { return ps.r.Close() }

// ErrContainsIgnoresPrefix is returned by Contains and ContainsPrefix when
// handed a QueryWord that the method does not support in that position:
// Contains requires every word to be Full, and the reference
// implementation raises rather than silently ignoring the request.
var ErrContainsIgnoresPrefix = fmt.Errorf("phraseset: contains/contains_prefix methods ignore QueryWord::Prefix types")

// Contains reports whether phrase (which must be entirely Full words) is a
// member of the set.
func (ps *PhraseSet) Contains(phrase QueryPhrase) (bool, error) {
	ids := make([]uint32, len(phrase))
	for i, qw := range phrase {
		if qw.Kind != Full {
			return false, ErrContainsIgnoresPrefix
		}
		ids[i] = qw.ID
	}
	key, err := codec.EncodePhrase(ids)
	if err != nil {
		return false, err
	}
	n, matched := ps.r.Root().Walk(key)
	return matched && n.IsFinal(), nil
}

// ContainsPrefix reports whether some phrase in the set has phrase (whose
// final word may be a Prefix range) as its leading words, with the final
// word's id falling in that range.
func (ps *PhraseSet) ContainsPrefix(phrase QueryPhrase) (bool, error) {
	if len(phrase) == 0 {
		return false, nil
	}
	head, last := phrase[:len(phrase)-1], phrase[len(phrase)-1]

	headIDs := make([]uint32, len(head))
	for i, qw := range head {
		if qw.Kind != Full {
			return false, ErrContainsIgnoresPrefix
		}
		headIDs[i] = qw.ID
	}
	key, err := codec.EncodePhrase(headIDs)
	if err != nil {
		return false, err
	}
	node, matched := ps.r.Root().Walk(key)
	if !matched {
		return false, nil
	}

	switch last.Kind {
	case Full:
		enc, err := codec.EncodeWordID(last.ID)
		if err != nil {
			return false, err
		}
		n, matched := node.Walk(enc[:])
		return matched && n.IsFinal(), nil
	case Prefix:
		lo, err := codec.EncodeWordID(last.Lo)
		if err != nil {
			return false, err
		}
		hi, err := codec.EncodeWordID(last.Hi)
		if err != nil {
			return false, err
		}
		return rangeDescend(node, lo, hi), nil
	default:
		return false, ErrContainsIgnoresPrefix
	}
}

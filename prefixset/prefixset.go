// Package prefixset implements the lexicon transducer: an immutable map
// from every surface word to its lexicographic rank, the word id used
// throughout the rest of the index. It also supports lex-ordered prefix
// range queries, which the fuzzy glue layer uses to resolve a truncated
// final token to a closed interval of ids.
package prefixset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/steosofficial/fuzzyphrase/internal/ferrors"
	"github.com/steosofficial/fuzzyphrase/internal/triefst"
)

// Builder assigns ranks 0, 1, 2, ... to words inserted in strictly
// ascending lexicographic order, matching the "builder emits output
// 0,1,2,... so FST output equals lex rank" build contract.
type Builder struct {
	tb   *triefst.Builder
	next uint32
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{tb: triefst.NewBuilder()}
}

// Insert adds word, assigning it the next unused rank. word must sort
// strictly after every previously inserted word.
func (b *Builder) Insert(word string) (rank uint32, err error) {
	if err := b.tb.Insert([]byte(word), uint64(b.next)); err != nil {
		return 0, &ferrors.BuildError{Op: "prefixset insert", Err: err}
	}
	rank = b.next
	b.next++
	return rank, nil
}

// Len reports how many words have been inserted.
func (b *Builder) Len() int { return b.tb.Len() }

// WriteTo flattens and writes the prefix transducer.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	n, err := b.tb.WriteTo(w)
	if err != nil {
		return n, &ferrors.BuildError{Op: "prefixset write", Err: err}
	}
	return n, nil
}

// PrefixSet is an opened, immutable lexicon.
type PrefixSet struct {
	r     *triefst.Reader
	words []string // rank -> surface word, streamed once at Open
}

// Open memory-maps path (typically "prefix.fst") and streams the full word
// list into memory once, the same optimization the reference
// implementation settled on after finding repeated FST descents for
// reverse lookup too slow in practice.
func Open(path string) (*PrefixSet, error) {
	r, err := triefst.Open(path)
	if err != nil {
		return nil, &ferrors.OpenError{Op: "prefixset open", Err: err}
	}
	ps := &PrefixSet{r: r}
	ps.words = streamWords(r)
	return ps, nil
}

// Close releases the underlying mmap.
func (p *PrefixSet) Close() error { return p.r.Close() }

// streamWords performs a single depth-first walk of the transducer,
// collecting every final node's word and rank. Because Insert assigns
// ranks in ascending order and edges are stored sorted, this walk visits
// words in rank order, so the result can be read back by direct index.
func streamWords(r *triefst.Reader) []string {
	var out []string
	var buf []byte

	var visit func(n triefst.NodeRef)
	visit = func(n triefst.NodeRef) {
		if n.IsFinal() {
			rank := int(n.FinalOutput())
			for len(out) <= rank {
				out = append(out, "")
			}
			out[rank] = string(buf)
		}
		for _, e := range n.Edges() {
			buf = append(buf, e.Input())
			visit(e.Transition())
			buf = buf[:len(buf)-1]
		}
	}
	visit(r.Root())
	return out
}

// Len returns the number of distinct words in the lexicon.
func (p *PrefixSet) Len() int { return len(p.words) }

// Lookup reports whether word is in the lexicon and, if so, its rank.
func (p *PrefixSet) Lookup(word string) (id uint32, ok bool) {
	n, matched := p.r.Root().Walk([]byte(word))
	if !matched || !n.IsFinal() {
		return 0, false
	}
	return uint32(n.FinalOutput()), true
}

// HasContinuations reports whether any word in the lexicon has prefix as a
// strict or non-strict prefix with further outgoing transitions, i.e.
// whether prefix is itself a valid transducer path with children.
func (p *PrefixSet) HasContinuations(prefix string) bool {
	n, matched := p.r.Root().Walk([]byte(prefix))
	if !matched {
		return false
	}
	return n.OutDegree() > 0
}

// Range returns the closed interval [lo, hi] of ranks belonging to every
// word that has prefix as a prefix. ok is false if no word has this
// prefix.
func (p *PrefixSet) Range(prefix string) (lo, hi uint32, ok bool) {
	n, matched := p.r.Root().Walk([]byte(prefix))
	if !matched {
		return 0, 0, false
	}

	if n.IsFinal() {
		lo = uint32(n.FinalOutput())
	} else {
		leaf, found := descendExtreme(n, true)
		if !found {
			return 0, 0, false
		}
		lo = uint32(leaf.FinalOutput())
	}

	leaf, found := descendExtreme(n, false)
	if !found {
		return 0, 0, false
	}
	hi = uint32(leaf.FinalOutput())
	return lo, hi, true
}

// descendExtreme walks first (lex-min, first=true) or last (lex-max,
// first=false) transitions at every step until it reaches a final node:
// the lex-min completion stops at the first final node encountered (any
// earlier-sorted continuation would have to pass through an edge smaller
// than the one just taken), while the lex-max completion always prefers
// descending into the largest child over stopping early.
func descendExtreme(n triefst.NodeRef, first bool) (triefst.NodeRef, bool) {
	for {
		if first && n.IsFinal() {
			return n, true
		}
		edges := n.Edges()
		if len(edges) == 0 {
			if n.IsFinal() {
				return n, true
			}
			return triefst.NodeRef{}, false
		}
		var next triefst.EdgeRef
		if first {
			next = edges[0]
		} else {
			next = edges[len(edges)-1]
		}
		n = next.Transition()
	}
}

// GetByID returns the surface word for id, the inverse of Lookup. Backed
// by the in-memory word cache built at Open time, an O(1) array read
// rather than the O(|key|) FST descent the format would otherwise require.
// Every rank in [0, Len()) is guaranteed assigned by Builder, so range
// membership alone determines validity.
func (p *PrefixSet) GetByID(id uint32) (string, bool) {
	if int(id) >= len(p.words) {
		return "", false
	}
	return p.words[id], true
}

// Words returns the full rank-ordered word list. Callers must not mutate
// the returned slice.
func (p *PrefixSet) Words() []string { return p.words }

// BuildFromSorted is a convenience that builds and writes a complete
// PrefixSet in one call from an already-sorted, deduplicated word list,
// returning each word's assigned rank in the same order.
func BuildFromSorted(words []string, path string) (ranks []uint32, err error) {
	if !sort.StringsAreSorted(words) {
		return nil, &ferrors.BuildError{Op: "prefixset build", Err: fmt.Errorf("words not sorted")}
	}
	b := NewBuilder()
	ranks = make([]uint32, len(words))
	for i, w := range words {
		r, err := b.Insert(w)
		if err != nil {
			return nil, err
		}
		ranks[i] = r
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, &ferrors.BuildError{Op: "prefixset create", Err: err}
	}
	defer f.Close()
	bw := bufio.NewWriter(f)
	if _, err := b.WriteTo(bw); err != nil {
		return nil, err
	}
	if err := bw.Flush(); err != nil {
		return nil, &ferrors.BuildError{Op: "prefixset flush", Err: err}
	}
	return ranks, nil
}

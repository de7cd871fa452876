package fuzzyphrase

import (
	"sort"
	"strings"

	"github.com/steosofficial/fuzzyphrase/phraseset"
)

// candidateKey identifies one (word, position-kind) candidate-generation
// call: the expensive fuzzy lookup only depends on these two things, so
// repeating either across queries in a batch is free after the first call.
type candidateKey struct {
	word     string
	terminal bool
}

// FuzzyMatchMulti runs FuzzyMatchPrefix independently over every query in
// queries, returning one result slice per query in the same order. Token
// candidate generation is memoized across the whole batch and queries are
// processed in an order that clusters shared leading tokens together, so a
// batch of autocomplete-style queries that share a long common prefix pays
// for each distinct token's fuzzy lookup only once.
func (s *FuzzyPhraseSet) FuzzyMatchMulti(queries [][]string, maxWordDist, maxPhraseDist int) ([][]Match, error) {
	order := make([]int, len(queries))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return strings.Join(queries[order[a]], "\x00") < strings.Join(queries[order[b]], "\x00")
	})

	memo := make(map[candidateKey]phraseset.QueryPhrase)
	results := make([][]Match, len(queries))

	for _, qi := range order {
		tokens := queries[qi]
		if len(tokens) == 0 {
			results[qi] = nil
			continue
		}
		possibilities := make([]phraseset.QueryPhrase, len(tokens))
		for i, t := range tokens {
			terminal := i == len(tokens)-1
			key := candidateKey{word: t, terminal: terminal}
			cands, ok := memo[key]
			if !ok {
				if terminal {
					cands = terminalCandidates(t, maxWordDist, s.prefix, s.fuzzy, s.repl, s.scripts)
				} else {
					cands = nonTerminalCandidates(t, maxWordDist, s.prefix, s.fuzzy, s.repl, s.scripts)
				}
				memo[key] = cands
			}
			possibilities[i] = cands
		}
		combos := s.phrase.MatchCombinationsAsPrefixes(possibilities, maxPhraseDist)
		results[qi] = s.toMatches(combos)
	}
	return results, nil
}

package phraseset

import (
	"github.com/steosofficial/fuzzyphrase/internal/codec"
	"github.com/steosofficial/fuzzyphrase/internal/triefst"
)

// rangeDescend implements the three-recursive-rule range walk from the
// design: at each of the three byte positions of the terminal word,
// explore every outgoing transition whose byte falls within the still-
// active bounds. Once a transition's byte strictly exceeds lo[pos], the
// lower bound is satisfied for every deeper position (effLo drops to 0);
// symmetrically for the upper bound once a byte sorts strictly below
// hi[pos]. Once both bounds are satisfied the remaining positions are
// unconstrained, so any path that reaches a final node after the third
// byte counts as a hit.
func rangeDescend(node triefst.NodeRef, lo, hi [3]byte) bool {
	var rec func(n triefst.NodeRef, pos int, loSatisfied, hiSatisfied bool) bool
	rec = func(n triefst.NodeRef, pos int, loSatisfied, hiSatisfied bool) bool {
		if pos == 3 {
			return n.IsFinal()
		}
		effLo, effHi := lo[pos], hi[pos]
		if loSatisfied {
			effLo = 0
		}
		if hiSatisfied {
			effHi = 255
		}
		for _, e := range n.Edges() {
			b := e.Input()
			if b < effLo || b > effHi {
				continue
			}
			nextLo := loSatisfied || b > lo[pos]
			nextHi := hiSatisfied || b < hi[pos]
			if rec(e.Transition(), pos+1, nextLo, nextHi) {
				return true
			}
		}
		return false
	}
	return rec(node, 0, false, false)
}

// MatchCombinations is 4.5.3: every position's candidates must be Full.
// Returns every phrase, one QueryWord drawn from each position, whose
// 3-byte-encoded sequence is a phrase-set member and whose total edit
// distance is within maxPhraseDist.
func (ps *PhraseSet) MatchCombinations(possibilities []QueryPhrase, maxPhraseDist int) []QueryPhrase {
	return ps.matchCombinations(possibilities, maxPhraseDist)
}

// MatchCombinationsAsPrefixes is 4.5.4: like MatchCombinations, but the
// final position's candidates may additionally include a Prefix range,
// matched via a terminal range walk. Prefix contributes 0 to the
// distance sum. The underlying descent already handles a Prefix
// candidate at the last position, so this is the same walk as
// MatchCombinations; the two entry points exist to mirror the design's
// separate operation names for the Full-only and Full-or-Prefix cases.
func (ps *PhraseSet) MatchCombinationsAsPrefixes(possibilities []QueryPhrase, maxPhraseDist int) []QueryPhrase {
	return ps.matchCombinations(possibilities, maxPhraseDist)
}

func (ps *PhraseSet) matchCombinations(possibilities []QueryPhrase, maxPhraseDist int) []QueryPhrase {
	n := len(possibilities)
	var results []QueryPhrase
	path := make(QueryPhrase, n)

	var descend func(pos int, node triefst.NodeRef, budget int)
	descend = func(pos int, node triefst.NodeRef, budget int) {
		if pos == n {
			if node.IsFinal() {
				results = append(results, append(QueryPhrase(nil), path...))
			}
			return
		}
		isLast := pos == n-1
		for _, c := range possibilities[pos] {
			switch c.Kind {
			case Full:
				if budget-c.EditDistance < 0 {
					continue
				}
				enc, err := codec.EncodeWordID(c.ID)
				if err != nil {
					continue
				}
				nn, matched := node.Walk(enc[:])
				if !matched {
					continue
				}
				path[pos] = c
				descend(pos+1, nn, budget-c.EditDistance)
			case Prefix:
				if !isLast {
					continue
				}
				lo, errLo := codec.EncodeWordID(c.Lo)
				hi, errHi := codec.EncodeWordID(c.Hi)
				if errLo != nil || errHi != nil {
					continue
				}
				if rangeDescend(node, lo, hi) {
					path[pos] = c
					results = append(results, append(QueryPhrase(nil), path[:pos+1]...))
				}
			}
		}
	}
	descend(0, ps.r.Root(), maxPhraseDist)
	return results
}

// WindowMatch is one emission from MatchCombinationsAsWindows: a matched
// sub-phrase and whether that match ends via the caller's Prefix
// candidate in the final position.
type WindowMatch struct {
	Phrase       QueryPhrase
	EndsInPrefix bool
}

// MatchCombinationsAsWindows is 4.5.5: like MatchCombinations/
// MatchCombinationsAsPrefixes, but every prefix of the walked phrase that
// lands on a final node is also emitted, not only the full-length
// combination. endsInPrefix is only ever attached to an emission produced
// by a Prefix candidate consumed at the true final position.
func (ps *PhraseSet) MatchCombinationsAsWindows(possibilities []QueryPhrase, maxPhraseDist int, endsInPrefix bool) []WindowMatch {
	n := len(possibilities)
	var results []WindowMatch
	path := make(QueryPhrase, 0, n)

	var descend func(pos int, node triefst.NodeRef, budget int)
	descend = func(pos int, node triefst.NodeRef, budget int) {
		if pos == n {
			return
		}
		isLast := pos == n-1
		for _, c := range possibilities[pos] {
			switch c.Kind {
			case Full:
				if budget-c.EditDistance < 0 {
					continue
				}
				enc, err := codec.EncodeWordID(c.ID)
				if err != nil {
					continue
				}
				nn, matched := node.Walk(enc[:])
				if !matched {
					continue
				}
				path = append(path, c)
				if nn.IsFinal() {
					results = append(results, WindowMatch{
						Phrase:       append(QueryPhrase(nil), path...),
						EndsInPrefix: false,
					})
				}
				if pos+1 < n {
					descend(pos+1, nn, budget-c.EditDistance)
				}
				path = path[:len(path)-1]
			case Prefix:
				if !isLast {
					continue
				}
				lo, errLo := codec.EncodeWordID(c.Lo)
				hi, errHi := codec.EncodeWordID(c.Hi)
				if errLo != nil || errHi != nil {
					continue
				}
				if rangeDescend(node, lo, hi) {
					path = append(path, c)
					results = append(results, WindowMatch{
						Phrase:       append(QueryPhrase(nil), path...),
						EndsInPrefix: endsInPrefix,
					})
					path = path[:len(path)-1]
				}
			}
		}
	}
	descend(0, ps.r.Root(), maxPhraseDist)
	return results
}

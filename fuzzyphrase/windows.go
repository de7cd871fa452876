package fuzzyphrase

// WindowMatch is one sub-phrase emitted by FuzzyMatchWindows: a run of
// tokens, starting at the first position, that forms a known phrase (or a
// known phrase's prefix, when EndsInPrefix is set).
type WindowMatch struct {
	Words        []string
	EditDistance int
	EndsInPrefix bool
}

// FuzzyMatchWindows segments tokens from the start and emits every
// contiguous leading run that is itself a complete phrase, not only the
// full-length combination FuzzyMatch would report. When endsInPrefix is
// true, the final token is additionally treated as a completable prefix,
// matching FuzzyMatchPrefix's candidate generation for that position.
func (s *FuzzyPhraseSet) FuzzyMatchWindows(tokens []string, maxWordDist, maxPhraseDist int, endsInPrefix bool) ([]WindowMatch, error) {
	if len(tokens) == 0 {
		return nil, errEmptyPhrase
	}
	possibilities := s.candidatesFor(tokens, maxWordDist, endsInPrefix)
	raw := s.phrase.MatchCombinationsAsWindows(possibilities, maxPhraseDist, endsInPrefix)

	out := make([]WindowMatch, len(raw))
	for i, wm := range raw {
		out[i] = WindowMatch{
			Words:        s.resolveWords(wm.Phrase),
			EditDistance: wm.Phrase.TotalEditDistance(),
			EndsInPrefix: wm.EndsInPrefix,
		}
	}
	return out, nil
}

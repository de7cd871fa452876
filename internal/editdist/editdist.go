// Package editdist implements a row-reused, early-terminating modified
// Damerau-Levenshtein (OSA) distance, used as a verification pass over
// candidates the fuzzy word index surfaces.
//
// OSA allows insertion, deletion, substitution and adjacent transposition,
// but disallows further edits on letters that were just transposed, so it
// does not satisfy the triangle inequality: d(CA, AC)=1 and d(AC, ABC)=1
// but d(CA, ABC)=3. That's fine here; the verifier only filters candidates
// a separate FST walk already proposed.
package editdist

// Distance computes the OSA distance between target and s, capped: if the
// true distance exceeds maxHint, the returned value is some value >
// maxHint (not necessarily the true distance) and computation stops early.
func Distance(target, s string, maxHint int) int {
	ds := MultiHint(target, []string{s}, maxHint)
	return ds[0]
}

// MultiHint computes Distance(target, candidates[i], maxHint) for every i,
// reusing the parsed target and three scratch rows across candidates the
// way a single-target, many-candidate verification pass would.
func MultiHint(target string, candidates []string, maxHint int) []int {
	t := []rune(target)
	out := make([]int, len(candidates))

	width := len(t) + 1
	prev2 := make([]int, width)
	prev := make([]int, width)
	cur := make([]int, width)

	for ci, cand := range candidates {
		if cand == target {
			out[ci] = 0
			continue
		}
		s := []rune(cand)
		if len(s) == 0 {
			out[ci] = len(t)
			continue
		}
		if len(t) == 0 {
			out[ci] = len(s)
			continue
		}

		for j := range prev {
			prev[j] = j
		}
		for j := range prev2 {
			prev2[j] = 0
		}

		rowMin := 0
		aborted := false
		for i := 1; i <= len(s); i++ {
			cur[0] = i
			rowMin = cur[0]
			for j := 1; j <= len(t); j++ {
				cost := 1
				if s[i-1] == t[j-1] {
					cost = 0
				}
				best := min3(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
				if i > 1 && j > 1 && s[i-1] == t[j-2] && s[i-2] == t[j-1] {
					if v := prev2[j-2] + cost; v < best {
						best = v
					}
				}
				cur[j] = best
				if cur[j] < rowMin {
					rowMin = cur[j]
				}
			}

			if rowMin > maxHint {
				aborted = true
				break
			}

			prev2, prev, cur = prev, cur, prev2
		}

		if aborted {
			out[ci] = rowMin
		} else {
			out[ci] = prev[len(t)]
		}
	}
	return out
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

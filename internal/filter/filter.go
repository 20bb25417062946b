// apps/go-filter/internal/filter/filter.go
//
// Filter engine: applies a constraint.Set to a candidate list.
//
// Pipeline (every stage narrows the survivors of the previous one):
//  1. unused     – drop words containing any grey letter.
//  2. needles    – keep words containing every needle at least once.
//  3. position N – for each slot: match the green letter if there is one,
//     otherwise reject the slot's yellow letters.
//
// Notes:
//   - Results keep the input order; the input slice is never written to.
//   - Needles are checked by containment only, so a letter reported yellow
//     twice is satisfied by a single occurrence.
//   - A word shorter than the constraint length has no letter at the missing
//     slots: it fails a green check there and passes a yellow check.

package filter

import (
	"strconv"
	"strings"

	"github.com/robalobadob/wordle/apps/go-filter/internal/constraint"
)

// missing stands in for a slot past the end of a short word.
const missing rune = -1

// Report is the number of words kept by one pipeline stage.
type Report struct {
	Stage string `json:"stage"`
	Kept  int    `json:"kept"`
}

type stage struct {
	name string
	keep func(word string) bool
}

// Apply returns the words of candidates that satisfy s, in input order.
func Apply(s *constraint.Set, candidates []string) []string {
	out, _ := Trace(s, candidates)
	return out
}

// Trace is Apply plus a per-stage count of survivors.
func Trace(s *constraint.Set, candidates []string) ([]string, []Report) {
	stages := pipeline(s)
	reports := make([]Report, 0, len(stages))

	words := candidates
	for _, st := range stages {
		kept := make([]string, 0, len(words))
		for _, w := range words {
			if st.keep(w) {
				kept = append(kept, w)
			}
		}
		words = kept
		reports = append(reports, Report{Stage: st.name, Kept: len(words)})
	}
	return words, reports
}

// Match reports whether a single word survives the whole pipeline.
func Match(s *constraint.Set, word string) bool {
	for _, st := range pipeline(s) {
		if !st.keep(word) {
			return false
		}
	}
	return true
}

func pipeline(s *constraint.Set) []stage {
	needles := s.Needles()
	stages := []stage{
		{name: "unused", keep: func(w string) bool { return !containsUnused(s, w) }},
		{name: "needles", keep: func(w string) bool { return containsAll(w, needles) }},
	}
	for i, p := range s.Positions() {
		i, p := i, p
		stages = append(stages, stage{
			name: "position " + strconv.Itoa(i),
			keep: func(w string) bool { return allowedAt(p, letterAt(w, i)) },
		})
	}
	return stages
}

func containsUnused(s *constraint.Set, word string) bool {
	for _, r := range word {
		if s.IsUnused(r) {
			return true
		}
	}
	return false
}

func containsAll(word string, needles []rune) bool {
	for _, n := range needles {
		if !strings.ContainsRune(word, n) {
			return false
		}
	}
	return true
}

func allowedAt(p constraint.Position, r rune) bool {
	if g, ok := p.Confirmed(); ok {
		return r == g
	}
	return !p.Forbids(r)
}

// letterAt returns the i-th rune of word, or missing.
func letterAt(word string, i int) rune {
	n := 0
	for _, r := range word {
		if n == i {
			return r
		}
		n++
	}
	return missing
}

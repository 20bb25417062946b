// apps/go-filter/internal/constraint/constraint.go
//
// Constraint model for narrowing a word list from past guess feedback.
//
// Responsibilities:
//   - Accumulate grey ("unused") letters, yellow "needles" and per-position
//     rules from raw feedback strings.
//   - Hand out an immutable Set once parsing is done.
//
// Feedback string format (one string per past guess, aligned to the word):
//   - Uppercase letter at i → letter confirmed at i (green).
//   - Lowercase letter at i → letter present, but not at i (yellow).
//   - Anything else (usually a space) → no information for i.
//
// Notes:
//   - Parsing never fails. Characters past the word length are ignored and a
//     later green for an already confirmed position replaces the earlier one.
//   - Letters are compared as runes; no case folding is applied to the unused
//     letters.

package constraint

import (
	"sort"
	"strings"
	"unicode"
)

// DefaultLength is the classic Wordle word length.
const DefaultLength = 5

// Position holds the rules for a single letter slot.
type Position struct {
	forbidden map[rune]struct{}
	confirmed rune
	hasGreen  bool
}

// Confirmed returns the green letter for this slot, if any.
func (p Position) Confirmed() (rune, bool) {
	return p.confirmed, p.hasGreen
}

// Forbids reports whether r is a yellow letter seen at this slot.
func (p Position) Forbids(r rune) bool {
	_, ok := p.forbidden[r]
	return ok
}

// Forbidden returns the yellow letters seen at this slot, sorted.
func (p Position) Forbidden() []rune {
	return sortedRunes(p.forbidden)
}

// Pattern renders the slot as a regular expression fragment:
// the green letter, a negated class of forbidden letters, or ".".
func (p Position) Pattern() string {
	if p.hasGreen {
		return string(p.confirmed)
	}
	if len(p.forbidden) == 0 {
		return "."
	}
	return "[^" + string(p.Forbidden()) + "]"
}

// Set is the parsed, read-only constraint set.
type Set struct {
	unused    map[rune]struct{}
	needles   map[rune]struct{}
	positions []Position
}

// Length is the number of letter positions the set constrains.
func (s *Set) Length() int { return len(s.positions) }

// IsUnused reports whether r is a grey letter.
func (s *Set) IsUnused(r rune) bool {
	_, ok := s.unused[r]
	return ok
}

// Unused returns the grey letters, sorted.
func (s *Set) Unused() []rune { return sortedRunes(s.unused) }

// Needles returns the letters known to be in the word somewhere, sorted.
func (s *Set) Needles() []rune { return sortedRunes(s.needles) }

// Position returns the rules for slot i. Out of range slots have no rules.
func (s *Set) Position(i int) Position {
	if i < 0 || i >= len(s.positions) {
		return Position{}
	}
	return s.positions[i]
}

// Positions returns a copy of the per-slot rules in order.
func (s *Set) Positions() []Position {
	out := make([]Position, len(s.positions))
	copy(out, s.positions)
	return out
}

// Pattern renders the positional rules as an anchored regular expression.
// Grey letters and needles are not part of the pattern.
func (s *Set) Pattern() string {
	var b strings.Builder
	b.WriteByte('^')
	for _, p := range s.positions {
		b.WriteString(p.Pattern())
	}
	b.WriteByte('$')
	return b.String()
}

// String is a compact form for logs, e.g. "unused=[aipt] needles=[lr] ^w.[^l][^r].$".
func (s *Set) String() string {
	return "unused=[" + string(s.Unused()) + "] needles=[" + string(s.Needles()) + "] " + s.Pattern()
}

// Builder accumulates feedback. The zero value is not usable; see NewBuilder.
type Builder struct {
	unused    map[rune]struct{}
	needles   map[rune]struct{}
	positions []Position
}

// NewBuilder returns a builder for words of the given length.
// A non-positive length falls back to DefaultLength.
func NewBuilder(length int) *Builder {
	if length <= 0 {
		length = DefaultLength
	}
	return &Builder{
		unused:    make(map[rune]struct{}),
		needles:   make(map[rune]struct{}),
		positions: make([]Position, length),
	}
}

// Unused records every rune of letters as a grey letter.
func (b *Builder) Unused(letters string) *Builder {
	for _, r := range letters {
		b.unused[r] = struct{}{}
	}
	return b
}

// Feedback records one past guess. Positions are counted in runes.
func (b *Builder) Feedback(fb string) *Builder {
	i := 0
	for _, r := range fb {
		if i >= len(b.positions) {
			break
		}
		switch {
		case unicode.IsUpper(r):
			b.positions[i].confirmed = unicode.ToLower(r)
			b.positions[i].hasGreen = true
		case unicode.IsLower(r):
			b.needles[r] = struct{}{}
			if b.positions[i].forbidden == nil {
				b.positions[i].forbidden = make(map[rune]struct{})
			}
			b.positions[i].forbidden[r] = struct{}{}
		}
		i++
	}
	return b
}

// Build snapshots the accumulated state. The builder may keep being used;
// later calls do not affect sets already built.
func (b *Builder) Build() *Set {
	positions := make([]Position, len(b.positions))
	for i, p := range b.positions {
		positions[i] = Position{
			forbidden: cloneSet(p.forbidden),
			confirmed: p.confirmed,
			hasGreen:  p.hasGreen,
		}
	}
	return &Set{
		unused:    cloneSet(b.unused),
		needles:   cloneSet(b.needles),
		positions: positions,
	}
}

// Build parses unused letters and feedback strings for five-letter words.
func Build(unused string, feedback ...string) *Set {
	return BuildLength(DefaultLength, unused, feedback...)
}

// BuildLength is Build for an arbitrary word length.
func BuildLength(length int, unused string, feedback ...string) *Set {
	b := NewBuilder(length).Unused(unused)
	for _, fb := range feedback {
		b.Feedback(fb)
	}
	return b.Build()
}

func cloneSet(m map[rune]struct{}) map[rune]struct{} {
	if m == nil {
		return nil
	}
	out := make(map[rune]struct{}, len(m))
	for r := range m {
		out[r] = struct{}{}
	}
	return out
}

func sortedRunes(m map[rune]struct{}) []rune {
	out := make([]rune, 0, len(m))
	for r := range m {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

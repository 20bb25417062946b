package constraint

import (
	"strings"
	"unicode"
)

// Marks for a scored guess letter, matching words.Score.
const (
	MarkMiss    = 0
	MarkPresent = 1
	MarkHit     = 2
)

// Encode converts a scored guess into a feedback string and its grey letters.
//
// Hits become uppercase and presents lowercase. A missed letter counts as
// grey only when the same guess has no hit or present for it; otherwise a
// repeated letter would veto the answer, so it is written lowercase instead
// to forbid it at that slot. Letters without a mark, or with a value other
// than MarkMiss, MarkPresent or MarkHit, are treated as no information.
func Encode(guess string, marks []int) (feedback, unused string) {
	letters := []rune(strings.ToLower(guess))

	seen := make(map[rune]bool, len(letters))
	for i, r := range letters {
		if i < len(marks) && (marks[i] == MarkHit || marks[i] == MarkPresent) {
			seen[r] = true
		}
	}

	var fb, grey strings.Builder
	greyed := make(map[rune]bool)
	for i, r := range letters {
		if i >= len(marks) {
			fb.WriteByte(' ')
			continue
		}
		switch marks[i] {
		case MarkHit:
			fb.WriteRune(unicode.ToUpper(r))
		case MarkPresent:
			fb.WriteRune(r)
		case MarkMiss:
			if seen[r] {
				fb.WriteRune(r)
				continue
			}
			fb.WriteByte(' ')
			if !greyed[r] {
				greyed[r] = true
				grey.WriteRune(r)
			}
		default:
			fb.WriteByte(' ')
		}
	}
	return fb.String(), grey.String()
}

// ValidMarks reports whether every mark is MarkMiss, MarkPresent or MarkHit.
func ValidMarks(marks []int) bool {
	for _, m := range marks {
		if m != MarkMiss && m != MarkPresent && m != MarkHit {
			return false
		}
	}
	return true
}

package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEmpty(t *testing.T) {
	s := Build("")

	assert.Equal(t, DefaultLength, s.Length())
	assert.Empty(t, s.Unused())
	assert.Empty(t, s.Needles())
	for i := 0; i < s.Length(); i++ {
		_, ok := s.Position(i).Confirmed()
		assert.False(t, ok, "position %d", i)
		assert.Empty(t, s.Position(i).Forbidden(), "position %d", i)
	}
	assert.Equal(t, "^.....$", s.Pattern())
}

func TestBuildParsesFeedback(t *testing.T) {
	s := Build("wupsnm", "P  ge", " e")

	assert.Equal(t, []rune("mnpsuw"), s.Unused())
	assert.Equal(t, []rune("eg"), s.Needles())

	g, ok := s.Position(0).Confirmed()
	require.True(t, ok)
	assert.Equal(t, 'p', g)

	assert.Equal(t, []rune("e"), s.Position(1).Forbidden())
	assert.Empty(t, s.Position(2).Forbidden())
	assert.Equal(t, []rune("g"), s.Position(3).Forbidden())
	assert.Equal(t, []rune("e"), s.Position(4).Forbidden())

	assert.Equal(t, "^p[^e].[^g][^e]$", s.Pattern())
}

func TestBuildSkipsNonLetters(t *testing.T) {
	s := Build("", " .-1!")

	assert.Empty(t, s.Needles())
	assert.Equal(t, "^.....$", s.Pattern())
}

func TestBuildIgnoresExcess(t *testing.T) {
	s := Build("", "     aBc")

	assert.Empty(t, s.Needles())
	_, ok := s.Position(4).Confirmed()
	assert.False(t, ok)

	s = Build("", "abcdef")
	assert.Equal(t, []rune("abcde"), s.Needles())
}

// Conflicting greens are not reconciled: the last one wins.
func TestBuildLastGreenWins(t *testing.T) {
	s := Build("", "A", "B")

	g, ok := s.Position(0).Confirmed()
	require.True(t, ok)
	assert.Equal(t, 'b', g)
}

// A letter can be grey and a needle at once; both are kept as given.
func TestBuildKeepsContradictions(t *testing.T) {
	s := Build("a", " a")

	assert.True(t, s.IsUnused('a'))
	assert.Equal(t, []rune("a"), s.Needles())
}

func TestBuildLength(t *testing.T) {
	s := BuildLength(3, "", "abcd")
	assert.Equal(t, 3, s.Length())
	assert.Equal(t, []rune("abc"), s.Needles())

	assert.Equal(t, DefaultLength, BuildLength(0, "").Length())
}

func TestBuilderSnapshots(t *testing.T) {
	b := NewBuilder(DefaultLength).Feedback("a")
	first := b.Build()
	b.Feedback(" b").Unused("z")

	assert.Equal(t, []rune("a"), first.Needles())
	assert.False(t, first.IsUnused('z'))
	assert.Equal(t, []rune("ab"), b.Build().Needles())
}

func TestPositionOutOfRange(t *testing.T) {
	s := Build("", "A")

	_, ok := s.Position(-1).Confirmed()
	assert.False(t, ok)
	assert.False(t, s.Position(99).Forbids('a'))
}

// Positions count runes, so a multibyte character fills one slot.
func TestBuildMultibyteFeedback(t *testing.T) {
	s := Build("", "é A")

	assert.Equal(t, []rune("é"), s.Needles())
	assert.True(t, s.Position(0).Forbids('é'))
	g, ok := s.Position(2).Confirmed()
	require.True(t, ok)
	assert.Equal(t, 'a', g)

	s = Build("", "··B")
	assert.Empty(t, s.Needles())
	g, ok = s.Position(2).Confirmed()
	require.True(t, ok)
	assert.Equal(t, 'b', g)
}

func TestString(t *testing.T) {
	s := Build("ti", "W  r", "  l")
	assert.Equal(t, "unused=[it] needles=[lr] ^w.[^l][^r].$", s.String())
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		guess    string
		marks    []int
		feedback string
		unused   string
	}{
		{"all miss", "crane", []int{0, 0, 0, 0, 0}, "     ", "crane"},
		{"mixed", "crane", []int{2, 0, 1, 0, 0}, "C a  ", "rne"},
		{"repeated letter", "eerie", []int{1, 0, 0, 0, 2}, "ee  E", "ri"},
		{"repeated miss", "speed", []int{0, 0, 2, 0, 0}, "  Ee ", "spd"},
		{"short marks", "crane", []int{2}, "C    ", ""},
		{"upper input", "CRANE", []int{0, 0, 0, 0, 2}, "    E", "cran"},
		{"unknown mark", "crane", []int{2, 2, 2, 2, 3}, "CRAN ", ""},
		{"negative mark", "crane", []int{-1, 2, 2, 2, 2}, " RANE", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb, unused := Encode(tt.guess, tt.marks)
			assert.Equal(t, tt.feedback, fb)
			assert.Equal(t, tt.unused, unused)
		})
	}
}

func TestValidMarks(t *testing.T) {
	assert.True(t, ValidMarks(nil))
	assert.True(t, ValidMarks([]int{0, 1, 2, 1, 0}))
	assert.False(t, ValidMarks([]int{2, 2, 2, 2, 3}))
	assert.False(t, ValidMarks([]int{-1}))
}

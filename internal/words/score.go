package words

// Per-letter marks returned by Score.
const (
	Miss    = 0
	Present = 1
	Hit     = 2
)

// Score grades guess against answer the way the game does: hits first, then
// presents from the answer letters not already used by a hit, left to right.
// A guess of a different length scores all misses.
func Score(guess, answer string) []int {
	marks := make([]int, len(answer))
	if len(guess) != len(answer) {
		return marks
	}

	var left [256]int
	for i := range answer {
		if guess[i] == answer[i] {
			marks[i] = Hit
			continue
		}
		left[answer[i]]++
	}
	for i := range guess {
		if marks[i] == Hit || left[guess[i]] == 0 {
			continue
		}
		marks[i] = Present
		left[guess[i]]--
	}
	return marks
}

// apps/go-filter/internal/words/words.go
//
// Candidate word list management.
//
// Responsibilities:
//   - Load the candidate list from a file, or fall back to the embedded
//     assets/words.txt.
//   - Keep only valid words of the configured length, in file order.
//   - Hold the current list for concurrent readers and reload it on demand.
//
// Environment variables (read by internal/config):
//   WORDS_FILE=/path/to/words.txt
//   WORD_LENGTH=5
//
// Constraints:
//   • Words must be lowercase ASCII letters a–z after normalization.
//   • Blank lines and lines starting with '#' are skipped.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/wordle/apps/go-filter/assets"
)

// ErrEmpty is returned when no valid word of the requested length was found.
var ErrEmpty = errors.New("words: list is empty")

// Load returns the candidate list for words of the given length.
// An empty path selects the embedded list.
func Load(path string, length int) ([]string, error) {
	var (
		raw []string
		err error
	)
	if path == "" {
		raw, err = assets.WordList()
	} else {
		raw, err = readWordFile(path)
	}
	if err != nil {
		return nil, err
	}

	out := normalize(raw, length)
	if len(out) == 0 {
		if path == "" {
			return nil, fmt.Errorf("embedded list, length %d: %w", length, ErrEmpty)
		}
		return nil, fmt.Errorf("%s, length %d: %w", path, length, ErrEmpty)
	}
	return out, nil
}

// readWordFile loads one word per line from a file, skipping comments.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// normalize lowercases and keeps alphabetic words of exactly length letters.
func normalize(list []string, length int) []string {
	out := make([]string, 0, len(list))
	for _, w := range list {
		w = strings.ToLower(strings.TrimSpace(w))
		if len(w) == length && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Source holds the current candidate list.
type Source struct {
	mu     sync.RWMutex // guards list
	path   string
	length int
	list   []string
}

// NewSource loads the list once and returns a Source serving it.
func NewSource(path string, length int) (*Source, error) {
	list, err := Load(path, length)
	if err != nil {
		return nil, err
	}
	return &Source{path: path, length: length, list: list}, nil
}

// Words returns the current list. Callers must not modify it.
func (s *Source) Words() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.list
}

// Len returns the number of loaded words.
func (s *Source) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.list)
}

// Path is the file the list was loaded from; empty for the embedded list.
func (s *Source) Path() string { return s.path }

// Reload reads the list again. On error the previous list is kept.
func (s *Source) Reload() error {
	list, err := Load(s.path, s.length)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.list = list
	s.mu.Unlock()
	return nil
}

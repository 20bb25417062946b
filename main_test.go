package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"LOG_LEVEL", "WORDS_FILE", "WORD_LENGTH"} {
		t.Setenv(k, "")
	}
}

func writeWords(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunMissingUnused(t *testing.T) {
	clearEnv(t)

	code, stdout, stderr := runCLI(t)

	assert.Equal(t, exitUsage, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "usage: wordle UNUSED")
}

func TestRunFilters(t *testing.T) {
	clearEnv(t)
	path := writeWords(t, "weary\npilot\nvague\nworld\nwhorl\n")

	code, stdout, stderr := runCLI(t, "--words", path, "aypitvgu", "W  r", "  l")

	assert.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "world\n", stdout)
}

func TestRunEmbeddedList(t *testing.T) {
	clearEnv(t)

	code, stdout, _ := runCLI(t, "", "CRAN")

	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "crane\n")
	assert.Contains(t, stdout, "crank\n")
}

func TestRunCount(t *testing.T) {
	clearEnv(t)
	path := writeWords(t, "crane\nslate\ntrace\n")

	code, stdout, _ := runCLI(t, "--words", path, "--count", "s")

	assert.Equal(t, exitOK, code)
	assert.Equal(t, "2\n", stdout)
}

func TestRunNoMatches(t *testing.T) {
	clearEnv(t)
	path := writeWords(t, "crane\n")

	code, stdout, _ := runCLI(t, "--words", path, "c")

	assert.Equal(t, exitOK, code)
	assert.Empty(t, stdout)
}

func TestRunFeedbackLooksLikeFlag(t *testing.T) {
	clearEnv(t)
	path := writeWords(t, "crane\nslate\n")

	code, stdout, stderr := runCLI(t, "--words", path, "", "--r")

	assert.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "crane\n", stdout)
}

func TestRunWordLength(t *testing.T) {
	clearEnv(t)
	path := writeWords(t, "crane\nwordle\n")

	code, stdout, _ := runCLI(t, "--words", path, "--length", "6", "", "W")

	assert.Equal(t, exitOK, code)
	assert.Equal(t, "wordle\n", stdout)
}

func TestRunBadWordsFile(t *testing.T) {
	clearEnv(t)

	code, stdout, stderr := runCLI(t, "--words", filepath.Join(t.TempDir(), "missing.txt"), "a")

	assert.Equal(t, exitError, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "load word list")
}

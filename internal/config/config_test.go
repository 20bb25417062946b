package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"LOG_LEVEL", "WORDS_FILE", "WORD_LENGTH", "PORT", "DB_PATH", "JWT_SECRET", "JWT_EXPIRES_DAYS", "HISTORY_LIMIT"} {
		t.Setenv(k, "")
	}

	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.Equal(t, "", cfg.WordsFile)
	assert.Equal(t, 5, cfg.WordLength)
	assert.Equal(t, "5175", cfg.Port)
	assert.Equal(t, 14*24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 50, cfg.HistoryLimit)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("WORD_LENGTH", "6")
	t.Setenv("PORT", "9000")
	t.Setenv("DB_PATH", "/tmp/history.db")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.Equal(t, 6, cfg.WordLength)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "/tmp/history.db", cfg.DBPath)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestLoadFlagOverridesEnv(t *testing.T) {
	t.Setenv("WORD_LENGTH", "6")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("length", 5, "")
	require.NoError(t, fs.Parse([]string{"--length", "4"}))

	v := New()
	BindFlag(v, KeyWordLength, fs.Lookup("length"))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.WordLength)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{"log level", KeyLogLevel, "loud"},
		{"word length", KeyWordLength, 0},
		{"port", KeyPort, ""},
		{"jwt expiry", KeyJWTExpiresDays, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.Set(tt.key, tt.val)
			_, err := Load(v)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestSetupLogging(t *testing.T) {
	prev, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})

	var buf bytes.Buffer
	Config{LogLevel: zerolog.WarnLevel}.SetupLogging(&buf)

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

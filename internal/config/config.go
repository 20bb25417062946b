// apps/go-filter/internal/config/config.go
//
// Runtime configuration for the CLI and the HTTP server.
//
// Sources, highest priority first:
//   1. Command-line flags bound with BindFlag.
//   2. Environment variables (LOG_LEVEL, WORDS_FILE, ...).
//   3. A .env file in the working directory (development convenience).
//   4. Defaults below.
//
// Environment variables:
//   LOG_LEVEL=info           zerolog level name
//   WORDS_FILE=              candidate list; empty uses the embedded one
//   WORD_LENGTH=5
//   PORT=5175
//   DB_PATH=                 SQLite file for query history; empty keeps it in memory
//   JWT_SECRET=              when set, /history requires a bearer token
//   JWT_EXPIRES_DAYS=14
//   HISTORY_LIMIT=50

package config

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/robalobadob/wordle/apps/go-filter/internal/constraint"
)

// Keys understood by Load. Each maps to the upper-cased environment variable.
const (
	KeyLogLevel       = "log_level"
	KeyWordsFile      = "words_file"
	KeyWordLength     = "word_length"
	KeyPort           = "port"
	KeyDBPath         = "db_path"
	KeyJWTSecret      = "jwt_secret"
	KeyJWTExpiresDays = "jwt_expires_days"
	KeyHistoryLimit   = "history_limit"
)

// ErrInvalid is wrapped by every validation error from Load.
var ErrInvalid = errors.New("invalid configuration")

// Config is the resolved configuration.
type Config struct {
	LogLevel     zerolog.Level
	WordsFile    string
	WordLength   int
	Port         string
	DBPath       string
	JWTSecret    string
	JWTExpiry    time.Duration
	HistoryLimit int
}

// New returns a viper instance with defaults and environment lookup set up.
// The .env file is loaded into the process environment first, if present.
func New() *viper.Viper {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyWordsFile, "")
	v.SetDefault(KeyWordLength, constraint.DefaultLength)
	v.SetDefault(KeyPort, "5175")
	v.SetDefault(KeyDBPath, "")
	v.SetDefault(KeyJWTSecret, "")
	v.SetDefault(KeyJWTExpiresDays, 14)
	v.SetDefault(KeyHistoryLimit, 50)
	v.AutomaticEnv()
	return v
}

// BindFlag lets a command-line flag override key when it is set.
func BindFlag(v *viper.Viper, key string, f *pflag.Flag) {
	if f != nil {
		_ = v.BindPFlag(key, f)
	}
}

// Load resolves and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	lvl, err := zerolog.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return Config{}, fmt.Errorf("config: log level %q: %w", v.GetString(KeyLogLevel), ErrInvalid)
	}

	cfg := Config{
		LogLevel:     lvl,
		WordsFile:    v.GetString(KeyWordsFile),
		WordLength:   v.GetInt(KeyWordLength),
		Port:         v.GetString(KeyPort),
		DBPath:       v.GetString(KeyDBPath),
		JWTSecret:    v.GetString(KeyJWTSecret),
		JWTExpiry:    time.Duration(v.GetInt(KeyJWTExpiresDays)) * 24 * time.Hour,
		HistoryLimit: v.GetInt(KeyHistoryLimit),
	}

	if cfg.WordLength <= 0 {
		return Config{}, fmt.Errorf("config: word length %d: %w", cfg.WordLength, ErrInvalid)
	}
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("config: empty port: %w", ErrInvalid)
	}
	if cfg.JWTExpiry <= 0 {
		return Config{}, fmt.Errorf("config: jwt expiry %s: %w", cfg.JWTExpiry, ErrInvalid)
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 50
	}
	return cfg, nil
}

// SetupLogging points the global zerolog logger at w with the configured level.
func (c Config) SetupLogging(w io.Writer) {
	zerolog.SetGlobalLevel(c.LogLevel)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
}

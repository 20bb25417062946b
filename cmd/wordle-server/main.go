// Command wordle-server exposes the word filter over HTTP.
//
//	wordle-server                 serve on $PORT (default 5175)
//	wordle-server token --subject NAME
//	                              print a bearer token for /history
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/robalobadob/wordle/apps/go-filter/internal/config"
	"github.com/robalobadob/wordle/apps/go-filter/internal/httpserver"
	"github.com/robalobadob/wordle/apps/go-filter/internal/store"
	"github.com/robalobadob/wordle/apps/go-filter/internal/words"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "wordle-server: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.New()

	cmd := &cobra.Command{
		Use:           "wordle-server",
		Short:         "Serve the Wordle word filter over HTTP",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			cfg.SetupLogging(os.Stderr)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("log-level", "info", "log level: debug, info, warn, error (env LOG_LEVEL)")
	config.BindFlag(v, config.KeyLogLevel, pf.Lookup("log-level"))

	f := cmd.Flags()
	f.String("port", "5175", "listen port (env PORT)")
	f.String("words", "", "word list file, reloaded on change (env WORDS_FILE)")
	f.String("db", "", "SQLite history file; empty keeps history in memory (env DB_PATH)")
	config.BindFlag(v, config.KeyPort, f.Lookup("port"))
	config.BindFlag(v, config.KeyWordsFile, f.Lookup("words"))
	config.BindFlag(v, config.KeyDBPath, f.Lookup("db"))

	cmd.AddCommand(newTokenCmd(v))
	return cmd
}

// memoryHistoryFactor sizes the in-memory history relative to HISTORY_LIMIT.
const memoryHistoryFactor = 20

func serve(ctx context.Context, cfg config.Config) error {
	src, err := words.NewSource(cfg.WordsFile, cfg.WordLength)
	if err != nil {
		return fmt.Errorf("load word list: %w", err)
	}

	st := store.NewMemoryStore(cfg.HistoryLimit * memoryHistoryFactor)
	if cfg.DBPath != "" {
		if st, err = store.OpenSQLite(cfg.DBPath); err != nil {
			return fmt.Errorf("open history: %w", err)
		}
	}
	defer st.Close()

	if src.Path() != "" {
		go func() {
			err := words.Watch(ctx, src.Path(), func() {
				if err := src.Reload(); err != nil {
					log.Warn().Err(err).Msg("reload word list")
					return
				}
				log.Info().Int("words", src.Len()).Msg("word list reloaded")
			})
			if err != nil {
				log.Error().Err(err).Msg("watch word list")
			}
		}()
	}

	srv := httpserver.New(src, st, httpserver.Options{
		Length:       cfg.WordLength,
		JWTSecret:    cfg.JWTSecret,
		HistoryLimit: cfg.HistoryLimit,
	})
	log.Info().
		Str("port", cfg.Port).
		Int("words", src.Len()).
		Bool("sqlite", cfg.DBPath != "").
		Bool("auth", cfg.JWTSecret != "").
		Msg("starting wordle-server")
	return srv.Run(ctx, ":"+cfg.Port)
}

func newTokenCmd(v *viper.Viper) *cobra.Command {
	var subject string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token for the /history endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			cfg.SetupLogging(cmd.ErrOrStderr())
			tok, exp, err := httpserver.SignToken(cfg.JWTSecret, subject, cfg.JWTExpiry)
			if err != nil {
				return fmt.Errorf("sign token (is JWT_SECRET set?): %w", err)
			}
			log.Debug().Time("expires", exp).Str("subject", subject).Msg("token issued")
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return err
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "cli", "token subject")
	return cmd
}

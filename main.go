// Command wordle narrows the word list to the words consistent with past
// guesses.
//
//	wordle [flags] UNUSED [TRY...]
//
// UNUSED lists the grey letters. Each TRY is one past result aligned to the
// word: uppercase for a green letter, lowercase for a yellow letter, anything
// else (usually a space) for no information. Matches are printed one per line.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-filter/internal/config"
	"github.com/robalobadob/wordle/apps/go-filter/internal/constraint"
	"github.com/robalobadob/wordle/apps/go-filter/internal/filter"
	"github.com/robalobadob/wordle/apps/go-filter/internal/words"
)

const usage = `usage: wordle UNUSED [TRY_1...TRY_N]

  UNUSED:
    List of letters that are not used (grey letters).

  TRY_N:
    Past results, but only yellow & green letters.
    - lower case indicates YELLOW letter
    - upper case indicates GREEN letter
    - any other character (e.g. space) means no information
`

// Exit statuses.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// errUsage marks argument errors that should print the usage text.
var errUsage = errors.New("missing UNUSED argument")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command with args and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage):
		fmt.Fprint(stderr, usage)
		return exitUsage
	default:
		fmt.Fprintf(stderr, "wordle: %v\n", err)
		return exitError
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	v := config.New()
	v.SetDefault(config.KeyLogLevel, "warn")

	var countOnly bool

	cmd := &cobra.Command{
		Use:           "wordle UNUSED [TRY...]",
		Short:         "Filter the word list by past Wordle results",
		Long:          usage,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errUsage
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			cfg.SetupLogging(stderr)

			list, err := words.Load(cfg.WordsFile, cfg.WordLength)
			if err != nil {
				return fmt.Errorf("load word list: %w", err)
			}

			set := constraint.BuildLength(cfg.WordLength, args[0], args[1:]...)
			matches, stages := filter.Trace(set, list)

			log.Debug().Str("constraints", set.String()).Int("candidates", len(list)).Msg("parsed")
			for _, st := range stages {
				log.Debug().Str("stage", st.Stage).Int("kept", st.Kept).Msg("filter stage")
			}

			if countOnly {
				_, err = fmt.Fprintln(stdout, len(matches))
				return err
			}
			if len(matches) == 0 {
				return nil
			}
			_, err = fmt.Fprintln(stdout, strings.Join(matches, "\n"))
			return err
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	// Feedback strings are positional and may look like anything; stop
	// parsing flags at the first positional argument.
	f.SetInterspersed(false)
	f.String("words", "", "word list file (default: embedded list, env WORDS_FILE)")
	f.Int("length", constraint.DefaultLength, "word length (env WORD_LENGTH)")
	f.String("log-level", "warn", "log level: debug, info, warn, error (env LOG_LEVEL)")
	f.BoolVar(&countOnly, "count", false, "print only the number of matching words")

	config.BindFlag(v, config.KeyWordsFile, f.Lookup("words"))
	config.BindFlag(v, config.KeyWordLength, f.Lookup("length"))
	config.BindFlag(v, config.KeyLogLevel, f.Lookup("log-level"))

	return cmd
}

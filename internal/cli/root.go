// Package cli defines Cobra command definitions for the vanity CLI.
// This file contains the root command, shared flags and exit-code mapping.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/vanity-keygen/internal/config"
	"github.com/mahdiidarabi/vanity-keygen/internal/errors"
	"github.com/mahdiidarabi/vanity-keygen/pkg/vanity"
)

// Exit codes returned by the vanity binary.
const (
	ExitOK          = 0
	ExitRuntime     = 1
	ExitConfigError = 2
)

var version = "dev" // set via ldflags at build time

// options holds flag values shared by the commands.
type options struct {
	configPath    string
	pattern       string
	caseSensitive bool
	workers       int
	scheme        string
	output        string
	note          string
	logLevel      string
	reveal        bool
}

// NewRootCommand builds the command tree. The root command runs a search.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "vanity",
		Short: "Search for a key pair whose public key starts with a chosen prefix",
		Long: `Vanity generates key pairs on every CPU until one has a public key that
starts with the requested pattern, then records that public key in the
output file. Private keys are never written to disk.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, opts)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.pattern, "pattern", "p", "", "Prefix the public key must start with (1-9 characters)")
	flags.BoolVarP(&opts.caseSensitive, "case-sensitive", "c", false, "Match the pattern case-sensitively")
	flags.IntVarP(&opts.workers, "workers", "w", 0, "Number of parallel workers (0 = one per CPU)")
	flags.StringVar(&opts.note, "note", "", "Note recorded next to the public key")
	flags.BoolVar(&opts.reveal, "reveal", false, "Print the private key of the match to stdout (never stored)")

	persistent := rootCmd.PersistentFlags()
	persistent.StringVar(&opts.configPath, "config", config.DefaultPath, "Path to the YAML config file")
	persistent.StringVarP(&opts.scheme, "scheme", "s", "", "Key scheme (see 'vanity schemes')")
	persistent.StringVarP(&opts.output, "output", "o", "", "Output file (.csv, or .db/.sqlite/.sqlite3 for SQLite)")
	persistent.StringVar(&opts.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(newListCommand(opts))
	rootCmd.AddCommand(newSchemesCommand())

	return rootCmd
}

// Execute runs the root command and exits the process. Called from main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCommand().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(ExitCode(err))
}

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var withCode errors.ErrorWithExitCode
	if errors.As(err, &withCode) {
		return withCode.ExitCode
	}

	var configErr *vanity.ConfigError
	if errors.As(err, &configErr) {
		return ExitConfigError
	}

	return ExitRuntime
}

// loadConfig reads the config file and overlays every flag the user set explicitly.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	flags := cmd.Flags()
	if flags.Changed("config") {
		if _, err := os.Stat(opts.configPath); err != nil {
			return nil, errors.ErrorWithExitCode{Err: fmt.Errorf("config file: %w", err), ExitCode: ExitConfigError}
		}
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, errors.ErrorWithExitCode{Err: err, ExitCode: ExitConfigError}
	}

	if flags.Changed("pattern") {
		cfg.Pattern = opts.pattern
	}
	if flags.Changed("case-sensitive") {
		cfg.CaseSensitive = opts.caseSensitive
	}
	if flags.Changed("workers") {
		cfg.Workers = opts.workers
	}
	if flags.Changed("note") && opts.note != "" {
		cfg.Note = opts.note
	}
	if flags.Changed("scheme") {
		cfg.Scheme = opts.scheme
	}
	if flags.Changed("output") && opts.output != "" {
		cfg.Output = opts.output
	}
	if flags.Changed("log-level") && opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}

	return cfg, nil
}

// newLogger creates the logger used by a command, writing text lines to w.
func newLogger(w io.Writer, cfg *config.Config) (*logrus.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	return logger, nil
}

// search.go implements the root command: one vanity search.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/vanity-keygen/internal/config"
	"github.com/mahdiidarabi/vanity-keygen/internal/errors"
	"github.com/mahdiidarabi/vanity-keygen/internal/store"
	"github.com/mahdiidarabi/vanity-keygen/pkg/keygen"
	"github.com/mahdiidarabi/vanity-keygen/pkg/vanity"
)

func runSearch(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return err
	}

	if cfg.Pattern == "" && isTerminal(cmd.InOrStdin()) {
		if err := promptSearch(cmd.InOrStdin(), cmd.ErrOrStderr(), cfg); err != nil {
			return errors.ErrorWithExitCode{Err: err, ExitCode: ExitConfigError}
		}
	}

	search, err := cfg.Search()
	if err != nil {
		return err
	}
	scheme, err := cfg.KeyScheme()
	if err != nil {
		return err
	}

	return executeSearch(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), search, cfg, scheme, logger, opts.reveal)
}

// executeSearch opens the output store and runs the search once the configuration is settled.
func executeSearch(
	ctx context.Context,
	stdout, stderr io.Writer,
	search vanity.SearchConfig,
	cfg *config.Config,
	scheme keygen.Scheme,
	logger logrus.FieldLogger,
	reveal bool,
) error {
	out, err := store.Open(cfg.Output)
	if err != nil {
		return errors.WithStackTrace(&vanity.PersistError{Op: "open", Err: err})
	}
	defer func() {
		if err := out.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close output store")
		}
	}()

	printer := newProgressPrinter(stderr, logger)
	client := vanity.NewClient().
		WithGenerator(scheme.New()).
		WithStore(out).
		WithLogger(logger).
		WithNote(cfg.Note).
		WithProgress(printer.update).
		WithProgressInterval(cfg.ProgressInterval)

	result, err := client.Search(ctx, search)
	printer.finish()

	if result != nil {
		printSummary(stdout, result, scheme, cfg.Output, reveal)
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(stdout, "Search cancelled before it started.")
			return nil
		}
		logger.Debug(errors.ErrorStack(err))
		return err
	}
	return nil
}

func printSummary(w io.Writer, result *vanity.Result, scheme keygen.Scheme, output string, reveal bool) {
	switch {
	case result.Found:
		fmt.Fprintln(w, "Vanity address found!")
		fmt.Fprintf(w, "Public key:   %s\n", result.Record.PublicIdentifier)
		fmt.Fprintf(w, "Recorded in:  %s\n", output)
		if reveal {
			fmt.Fprintf(w, "Private key:  %s\n", scheme.EncodePrivate(result.Candidate.Private))
		}
	case result.Cancelled:
		fmt.Fprintln(w, "Search cancelled.")
	default:
		fmt.Fprintln(w, "Vanity address not found.")
	}

	progress := vanity.Progress{Examined: result.Examined, Elapsed: result.Elapsed}
	fmt.Fprintf(w, "Key pairs examined: %s\n", humanize.Comma(int64(result.Examined)))
	fmt.Fprintf(w, "Elapsed time: %s (%s/s)\n",
		result.Elapsed.Round(time.Millisecond),
		humanize.Comma(int64(progress.Rate())),
	)
}

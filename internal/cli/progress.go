// progress.go implements the progress line shown while a search runs.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/mahdiidarabi/vanity-keygen/pkg/vanity"
)

// logProgressEvery throttles progress log lines when stderr is not a terminal.
const logProgressEvery = 5 * time.Second

// progressPrinter renders progress samples. On a terminal it redraws a single line with a
// carriage return; otherwise it writes a log line every logProgressEvery.
// All methods run on the reporter goroutine, except finish which runs after it returned.
type progressPrinter struct {
	out     io.Writer
	logger  logrus.FieldLogger
	isTTY   bool
	drawn   bool
	lastLog time.Duration
}

func newProgressPrinter(out io.Writer, logger logrus.FieldLogger) *progressPrinter {
	return &progressPrinter{
		out:    out,
		logger: logger,
		isTTY:  isTerminal(out),
	}
}

// update is a vanity.ProgressFunc.
func (p *progressPrinter) update(progress vanity.Progress) {
	if p.isTTY {
		fmt.Fprintf(p.out, "\r%s", formatProgress(progress))
		p.drawn = true
		return
	}

	if progress.Elapsed-p.lastLog < logProgressEvery {
		return
	}
	p.lastLog = progress.Elapsed
	p.logger.WithFields(logrus.Fields{
		"examined": progress.Examined,
		"rate":     fmt.Sprintf("%.0f/s", progress.Rate()),
	}).Info("Search progress")
}

// finish terminates the progress line so later output starts on a fresh line.
func (p *progressPrinter) finish() {
	if p.drawn {
		fmt.Fprintln(p.out)
		p.drawn = false
	}
}

func formatProgress(progress vanity.Progress) string {
	return fmt.Sprintf("Key pairs examined: %s (%s/s)",
		humanize.Comma(int64(progress.Examined)),
		humanize.Comma(int64(progress.Rate())),
	)
}

// isTerminal reports whether w is a terminal file.
func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

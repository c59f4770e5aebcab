// prompt.go asks for search settings on the terminal when they were not given as flags.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mahdiidarabi/vanity-keygen/internal/config"
	"github.com/mahdiidarabi/vanity-keygen/pkg/vanity"
)

// maxPromptAttempts bounds how often an invalid answer is asked again.
const maxPromptAttempts = 3

type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// ask prints the question and returns the trimmed answer. A last line without a newline
// is accepted; io.EOF is returned only when nothing was left to read.
func (p *prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptSearch fills the pattern, case sensitivity and worker count of cfg from the
// terminal. Answers that fail validation are asked again a few times.
func promptSearch(in io.Reader, out io.Writer, cfg *config.Config) error {
	p := newPrompter(in, out)

	pattern, err := p.askValid(
		fmt.Sprintf("Enter a vanity string (%d-%d characters): ", vanity.MinPatternLength, vanity.MaxPatternLength),
		func(answer string) error {
			n := utf8.RuneCountInString(answer)
			if n < vanity.MinPatternLength || n > vanity.MaxPatternLength {
				return &vanity.ConfigError{Field: "pattern", Reason: "must be between 1 and 9 characters"}
			}
			return nil
		},
	)
	if err != nil {
		return err
	}
	cfg.Pattern = pattern

	answer, err := p.ask("Should the search be case-sensitive? (yes/no) [no]: ")
	if err != nil {
		return err
	}
	cfg.CaseSensitive = isYes(answer)

	workers, err := p.askValid(
		"Enter the number of workers to use [all CPUs]: ",
		func(answer string) error {
			if answer == "" {
				return nil
			}
			if n, err := strconv.Atoi(answer); err != nil || n < 1 {
				return &vanity.ConfigError{Field: "workers", Reason: fmt.Sprintf("must be a positive integer, got %q", answer)}
			}
			return nil
		},
	)
	if err != nil {
		return err
	}
	if workers != "" {
		cfg.Workers, _ = strconv.Atoi(workers)
	}

	return nil
}

func (p *prompter) askValid(question string, validate func(string) error) (string, error) {
	var lastErr error
	for range maxPromptAttempts {
		answer, err := p.ask(question)
		if err != nil {
			return "", err
		}
		if lastErr = validate(answer); lastErr == nil {
			return answer, nil
		}
		fmt.Fprintln(p.out, lastErr)
	}
	return "", lastErr
}

func isYes(answer string) bool {
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	}
	return false
}

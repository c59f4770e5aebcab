package vanity

import (
	"strconv"
	"strings"
	"unicode"
)

// KeyGenerator defines the key-generation capability used by search workers.
// Implementations must be safe for concurrent use: every worker calls Generate on the same value.
type KeyGenerator interface {
	// Generate creates one key pair. An error ends the calling worker as a fault.
	Generate() (Candidate, error)

	// Name returns a human-readable name for this generator.
	Name() string
}

// Alphabeter is implemented by generators whose identifiers only use a fixed set of characters.
// It lets callers reject patterns that can never match.
type Alphabeter interface {
	Alphabet() string
}

// GeneratorFunc adapts a function to the KeyGenerator interface.
type GeneratorFunc func() (Candidate, error)

// Generate calls f.
func (f GeneratorFunc) Generate() (Candidate, error) {
	return f()
}

// Name returns "func".
func (f GeneratorFunc) Name() string {
	return "func"
}

// CheckAlphabet returns a ConfigError when pattern contains a character the alphabet cannot
// produce. Under case-insensitive matching either case of a character is accepted.
func CheckAlphabet(pattern, alphabet string, caseSensitive bool) error {
	for _, r := range pattern {
		if alphabetHas(alphabet, r, caseSensitive) {
			continue
		}
		return &ConfigError{
			Field:  "pattern",
			Reason: "character " + strconv.QuoteRune(r) + " never appears in generated identifiers",
		}
	}
	return nil
}

func alphabetHas(alphabet string, r rune, caseSensitive bool) bool {
	if strings.ContainsRune(alphabet, r) {
		return true
	}
	if caseSensitive {
		return false
	}
	return strings.ContainsRune(alphabet, unicode.ToLower(r)) ||
		strings.ContainsRune(alphabet, unicode.ToUpper(r))
}

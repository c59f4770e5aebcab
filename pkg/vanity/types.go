package vanity

import (
	"time"
	"unicode/utf8"
)

// DefaultNote is written next to every recorded identifier. Private material is never persisted.
const DefaultNote = "Seed Phrase Not Stored"

const (
	// MinPatternLength and MaxPatternLength bound the vanity pattern, counted in characters.
	MinPatternLength = 1
	MaxPatternLength = 9
)

// SearchConfig describes one search. It is immutable once the search starts.
type SearchConfig struct {
	// Pattern is the prefix the public identifier must start with.
	Pattern string

	// CaseSensitive disables case folding in the match predicate.
	CaseSensitive bool

	// Workers is the number of parallel search goroutines (must be >= 1).
	Workers int
}

// Validate checks the pattern length and worker count.
func (c SearchConfig) Validate() error {
	n := utf8.RuneCountInString(c.Pattern)
	if n < MinPatternLength || n > MaxPatternLength {
		return &ConfigError{
			Field:  "pattern",
			Reason: "must be between 1 and 9 characters",
		}
	}
	if c.Workers < 1 {
		return &ConfigError{
			Field:  "workers",
			Reason: "must be a positive integer",
		}
	}
	return nil
}

// Candidate is one generated key pair.
type Candidate struct {
	Private          []byte // Secret key material, encoding defined by the generator
	PublicIdentifier string // Textual public identifier tested against the pattern
}

// MatchRecord is the only value ever handed to a Store.
type MatchRecord struct {
	PublicIdentifier string
	Note             string
}

// Progress is one sample taken by the progress reporter.
type Progress struct {
	Examined uint64
	Elapsed  time.Duration
}

// Rate returns candidates examined per second.
func (p Progress) Rate() float64 {
	if p.Elapsed <= 0 {
		return 0
	}
	return float64(p.Examined) / p.Elapsed.Seconds()
}

// Result summarizes a finished search.
type Result struct {
	Found     bool          // A match was found (persisted unless Run also returned a PersistError)
	Record    MatchRecord   // The winning record, valid when Found
	Candidate Candidate     // The winning key pair, valid when Found; never persisted
	WorkerID  int           // Worker that claimed the match
	Examined  uint64        // Candidates that did not match
	Elapsed   time.Duration // Wall-clock time spent Running
	Faults    []error       // Worker faults, one per worker that ended abnormally
	Cancelled bool          // The context was cancelled before a match was found
}

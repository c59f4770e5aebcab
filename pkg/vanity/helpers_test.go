package vanity_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/mahdiidarabi/vanity-keygen/pkg/vanity"
)

// memStore is an in-memory vanity.Store that counts calls.
type memStore struct {
	mu       sync.Mutex
	records  []vanity.MatchRecord
	prepared int
	appends  int

	prepareErr error
	appendErr  error
}

func (s *memStore) Prepare(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prepared++
	return s.prepareErr
}

func (s *memStore) Append(ctx context.Context, record vanity.MatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appends++
	if s.appendErr != nil {
		return s.appendErr
	}
	s.records = append(s.records, record)
	return nil
}

func (s *memStore) Records(ctx context.Context) ([]vanity.MatchRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]vanity.MatchRecord(nil), s.records...), nil
}

func (s *memStore) Close() error {
	return nil
}

func (s *memStore) snapshot() (records []vanity.MatchRecord, prepared, appends int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]vanity.MatchRecord(nil), s.records...), s.prepared, s.appends
}

// sequenceGenerator returns the given identifiers in order, then repeats the last one.
// It is safe for concurrent use.
type sequenceGenerator struct {
	ids   []string
	calls atomic.Int64
}

func newSequenceGenerator(ids ...string) *sequenceGenerator {
	return &sequenceGenerator{ids: ids}
}

func (g *sequenceGenerator) Generate() (vanity.Candidate, error) {
	n := int(g.calls.Add(1)) - 1
	if n >= len(g.ids) {
		n = len(g.ids) - 1
	}
	return vanity.Candidate{
		Private:          []byte{byte(n)},
		PublicIdentifier: g.ids[n],
	}, nil
}

func (g *sequenceGenerator) Name() string {
	return "sequence"
}

// alphabetGenerator wraps a generator with a fixed identifier alphabet.
type alphabetGenerator struct {
	vanity.KeyGenerator
	alphabet string
}

func (g alphabetGenerator) Alphabet() string {
	return g.alphabet
}

// neverMatches generates identifiers that no test pattern starts with.
func neverMatches() vanity.KeyGenerator {
	return vanity.GeneratorFunc(func() (vanity.Candidate, error) {
		return vanity.Candidate{PublicIdentifier: "~never~"}, nil
	})
}

var errBrokenGenerator = errors.New("entropy source broken")

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

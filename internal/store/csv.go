package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/mahdiidarabi/vanity-keygen/pkg/vanity"
)

// Header is the first row of every CSV store.
var Header = []string{"Public Key", "Note"}

const lockRetryDelay = 10 * time.Millisecond

// CSVStore appends matches to a CSV file. Writes inside the process are serialized by a mutex
// and writes across processes by an advisory lock on a sibling ".lock" file.
type CSVStore struct {
	path string
	lock *flock.Flock
	mu   sync.Mutex
}

// NewCSV creates a store for the CSV file at path. Nothing is touched until Prepare or Append.
func NewCSV(path string) *CSVStore {
	return &CSVStore{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path returns the CSV file path.
func (s *CSVStore) Path() string {
	return s.path
}

// Prepare creates the file with its header if it does not exist or is empty. An existing file
// must start with the header.
func (s *CSVStore) Prepare(ctx context.Context) error {
	return s.withLock(ctx, func() error {
		f, err := os.OpenFile(s.path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open %s: %w", s.path, err)
		}
		defer f.Close()

		written, err := ensureHeader(f)
		if err != nil {
			return err
		}
		if written {
			return f.Sync()
		}

		first, err := csv.NewReader(f).Read()
		if err != nil {
			return fmt.Errorf("read header of %s: %w", s.path, err)
		}
		if !slices.Equal(first, Header) {
			return fmt.Errorf("%s: unexpected header %q", s.path, first)
		}
		return nil
	})
}

// Append writes one row and syncs the file before returning.
func (s *CSVStore) Append(ctx context.Context, record vanity.MatchRecord) error {
	return s.withLock(ctx, func() error {
		f, err := os.OpenFile(s.path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open %s: %w", s.path, err)
		}
		defer f.Close()

		if _, err := ensureHeader(f); err != nil {
			return err
		}

		w := csv.NewWriter(f)
		if err := w.Write([]string{record.PublicIdentifier, record.Note}); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return fmt.Errorf("flush record: %w", err)
		}
		if err := f.Sync(); err != nil {
			return fmt.Errorf("sync %s: %w", s.path, err)
		}
		return f.Close()
	})
}

// Records returns every data row. A missing file holds no records.
func (s *CSVStore) Records(ctx context.Context) ([]vanity.MatchRecord, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = len(Header)

	var records []vanity.MatchRecord
	for line := 0; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", s.path, err)
		}
		if line == 0 && slices.Equal(row, Header) {
			continue
		}
		records = append(records, vanity.MatchRecord{PublicIdentifier: row[0], Note: row[1]})
	}
	return records, nil
}

// Close implements vanity.Store. The CSV store holds no open handles between writes.
func (s *CSVStore) Close() error {
	return nil
}

func (s *CSVStore) withLock(ctx context.Context, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("lock %s: %w", s.lock.Path(), err)
	}
	if !locked {
		return fmt.Errorf("lock %s: not acquired", s.lock.Path())
	}
	defer s.lock.Unlock()

	return fn()
}

// ensureHeader writes the header row when f is empty and reports whether it did.
func ensureHeader(f *os.File) (bool, error) {
	info, err := f.Stat()
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", f.Name(), err)
	}
	if info.Size() > 0 {
		return false, nil
	}

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return false, fmt.Errorf("write header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return false, fmt.Errorf("flush header: %w", err)
	}
	return true, nil
}

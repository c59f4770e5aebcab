package vanity_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mahdiidarabi/vanity-keygen/internal/store"
	"github.com/mahdiidarabi/vanity-keygen/pkg/vanity"
)

func TestCoordinator_Run_RecordsFirstMatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vanity_wallets.csv")
	generator := newSequenceGenerator("xyz", "ABxyz")

	coordinator := vanity.NewClient().
		WithGenerator(generator).
		WithStore(store.NewCSV(path)).
		WithLogger(quietLogger()).
		Coordinator(vanity.SearchConfig{Pattern: "Ab", CaseSensitive: false, Workers: 1})

	result, err := coordinator.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !result.Found {
		t.Fatal("expected a match")
	}
	if result.Examined != 1 {
		t.Errorf("Examined = %d, want 1", result.Examined)
	}
	if result.Record.PublicIdentifier != "ABxyz" {
		t.Errorf("PublicIdentifier = %q, want ABxyz", result.Record.PublicIdentifier)
	}
	if result.WorkerID != 1 {
		t.Errorf("WorkerID = %d, want 1", result.WorkerID)
	}
	if coordinator.State() != vanity.StateDone {
		t.Errorf("State = %v, want done", coordinator.State())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "Public Key,Note\nABxyz,Seed Phrase Not Stored\n"
	if string(data) != want {
		t.Errorf("output = %q, want %q", data, want)
	}
}

func TestCoordinator_Run_AtMostOneRecord(t *testing.T) {
	for _, workers := range []int{1, 4, 16} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			memory := &memStore{}
			// Every candidate matches, so all workers race for the claim.
			generator := vanity.GeneratorFunc(func() (vanity.Candidate, error) {
				return vanity.Candidate{PublicIdentifier: "abcdef"}, nil
			})

			result, err := vanity.NewClient().
				WithGenerator(generator).
				WithStore(memory).
				WithLogger(quietLogger()).
				Search(context.Background(), vanity.SearchConfig{Pattern: "abc", Workers: workers})
			if err != nil {
				t.Fatalf("Search failed: %v", err)
			}
			if !result.Found {
				t.Fatal("expected a match")
			}

			records, prepared, appends := memory.snapshot()
			if len(records) != 1 || appends != 1 {
				t.Errorf("workers=%d: got %d records, %d appends", workers, len(records), appends)
			}
			if prepared != 1 {
				t.Errorf("Prepare called %d times, want 1", prepared)
			}
		})
	}
}

func TestCoordinator_Run_Cancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	memory := &memStore{}
	result, err := vanity.NewClient().
		WithGenerator(neverMatches()).
		WithStore(memory).
		WithLogger(quietLogger()).
		Search(ctx, vanity.SearchConfig{Pattern: "abc", Workers: 4})
	if err != nil {
		t.Fatalf("cancellation should not be an error, got %v", err)
	}

	if !result.Cancelled || result.Found {
		t.Errorf("Cancelled = %v, Found = %v", result.Cancelled, result.Found)
	}
	if result.Examined == 0 {
		t.Error("expected some candidates to be examined before cancellation")
	}
	if records, _, _ := memory.snapshot(); len(records) != 0 {
		t.Errorf("cancelled search persisted %d records", len(records))
	}
}

func TestCoordinator_Run_AlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	memory := &memStore{}
	_, err := vanity.NewClient().
		WithGenerator(neverMatches()).
		WithStore(memory).
		WithLogger(quietLogger()).
		Search(ctx, vanity.SearchConfig{Pattern: "abc", Workers: 2})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, prepared, _ := memory.snapshot(); prepared != 0 {
		t.Error("store should not be prepared for a cancelled search")
	}
}

func TestCoordinator_Run_AllWorkersFault(t *testing.T) {
	broken := vanity.GeneratorFunc(func() (vanity.Candidate, error) {
		return vanity.Candidate{}, errBrokenGenerator
	})

	result, err := vanity.NewClient().
		WithGenerator(broken).
		WithStore(&memStore{}).
		WithLogger(quietLogger()).
		Search(context.Background(), vanity.SearchConfig{Pattern: "abc", Workers: 3})

	if !errors.Is(err, vanity.ErrNoLiveWorkers) {
		t.Fatalf("expected ErrNoLiveWorkers, got %v", err)
	}
	if !errors.Is(err, errBrokenGenerator) {
		t.Errorf("expected the generator error to be wrapped, got %v", err)
	}
	if result == nil || len(result.Faults) != 3 {
		t.Fatalf("expected 3 faults, got %+v", result)
	}

	var fault *vanity.WorkerFault
	if !errors.As(result.Faults[0], &fault) {
		t.Errorf("expected *WorkerFault, got %T", result.Faults[0])
	}
}

func TestCoordinator_Run_PanicDoesNotStopSiblings(t *testing.T) {
	var calls atomic.Int64
	generator := vanity.GeneratorFunc(func() (vanity.Candidate, error) {
		n := calls.Add(1)
		switch {
		case n == 1:
			panic("worker exploded")
		case n < 200:
			return vanity.Candidate{PublicIdentifier: "nope"}, nil
		default:
			return vanity.Candidate{PublicIdentifier: "abc"}, nil
		}
	})

	result, err := vanity.NewClient().
		WithGenerator(generator).
		WithStore(&memStore{}).
		WithLogger(quietLogger()).
		Search(context.Background(), vanity.SearchConfig{Pattern: "abc", Workers: 4})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if !result.Found {
		t.Fatal("surviving workers should have found the match")
	}
	if len(result.Faults) != 1 {
		t.Errorf("expected 1 fault, got %d", len(result.Faults))
	}
}

func TestCoordinator_Run_PersistFailure(t *testing.T) {
	result, err := vanity.NewClient().
		WithGenerator(newSequenceGenerator("abc")).
		WithStore(&memStore{appendErr: errors.New("disk full")}).
		WithLogger(quietLogger()).
		Search(context.Background(), vanity.SearchConfig{Pattern: "abc", Workers: 2})

	var persistErr *vanity.PersistError
	if !errors.As(err, &persistErr) {
		t.Fatalf("expected *PersistError, got %v", err)
	}
	if result == nil || !result.Found {
		t.Fatal("the match should still be reported")
	}
	if result.Record.PublicIdentifier != "abc" {
		t.Errorf("unexpected record: %+v", result.Record)
	}
}

func TestCoordinator_Run_PrepareFailure(t *testing.T) {
	generator := newSequenceGenerator("abc")
	_, err := vanity.NewClient().
		WithGenerator(generator).
		WithStore(&memStore{prepareErr: errors.New("read-only")}).
		WithLogger(quietLogger()).
		Search(context.Background(), vanity.SearchConfig{Pattern: "abc", Workers: 2})

	var persistErr *vanity.PersistError
	if !errors.As(err, &persistErr) || persistErr.Op != "prepare" {
		t.Fatalf("expected prepare *PersistError, got %v", err)
	}
	if generator.calls.Load() != 0 {
		t.Error("no worker should run when the store cannot be prepared")
	}
}

func TestCoordinator_Run_InvalidConfig(t *testing.T) {
	memory := &memStore{}
	_, err := vanity.NewClient().
		WithGenerator(neverMatches()).
		WithStore(memory).
		WithLogger(quietLogger()).
		Search(context.Background(), vanity.SearchConfig{Pattern: "", Workers: 2})

	var cfgErr *vanity.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %v", err)
	}
	if _, prepared, _ := memory.snapshot(); prepared != 0 {
		t.Error("store should not be touched for an invalid config")
	}
}

func TestCoordinator_Run_PatternOutsideAlphabet(t *testing.T) {
	generator := alphabetGenerator{KeyGenerator: neverMatches(), alphabet: "abc"}
	_, err := vanity.NewClient().
		WithGenerator(generator).
		WithStore(&memStore{}).
		WithLogger(quietLogger()).
		Search(context.Background(), vanity.SearchConfig{Pattern: "abz", CaseSensitive: true, Workers: 1})

	var cfgErr *vanity.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %v", err)
	}
}

func TestCoordinator_Run_MissingDependencies(t *testing.T) {
	config := vanity.SearchConfig{Pattern: "abc", Workers: 1}

	_, err := vanity.NewClient().WithStore(&memStore{}).Search(context.Background(), config)
	if !errors.Is(err, vanity.ErrNoGenerator) {
		t.Errorf("expected ErrNoGenerator, got %v", err)
	}

	_, err = vanity.NewClient().WithGenerator(neverMatches()).Search(context.Background(), config)
	if !errors.Is(err, vanity.ErrNoStore) {
		t.Errorf("expected ErrNoStore, got %v", err)
	}
}

func TestCoordinator_Run_Twice(t *testing.T) {
	coordinator := vanity.NewClient().
		WithGenerator(newSequenceGenerator("abc")).
		WithStore(&memStore{}).
		WithLogger(quietLogger()).
		Coordinator(vanity.SearchConfig{Pattern: "abc", Workers: 1})

	if coordinator.State() != vanity.StateIdle {
		t.Errorf("State = %v, want idle", coordinator.State())
	}
	if _, err := coordinator.Run(context.Background()); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	if _, err := coordinator.Run(context.Background()); !errors.Is(err, vanity.ErrAlreadyStarted) {
		t.Fatalf("expected ErrAlreadyStarted, got %v", err)
	}
}

func TestCoordinator_Run_ReportsProgress(t *testing.T) {
	var mu sync.Mutex
	var samples []vanity.Progress

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	result, err := vanity.NewClient().
		WithGenerator(neverMatches()).
		WithStore(&memStore{}).
		WithLogger(quietLogger()).
		WithProgressInterval(5 * time.Millisecond).
		WithProgress(func(p vanity.Progress) {
			mu.Lock()
			samples = append(samples, p)
			mu.Unlock()
		}).
		Search(ctx, vanity.SearchConfig{Pattern: "abc", Workers: 2})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(samples) < 2 {
		t.Fatalf("expected several progress samples, got %d", len(samples))
	}
	for i := 1; i < len(samples); i++ {
		if samples[i].Examined < samples[i-1].Examined {
			t.Errorf("progress went backwards at sample %d: %d < %d",
				i, samples[i].Examined, samples[i-1].Examined)
		}
	}
	if last := samples[len(samples)-1]; last.Examined > result.Examined {
		t.Errorf("last sample %d exceeds final count %d", last.Examined, result.Examined)
	}
}

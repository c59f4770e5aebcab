package vanity

import (
	"fmt"

	"github.com/mahdiidarabi/vanity-keygen/internal/errors"
)

var (
	// ErrNoLiveWorkers is returned when every worker ended abnormally before a match was found.
	ErrNoLiveWorkers = errors.New("all search workers ended abnormally")

	// ErrAlreadyStarted is returned when a Coordinator is run more than once.
	ErrAlreadyStarted = errors.New("search already started")

	// ErrSinkClosed is returned by Submit after the sink was closed.
	ErrSinkClosed = errors.New("result sink closed")

	// ErrNoGenerator is returned when a search is started without a key generator.
	ErrNoGenerator = errors.New("no key generator configured")

	// ErrNoStore is returned when a search is started without an output store.
	ErrNoStore = errors.New("no output store configured")
)

// ConfigError reports an invalid search configuration. It is detected before any worker is spawned.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PersistError reports that the output store could not be prepared, written or flushed.
type PersistError struct {
	Op  string // "prepare" or "append"
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Op, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// WorkerFault reports a worker that ended abnormally without finding a match.
type WorkerFault struct {
	Worker int
	Cause  error
}

func (e *WorkerFault) Error() string {
	return fmt.Sprintf("worker %d: %v", e.Worker, e.Cause)
}

func (e *WorkerFault) Unwrap() error {
	return e.Cause
}

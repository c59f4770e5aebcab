package vanity

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/mahdiidarabi/vanity-keygen/internal/errors"
)

// search holds everything one run of the Coordinator shares with its workers.
type search struct {
	state     *SharedState
	matcher   Matcher
	generator KeyGenerator
	sink      *Sink
	note      string
	logger    logrus.FieldLogger

	live atomic.Int64

	faultsMu sync.Mutex
	faults   []error

	// Written only by the worker that won the claim, read after every worker has returned.
	winnerID   int
	winner     Candidate
	record     MatchRecord
	persistErr error
}

// work is the search loop of one worker.
func (s *search) work(id int) {
	// The last worker out raises stop so the reporter and the coordinator never wait on
	// a search nobody is running.
	defer func() {
		if s.live.Add(-1) == 0 {
			s.state.Raise()
		}
	}()
	defer errors.Recover(func(cause error) {
		s.fault(id, cause)
	})

	for !s.state.Stopped() {
		candidate, err := s.generator.Generate()
		if err != nil {
			s.fault(id, errors.WithStackTraceAndPrefix(err, "generate key pair"))
			return
		}

		if !s.matcher.Match(candidate.PublicIdentifier) {
			s.state.Increment()
			continue
		}

		if !s.state.Claim() {
			s.logger.WithFields(logrus.Fields{
				"worker":     id,
				"public_key": candidate.PublicIdentifier,
			}).Debug("Match discarded, search already stopped")
			return
		}

		s.win(id, candidate)
		return
	}
}

func (s *search) win(id int, candidate Candidate) {
	s.winnerID = id
	s.winner = candidate
	s.record = MatchRecord{
		PublicIdentifier: candidate.PublicIdentifier,
		Note:             s.note,
	}

	s.logger.WithFields(logrus.Fields{
		"worker":     id,
		"public_key": candidate.PublicIdentifier,
	}).Info("Match found")

	// The match is known in memory even if persistence fails; the coordinator reports both.
	if err := s.sink.Submit(context.Background(), s.record); err != nil {
		s.persistErr = err
	}
}

func (s *search) fault(id int, cause error) {
	fault := &WorkerFault{Worker: id, Cause: cause}

	s.logger.WithField("worker", id).WithError(cause).Error("Search worker ended abnormally")
	s.logger.WithField("worker", id).Debug(errors.ErrorStack(cause))

	s.faultsMu.Lock()
	s.faults = append(s.faults, fault)
	s.faultsMu.Unlock()
}

package vanity

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Client provides a high-level API for vanity searches.
type Client struct {
	generator KeyGenerator
	store     Store
	logger    logrus.FieldLogger
	note      string
	progress  ProgressFunc
	interval  time.Duration
}

// NewClient creates a new client with default settings. A generator and a store must be set
// before searching.
func NewClient() *Client {
	return &Client{
		logger:   logrus.StandardLogger(),
		note:     DefaultNote,
		interval: DefaultProgressInterval,
	}
}

// WithGenerator sets the key generator.
func (c *Client) WithGenerator(generator KeyGenerator) *Client {
	c.generator = generator
	return c
}

// WithStore sets the store the winning record is written to.
func (c *Client) WithStore(store Store) *Client {
	c.store = store
	return c
}

// WithLogger sets the logger. A nil logger keeps the current one.
func (c *Client) WithLogger(logger logrus.FieldLogger) *Client {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// WithNote sets the note recorded next to the winning identifier.
func (c *Client) WithNote(note string) *Client {
	c.note = note
	return c
}

// WithProgress sets the function receiving progress samples.
func (c *Client) WithProgress(fn ProgressFunc) *Client {
	c.progress = fn
	return c
}

// WithProgressInterval sets the sampling interval. Non-positive values keep the default.
func (c *Client) WithProgressInterval(interval time.Duration) *Client {
	if interval > 0 {
		c.interval = interval
	}
	return c
}

// Coordinator creates a Coordinator for one search with the client's settings.
func (c *Client) Coordinator(config SearchConfig) *Coordinator {
	return &Coordinator{
		config:    config,
		generator: c.generator,
		store:     c.store,
		logger:    c.logger,
		note:      c.note,
		progress:  c.progress,
		interval:  c.interval,
	}
}

// Search runs one search to completion. See Coordinator.Run for the error contract.
func (c *Client) Search(ctx context.Context, config SearchConfig) (*Result, error) {
	return c.Coordinator(config).Run(ctx)
}

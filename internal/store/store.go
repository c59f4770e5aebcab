// Package store implements the output stores a vanity search records its match in.
package store

import (
	"path/filepath"
	"strings"

	"github.com/mahdiidarabi/vanity-keygen/pkg/vanity"
)

// DefaultPath is the output store used when none is configured.
const DefaultPath = "vanity_wallets.csv"

// Open picks a store by file extension: .db, .sqlite and .sqlite3 open a SQLite store,
// anything else a CSV store.
func Open(path string) (vanity.Store, error) {
	if path == "" {
		path = DefaultPath
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		s, err := NewSQLite(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return NewCSV(path), nil
	}
}

// Package db opens the site's SQLite row store and applies its schema.
package db

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver
)

// Mode selects how a pool is tuned.
type Mode string

// Pool modes.
const (
	// ModeWrite serialises writers on one connection with immediate transactions.
	ModeWrite Mode = "write"
	// ModeRead allows several concurrent readers.
	ModeRead Mode = "read"
)

const (
	busyTimeoutMs      = "5000"
	defaultReadMaxOpen = 4
)

// Store is the write/read pool pair for one database file. Repositories send
// mutations to Write and listings to Read.
type Store struct {
	Write *sqlx.DB
	Read  *sqlx.DB
}

// Open opens one pool on path. maxOpen only applies to ModeRead (0 means 4).
func Open(path string, mode Mode, maxOpen int) (*sqlx.DB, error) {
	if mode != ModeRead && mode != ModeWrite {
		return nil, fmt.Errorf("invalid SQLite mode %q: must be %q or %q", mode, ModeRead, ModeWrite)
	}

	db, err := sqlx.Open("sqlite3", dsn(path, mode))
	if err != nil {
		return nil, fmt.Errorf("open sqlite (%s): %w", mode, err)
	}

	if mode == ModeWrite {
		maxOpen = 1
	} else if maxOpen <= 0 {
		maxOpen = defaultReadMaxOpen
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxOpen)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite (%s): %w", mode, err)
	}
	return db, nil
}

// OpenStore opens the write pool first, then the read pool, on the same file.
func OpenStore(path string, readMaxOpen int) (*Store, error) {
	w, err := Open(path, ModeWrite, 0)
	if err != nil {
		return nil, err
	}
	r, err := Open(path, ModeRead, readMaxOpen)
	if err != nil {
		_ = w.Close()
		return nil, err
	}
	return &Store{Write: w, Read: r}, nil
}

// Close closes both pools.
func (s *Store) Close() error {
	rerr := s.Read.Close()
	if err := s.Write.Close(); err != nil {
		return err
	}
	return rerr
}

func dsn(path string, mode Mode) string {
	q := url.Values{}
	q.Set("_journal_mode", "WAL")
	q.Set("_busy_timeout", busyTimeoutMs)
	q.Set("_synchronous", "NORMAL")
	q.Set("_foreign_keys", "on")
	if mode == ModeWrite {
		q.Set("_txlock", "immediate")
	}
	return path + "?" + q.Encode()
}

// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// ErrStorageLocked is returned when another process holds the BadgerDB
// directory for longer than the storage is willing to wait.
var ErrStorageLocked = errors.New("session storage is in use by another process")

// DefaultLockWait is how long a shared storage operation waits for the
// directory lock.
const DefaultLockWait = 5 * time.Second

// badger reports lock contention as text only, on every platform.
const badgerLockMessage = "Another process is using this Badger database"

// BadgerStorage persists session keys in a BadgerDB directory.
//
// Storage from OpenBadger holds the directory for its whole life. Storage
// from OpenBadgerShared opens the directory only for the length of each
// operation, so a long running "serve" and one-shot CLI commands can use the
// same token directory.
type BadgerStorage struct {
	db     *badger.DB
	owned  bool
	closed atomic.Bool

	// shared mode
	path     string
	lockWait time.Duration
	opMu     sync.Mutex
}

func badgerOptions(path string) badger.Options {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Suppress BadgerDB logs
	opts.SyncWrites = true
	return opts
}

// OpenBadger opens (or creates) a BadgerDB at path and keeps it open. The
// returned storage owns the database and closes it on Close. A directory
// held by another process yields ErrStorageLocked.
func OpenBadger(path string) (*BadgerStorage, error) {
	db, err := openBadger(path, 0)
	if err != nil {
		return nil, err
	}
	return &BadgerStorage{db: db, owned: true}, nil
}

// OpenBadgerShared returns storage that opens the BadgerDB at path per
// operation. Each operation waits up to lockWait for other processes to
// release the directory; a non-positive lockWait means DefaultLockWait. The
// directory is opened once here so a bad path fails early.
func OpenBadgerShared(path string, lockWait time.Duration) (*BadgerStorage, error) {
	if lockWait <= 0 {
		lockWait = DefaultLockWait
	}
	s := &BadgerStorage{path: path, lockWait: lockWait}
	if err := s.withDB(func(*badger.DB) error { return nil }); err != nil {
		return nil, err
	}
	return s, nil
}

// NewBadgerStorage wraps an already open database. Close leaves it open.
func NewBadgerStorage(db *badger.DB) *BadgerStorage {
	return &BadgerStorage{db: db}
}

// IsLocked reports whether err means the directory is held by another
// process.
func IsLocked(err error) bool {
	return errors.Is(err, ErrStorageLocked)
}

func isBadgerLockError(err error) bool {
	return err != nil && strings.Contains(err.Error(), badgerLockMessage)
}

// openBadger opens path, polling while another process holds the lock.
func openBadger(path string, wait time.Duration) (*badger.DB, error) {
	deadline := time.Now().Add(wait)
	delay := 10 * time.Millisecond
	for {
		db, err := badger.Open(badgerOptions(path))
		if err == nil {
			return db, nil
		}
		if !isBadgerLockError(err) {
			return nil, fmt.Errorf("open badger db for session: %w", err)
		}
		if time.Now().Add(delay).After(deadline) {
			return nil, fmt.Errorf("%w: %s", ErrStorageLocked, path)
		}
		time.Sleep(delay)
		if delay < 200*time.Millisecond {
			delay *= 2
		}
	}
}

// withDB runs fn against the held database, or against one opened just for
// fn in shared mode.
func (s *BadgerStorage) withDB(fn func(db *badger.DB) error) error {
	if s.closed.Load() {
		return ErrStorageClosed
	}
	if s.db != nil {
		return fn(s.db)
	}

	// flock conflicts between descriptors of one process too.
	s.opMu.Lock()
	defer s.opMu.Unlock()

	db, err := openBadger(s.path, s.lockWait)
	if err != nil {
		return err
	}
	err = fn(db)
	if cerr := db.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("close badger db: %w", cerr)
	}
	return err
}

func (s *BadgerStorage) Get(key string) (string, bool, error) {
	var value string
	var found bool
	err := s.withDB(func(db *badger.DB) error {
		err := db.View(func(txn *badger.Txn) error {
			item, err := txn.Get([]byte(key))
			if err != nil {
				return err
			}
			return item.Value(func(val []byte) error {
				value = string(val)
				return nil
			})
		})
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get %s: %w", key, err)
		}
		found = true
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return value, found, nil
}

func (s *BadgerStorage) Set(key, value string) error {
	return s.withDB(func(db *badger.DB) error {
		err := db.Update(func(txn *badger.Txn) error {
			return txn.Set([]byte(key), []byte(value))
		})
		if err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
		return nil
	})
}

func (s *BadgerStorage) Delete(key string) error {
	return s.withDB(func(db *badger.DB) error {
		err := db.Update(func(txn *badger.Txn) error {
			if err := txn.Delete([]byte(key)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
		return nil
	})
}

// Close releases the database if this storage opened it.
func (s *BadgerStorage) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	if s.owned {
		return s.db.Close()
	}
	return nil
}

// RunGC rewrites value log files until BadgerDB reports nothing left to
// reclaim. A token store churns one key, so the log grows with every
// login and logout.
func (s *BadgerStorage) RunGC(discardRatio float64) error {
	return s.withDB(func(db *badger.DB) error {
		for {
			err := db.RunValueLogGC(discardRatio)
			if errors.Is(err, badger.ErrNoRewrite) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("run value log gc: %w", err)
			}
		}
	})
}

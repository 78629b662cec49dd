// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package session

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
)

func createTestBadgerDB(t *testing.T) *badger.DB {
	t.Helper()

	opts := badger.DefaultOptions(t.TempDir())
	opts.Logger = nil // Disable logging for tests
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("Failed to open BadgerDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStorageImplementations(t *testing.T) {
	t.Parallel()

	impls := map[string]func(t *testing.T) Storage{
		"memory": func(*testing.T) Storage { return NewMemoryStorage() },
		"badger": func(t *testing.T) Storage { return NewBadgerStorage(createTestBadgerDB(t)) },
		"badger shared": func(t *testing.T) Storage {
			s, err := OpenBadgerShared(t.TempDir(), time.Second)
			if err != nil {
				t.Fatalf("OpenBadgerShared() error = %v", err)
			}
			t.Cleanup(func() { s.Close() })
			return s
		},
	}

	for name, newStorage := range impls {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			s := newStorage(t)

			if _, ok, err := s.Get("token"); err != nil || ok {
				t.Fatalf("Get on empty storage = ok %v, err %v", ok, err)
			}
			if err := s.Set("token", "abc"); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			v, ok, err := s.Get("token")
			if err != nil || !ok || v != "abc" {
				t.Fatalf("Get() = %q, %v, %v; want abc, true, nil", v, ok, err)
			}
			if err := s.Delete("token"); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if _, ok, _ := s.Get("token"); ok {
				t.Error("key still present after Delete")
			}
			if err := s.Delete("token"); err != nil {
				t.Errorf("Delete of missing key error = %v", err)
			}
		})
	}
}

func TestOpenBadgerSurvivesReopen(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	first, err := OpenBadger(dir)
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	if err := first.Set(TokenKey, "persisted"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	second, err := OpenBadger(dir)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer second.Close()

	v, ok, err := second.Get(TokenKey)
	if err != nil || !ok || v != "persisted" {
		t.Errorf("Get() after reopen = %q, %v, %v", v, ok, err)
	}
}

func TestBadgerStorageClosed(t *testing.T) {
	t.Parallel()
	s, err := OpenBadger(t.TempDir())
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := s.Set(TokenKey, "x"); !errors.Is(err, ErrStorageClosed) {
		t.Errorf("Set() after Close error = %v, want ErrStorageClosed", err)
	}
	if _, _, err := s.Get(TokenKey); !errors.Is(err, ErrStorageClosed) {
		t.Errorf("Get() after Close error = %v, want ErrStorageClosed", err)
	}
}

func TestBadgerStorageRunGC(t *testing.T) {
	t.Parallel()
	s := NewBadgerStorage(createTestBadgerDB(t))

	for i := 0; i < 50; i++ {
		if err := s.Set(TokenKey, "token"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
	}
	if err := s.RunGC(0.5); err != nil {
		t.Errorf("RunGC() error = %v, nothing to rewrite should be nil", err)
	}

	_ = s.Close()
	if err := s.RunGC(0.5); !errors.Is(err, ErrStorageClosed) {
		t.Errorf("RunGC() after Close error = %v, want ErrStorageClosed", err)
	}
}

func TestOpenBadgerLockedDirectory(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	holder, err := OpenBadger(dir)
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	defer holder.Close()

	_, err = OpenBadger(dir)
	if !IsLocked(err) {
		t.Fatalf("second OpenBadger() error = %v, want ErrStorageLocked", err)
	}

	shared, err := OpenBadgerShared(dir, 50*time.Millisecond)
	if !IsLocked(err) || shared != nil {
		t.Errorf("OpenBadgerShared() on held dir = %v, %v; want ErrStorageLocked", shared, err)
	}
}

func TestSharedBadgerWaitsForLock(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	shared, err := OpenBadgerShared(dir, 5*time.Second)
	if err != nil {
		t.Fatalf("OpenBadgerShared() error = %v", err)
	}
	defer shared.Close()

	holder, err := OpenBadger(dir)
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	if err := holder.Set(TokenKey, "from-holder"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.AfterFunc(100*time.Millisecond, func() { holder.Close() })

	v, ok, err := shared.Get(TokenKey)
	if err != nil || !ok || v != "from-holder" {
		t.Errorf("Get() after holder released = %q, %v, %v", v, ok, err)
	}
}

func TestSharedBadgerAcrossInstances(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	// One instance stands in for "serve", the other for a CLI command.
	serve, err := OpenBadgerShared(dir, 5*time.Second)
	if err != nil {
		t.Fatalf("OpenBadgerShared() error = %v", err)
	}
	defer serve.Close()
	cmd, err := OpenBadgerShared(dir, 5*time.Second)
	if err != nil {
		t.Fatalf("second OpenBadgerShared() error = %v", err)
	}
	defer cmd.Close()

	if err := cmd.Set(TokenKey, "abc"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if v, ok, err := serve.Get(TokenKey); err != nil || !ok || v != "abc" {
		t.Fatalf("Get() from other instance = %q, %v, %v", v, ok, err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 10; i++ {
		for _, s := range []*BadgerStorage{serve, cmd} {
			wg.Add(1)
			go func(s *BadgerStorage, i int) {
				defer wg.Done()
				errs <- s.Set(TokenKey, fmt.Sprintf("tok-%d", i))
			}(s, i)
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Errorf("concurrent Set() error = %v", err)
		}
	}
	if err := serve.RunGC(0.5); err != nil {
		t.Errorf("RunGC() in shared mode error = %v", err)
	}
}

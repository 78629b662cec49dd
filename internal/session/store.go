// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package session

import (
	"fmt"
	"sync"
)

// TokenKey is the storage key holding the raw token string.
const TokenKey = "token"

// Store is the single source of truth for the session token.
// It is safe for concurrent use.
type Store struct {
	storage Storage

	// writeMu orders changes and their notifications.
	writeMu sync.Mutex

	mu    sync.RWMutex
	token string

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(string)
}

// NewStore seeds the in-memory token from storage. A missing key yields the
// empty token; a read failure is returned alongside a usable empty store.
func NewStore(storage Storage) (*Store, error) {
	s := &Store{
		storage: storage,
		subs:    make(map[int]func(string)),
	}
	tok, _, err := storage.Get(TokenKey)
	if err != nil {
		return s, fmt.Errorf("load session token: %w", err)
	}
	s.token = tok
	return s, nil
}

// Token returns the current token, empty when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// HasToken reports whether a non-empty token is held.
func (s *Store) HasToken() bool {
	return s.Token() != ""
}

// SetToken persists tok and then makes it current. On a storage error the
// previous token stays current.
func (s *Store) SetToken(tok string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if err := s.storage.Set(TokenKey, tok); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("persist session token: %w", err)
	}
	s.token = tok
	s.mu.Unlock()

	s.publish(tok)
	return nil
}

// CleanToken removes the persisted token and empties the current one. The
// in-memory token is emptied even if the storage delete fails.
func (s *Store) CleanToken() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	err := s.storage.Delete(TokenKey)
	s.token = ""
	s.mu.Unlock()

	s.publish("")
	if err != nil {
		return fmt.Errorf("delete session token: %w", err)
	}
	return nil
}

// Subscribe registers fn to be called with every new token value, from the
// goroutine that changed it. Calls arrive in the order the changes were
// made, so the last value a subscriber saw is the current token. fn may read
// the Store but must not change it. The returned func removes the
// subscription.
func (s *Store) Subscribe(fn func(token string)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Store) publish(tok string) {
	s.subMu.Lock()
	fns := make([]func(string), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(tok)
	}
}

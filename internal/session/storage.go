// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

// Package session holds the authentication token of the current user.
//
// The token lives in memory for fast reads and is mirrored to a durable
// Storage under the key "token" so it survives restarts. Anyone needing the
// token reads it from the Store, never from Storage directly.
package session

import (
	"errors"
	"sync"
)

// ErrStorageClosed is returned by storage used after Close.
var ErrStorageClosed = errors.New("session storage closed")

// Storage is a durable string key-value store.
type Storage interface {
	// Get returns the value and whether the key exists.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
}

// MemoryStorage is a Storage that lives only as long as the process.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStorage) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

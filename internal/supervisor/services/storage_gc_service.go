// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package services

import (
	"context"
	"time"

	"github.com/tomtom215/gookins-admin/internal/logging"
)

// DefaultGCDiscardRatio is the share of a value log file that must be stale
// before BadgerDB rewrites it.
const DefaultGCDiscardRatio = 0.5

// GarbageCollector is satisfied by *session.BadgerStorage.
type GarbageCollector interface {
	RunGC(discardRatio float64) error
}

// StorageGCService reclaims token store disk space on a fixed interval.
// A failed collection is logged and retried on the next tick; only a
// canceled context stops the loop.
type StorageGCService struct {
	gc       GarbageCollector
	interval time.Duration
	ratio    float64
	name     string
	onRun    func(error)
}

// NewStorageGCService collects gc every interval, 10 minutes if interval is
// not positive.
func NewStorageGCService(gc GarbageCollector, interval time.Duration) *StorageGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &StorageGCService{
		gc:       gc,
		interval: interval,
		ratio:    DefaultGCDiscardRatio,
		name:     "storage-gc",
	}
}

// Serve implements suture.Service.
func (s *StorageGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			err := s.gc.RunGC(s.ratio)
			if err != nil {
				logging.WithComponent(s.name).Warn().Err(err).Msg("Value log collection failed")
			}
			if s.onRun != nil {
				s.onRun(err)
			}
		}
	}
}

// String names the service in supervisor events.
func (s *StorageGCService) String() string {
	return s.name
}

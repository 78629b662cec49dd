// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package supervisor

import (
	"context"
	"errors"
	"sync/atomic"
)

var errFakeCrash = errors.New("fake service crashed")

// fakeService counts its runs. The first crashes runs fail at once; later
// runs block until the supervisor cancels them.
type fakeService struct {
	name    string
	crashes int32
	runs    atomic.Int32
	exits   atomic.Int32
}

func newFakeService(name string, crashes int32) *fakeService {
	return &fakeService{name: name, crashes: crashes}
}

func (f *fakeService) Serve(ctx context.Context) error {
	n := f.runs.Add(1)
	defer f.exits.Add(1)
	if n <= f.crashes {
		return errFakeCrash
	}
	<-ctx.Done()
	return ctx.Err()
}

func (f *fakeService) String() string { return f.name }

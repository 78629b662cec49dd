// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

// Package services adapts the console HTTP server and the token store's
// value log collection to suture's Serve(ctx) error contract.
package services

// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

/*
Package supervisor runs the long-lived parts of "gookins-admin serve" under
a suture v4 tree.

	RootSupervisor ("gookins-admin")
	├── StorageSupervisor ("storage-layer")
	│   └── StorageGCService (badger token store only)
	└── ConsoleSupervisor ("console-layer")
	    └── HTTPServerService ("console")

A crash in value log collection restarts only that service; the console
keeps answering. Supervisor events are logged through sutureslog, so the
tree needs a *slog.Logger (see logging.NewSlogLogger).

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Console.ShutdownTimeout,
	})
	tree.AddConsoleService(services.NewHTTPServerService(srv, cfg.Console.ShutdownTimeout))
	err = tree.Serve(ctx)
*/
package supervisor

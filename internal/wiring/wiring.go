// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/jobsync/internal/adapters/config"
	_ "go.trai.ch/jobsync/internal/adapters/jobapi"
	_ "go.trai.ch/jobsync/internal/adapters/logger"
	_ "go.trai.ch/jobsync/internal/adapters/navigation"
	_ "go.trai.ch/jobsync/internal/adapters/notify"
	_ "go.trai.ch/jobsync/internal/adapters/storage"
	_ "go.trai.ch/jobsync/internal/adapters/telemetry"
	_ "go.trai.ch/jobsync/internal/adapters/watcher"
	// Register app and state nodes.
	_ "go.trai.ch/jobsync/internal/app"
	_ "go.trai.ch/jobsync/internal/state"
)

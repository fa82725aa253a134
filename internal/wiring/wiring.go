// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/chroma/internal/adapters/config"
	_ "go.trai.ch/chroma/internal/adapters/logger"
	_ "go.trai.ch/chroma/internal/adapters/memo"
	_ "go.trai.ch/chroma/internal/adapters/records"
	_ "go.trai.ch/chroma/internal/adapters/telemetry"
	_ "go.trai.ch/chroma/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/chroma/internal/app"
	_ "go.trai.ch/chroma/internal/engine/computer"
)

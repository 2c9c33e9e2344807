// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/weld/internal/adapters/codegen"
	_ "go.trai.ch/weld/internal/adapters/config"
	_ "go.trai.ch/weld/internal/adapters/fs"
	_ "go.trai.ch/weld/internal/adapters/logger"
	_ "go.trai.ch/weld/internal/adapters/state"
	_ "go.trai.ch/weld/internal/adapters/telemetry"
	_ "go.trai.ch/weld/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/weld/internal/adapters/yaegi"
	// Register app and engine nodes.
	_ "go.trai.ch/weld/internal/app"
	_ "go.trai.ch/weld/internal/engine/session"
	_ "go.trai.ch/weld/internal/engine/translator"
)

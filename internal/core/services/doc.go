// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The document list controller lives here; every presentation
// layer (TUI, CLI, MCP) drives a listing through it.
//
// Services are pure Go with no CGO or external dependencies.
package services

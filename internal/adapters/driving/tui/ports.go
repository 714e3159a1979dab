// Package tui provides an interactive terminal user interface for docdeck.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"context"

	"github.com/custodia-labs/docdeck-cli/internal/core/ports/driving"
)

// WatchFunc blocks until ctx is done, calling onChange whenever the
// configuration changes on disk.
type WatchFunc func(ctx context.Context, onChange func()) error

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Explorer opens document listing sessions.
	Explorer driving.ExplorerService

	// Identity resolves the owner whose documents are listed.
	Identity driving.IdentityService

	// Localizer renders user-facing text.
	Localizer driving.Localizer

	// Language reads and changes the interface language. Optional; without
	// it the language view is disabled and English is used.
	Language driving.LanguageService

	// Watch reports config file changes. Optional.
	Watch WatchFunc
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Explorer == nil {
		return ErrMissingExplorerService
	}
	if p.Identity == nil {
		return ErrMissingIdentityService
	}
	if p.Localizer == nil {
		return ErrMissingLocalizer
	}
	return nil
}

package mcp

import (
	"github.com/custodia-labs/docdeck-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Explorer opens listing sessions.
	Explorer driving.ExplorerService

	// Identity resolves the owner the tools act for.
	Identity driving.IdentityService

	// Language changes the owner's language. Optional.
	Language driving.LanguageService

	// Files serves document contents. Optional.
	Files driving.FileService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Explorer == nil {
		return ErrMissingExplorerService
	}
	if p.Identity == nil {
		return ErrMissingIdentityService
	}
	return nil
}

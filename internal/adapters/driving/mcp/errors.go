// Package mcp provides an MCP (Model Context Protocol) server adapter for docdeck.
// It lets AI assistants list, delete and reload the owner's documents.
package mcp

import "errors"

var (
	// ErrMissingExplorerService is returned when the explorer service is not provided.
	ErrMissingExplorerService = errors.New("mcp: explorer service is required")

	// ErrMissingIdentityService is returned when the identity service is not provided.
	ErrMissingIdentityService = errors.New("mcp: identity service is required")
)

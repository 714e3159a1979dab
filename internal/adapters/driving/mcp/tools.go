package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
	"github.com/custodia-labs/docdeck-cli/internal/core/ports/driving"
)

// ListInput is the input schema for the list_documents tool.
type ListInput struct {
	Filter string   `json:"filter,omitempty" jsonschema:"case-insensitive substring of the filename"`
	Sort   []string `json:"sort,omitempty" jsonschema:"column keys to activate in order: type, name or size; repeating a key flips its direction"`
}

// ListOutput is the output schema for the list_documents tool.
type ListOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
	Total     int              `json:"total"`
}

// DocumentOutput represents a single document.
type DocumentOutput struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	FileType string `json:"file_type"`
	FileSize int64  `json:"file_size"`
	Size     string `json:"size"`
	Language string `json:"language,omitempty"`
}

// DeleteInput is the input schema for the delete_documents tool.
type DeleteInput struct {
	Filenames []string `json:"filenames" jsonschema:"exact filenames of the documents to delete"`
}

// DeleteOutput is the output schema for the delete_documents tool.
type DeleteOutput struct {
	Deleted []string `json:"deleted"`
	Count   int      `json:"count"`
}

// ReloadInput is the input schema for the reload_documents tool.
type ReloadInput struct{}

// ReloadOutput is the output schema for the reload_documents tool.
type ReloadOutput struct {
	Requested bool `json:"requested"`
}

// LanguageInput is the input schema for the set_language tool.
type LanguageInput struct {
	Language string `json:"language" jsonschema:"language code: en or de"`
}

// LanguageOutput is the output schema for the set_language tool.
type LanguageOutput struct {
	Language string `json:"language"`
	Name     string `json:"name"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List the owner's uploaded documents, optionally filtered and sorted",
	}, s.handleList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_documents",
		Description: "Delete documents by filename. Nothing is deleted if any filename is unknown",
	}, s.handleDelete)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "reload_documents",
		Description: "Ask the document service to re-process the owner's files",
	}, s.handleReload)

	if s.ports.Language != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "set_language",
			Description: "Change the owner's interface language",
		}, s.handleSetLanguage)
	}
}

// openList resolves the owner and loads a fresh listing.
func (s *Server) openList(ctx context.Context) (driving.DocumentList, string, error) {
	owner, err := s.owner(ctx)
	if err != nil {
		return nil, "", err
	}
	list := s.ports.Explorer.NewList()
	if _, err := list.Load(ctx, owner); err != nil {
		list.Close()
		return nil, "", err
	}
	return list, owner, nil
}

func (s *Server) handleList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	list, _, err := s.openList(ctx)
	if err != nil {
		return nil, ListOutput{}, err
	}
	defer list.Close()

	list.SetFilter(input.Filter)
	for _, key := range input.Sort {
		if err := list.SortBy(key); err != nil {
			return nil, ListOutput{}, err
		}
	}

	state := list.State()
	output := ListOutput{
		Documents: make([]DocumentOutput, len(state.Items)),
		Count:     len(state.Items),
		Total:     state.Total,
	}
	for i, doc := range state.Items {
		output.Documents[i] = toOutput(doc)
	}
	return nil, output, nil
}

func (s *Server) handleDelete(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeleteInput,
) (*mcp.CallToolResult, DeleteOutput, error) {
	if len(input.Filenames) == 0 {
		return nil, DeleteOutput{}, fmt.Errorf("%w: no filenames given", domain.ErrInvalidInput)
	}

	list, _, err := s.openList(ctx)
	if err != nil {
		return nil, DeleteOutput{}, err
	}
	defer list.Close()

	list.Select(input.Filenames...)
	state := list.State()
	for _, name := range input.Filenames {
		if !state.IsSelected(name) {
			return nil, DeleteOutput{}, fmt.Errorf("%s: %w", name, domain.ErrNotFound)
		}
	}

	deleted := make([]string, 0, len(state.Selected))
	for _, doc := range state.Items {
		if state.IsSelected(doc.Key()) {
			deleted = append(deleted, doc.Filename)
		}
	}

	if err := list.DeleteSelected(ctx); err != nil {
		return nil, DeleteOutput{}, err
	}
	return nil, DeleteOutput{Deleted: deleted, Count: len(deleted)}, nil
}

func (s *Server) handleReload(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ReloadInput,
) (*mcp.CallToolResult, ReloadOutput, error) {
	owner, err := s.owner(ctx)
	if err != nil {
		return nil, ReloadOutput{}, err
	}
	// Reload does not need the listing.
	list := s.ports.Explorer.NewList()
	defer list.Close()

	if err := list.Reload(ctx, owner); err != nil {
		return nil, ReloadOutput{}, err
	}
	return nil, ReloadOutput{Requested: true}, nil
}

func (s *Server) handleSetLanguage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LanguageInput,
) (*mcp.CallToolResult, LanguageOutput, error) {
	lang, err := domain.ParseLanguage(input.Language)
	if err != nil {
		return nil, LanguageOutput{}, err
	}
	owner, err := s.owner(ctx)
	if err != nil {
		return nil, LanguageOutput{}, err
	}
	if err := s.ports.Language.Set(ctx, owner, lang); err != nil {
		return nil, LanguageOutput{}, err
	}
	return nil, LanguageOutput{Language: lang.String(), Name: lang.DisplayName()}, nil
}

func toOutput(doc domain.Document) DocumentOutput {
	return DocumentOutput{
		ID:       doc.ID,
		Filename: doc.Filename,
		FileType: doc.FileType(),
		FileSize: doc.FileSize,
		Size:     domain.FormatFileSize(doc.FileSize),
		Language: doc.Language.String(),
	}
}

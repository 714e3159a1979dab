package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for docdeck resources.
	uriScheme = "docdeck://"

	// maxResourceSize bounds document contents served as resources.
	maxResourceSize = 10 << 20
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "The owner's uploaded documents",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	if s.ports.Files != nil {
		s.server.AddResourceTemplate(&mcp.ResourceTemplate{
			URITemplate: uriScheme + "documents/{filename}",
			Name:        "document-content",
			Description: "Content of a specific document",
		}, s.handleDocumentContentResource)
	}
}

// handleDocumentsResource returns the owner's documents in upload order.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	list, _, err := s.openList(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer list.Close()

	state := list.State()
	infos := make([]DocumentOutput, len(state.Items))
	for i, doc := range state.Items {
		infos[i] = toOutput(doc)
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling documents: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDocumentContentResource returns the content of one document.
// Text is returned as is; anything else as a blob.
func (s *Server) handleDocumentContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	filename := extractFilename(req.Params.URI)
	if filename == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	rc, _, err := s.ports.Files.Download(ctx, owner, filename)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", filename, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxResourceSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	if len(data) > maxResourceSize {
		return nil, fmt.Errorf("%s exceeds %d bytes", filename, maxResourceSize)
	}

	contents := &mcp.ResourceContents{
		URI:      req.Params.URI,
		MIMEType: mimeType(filename),
	}
	if utf8.Valid(data) {
		contents.Text = string(data)
	} else {
		contents.Blob = data
	}
	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{contents}}, nil
}

// extractFilename extracts the filename from a URI like docdeck://documents/{filename}.
func extractFilename(uri string) string {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	name, err := url.PathUnescape(strings.TrimPrefix(uri, prefix))
	if err != nil || strings.Contains(name, "/") {
		return ""
	}
	return name
}

func mimeType(filename string) string {
	if t := mime.TypeByExtension(filepath.Ext(filename)); t != "" {
		return t
	}
	return "application/octet-stream"
}

package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
)

func TestExtractFilename(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid document URI",
			uri:      "docdeck://documents/report.pdf",
			expected: "report.pdf",
		},
		{
			name:     "escaped name",
			uri:      "docdeck://documents/my%20report.pdf",
			expected: "my report.pdf",
		},
		{
			name:     "invalid prefix",
			uri:      "file://documents/report.pdf",
			expected: "",
		},
		{
			name:     "nested path",
			uri:      "docdeck://documents/a%2Fb.pdf",
			expected: "",
		},
		{
			name:     "bad escape",
			uri:      "docdeck://documents/%zz",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractFilename(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleDocumentsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns documents as JSON", func(t *testing.T) {
		ports, _ := newTestPorts(sampleDocs()...)
		server, err := NewServer(ports)
		require.NoError(t, err)

		result, err := server.handleDocumentsResource(ctx, makeReadResourceRequest("docdeck://documents"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var docs []DocumentOutput
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &docs))
		assert.Equal(t, []string{"report.pdf", "notes.txt", "Budget.xlsx"}, filenames(docs))
	})

	t.Run("missing owner", func(t *testing.T) {
		ports, _ := newTestPorts(sampleDocs()...)
		ports.Identity = &mockIdentityService{err: domain.ErrOwnerRequired}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, err = server.handleDocumentsResource(ctx, makeReadResourceRequest("docdeck://documents"))
		assert.ErrorIs(t, err, domain.ErrOwnerRequired)
	})
}

func TestServer_handleDocumentContentResource(t *testing.T) {
	ctx := context.Background()

	t.Run("text content", func(t *testing.T) {
		ports, store := newTestPorts()
		require.NoError(t, store.Put(ctx, domain.Document{OwnerID: testOwner, Filename: "notes.txt"}, strings.NewReader("hello")))
		server, err := NewServer(ports)
		require.NoError(t, err)

		result, err := server.handleDocumentContentResource(ctx, makeReadResourceRequest("docdeck://documents/notes.txt"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "hello", result.Contents[0].Text)
		assert.Nil(t, result.Contents[0].Blob)
	})

	t.Run("binary content", func(t *testing.T) {
		ports, store := newTestPorts()
		data := string([]byte{0xff, 0xfe, 0x00, 0x01})
		require.NoError(t, store.Put(ctx, domain.Document{OwnerID: testOwner, Filename: "blob.bin"}, strings.NewReader(data)))
		server, err := NewServer(ports)
		require.NoError(t, err)

		result, err := server.handleDocumentContentResource(ctx, makeReadResourceRequest("docdeck://documents/blob.bin"))
		require.NoError(t, err)
		assert.Empty(t, result.Contents[0].Text)
		assert.Equal(t, []byte(data), result.Contents[0].Blob)
		assert.NotEmpty(t, result.Contents[0].MIMEType)
	})

	t.Run("unknown document", func(t *testing.T) {
		ports, _ := newTestPorts()
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, err = server.handleDocumentContentResource(ctx, makeReadResourceRequest("docdeck://documents/missing.pdf"))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("invalid URI", func(t *testing.T) {
		ports, _ := newTestPorts()
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, err = server.handleDocumentContentResource(ctx, makeReadResourceRequest("docdeck://invalid/uri"))
		require.Error(t, err)
	})
}

func TestMimeType(t *testing.T) {
	assert.Equal(t, "application/pdf", mimeType("report.pdf"))
	assert.Equal(t, "application/octet-stream", mimeType("no-extension"))
}

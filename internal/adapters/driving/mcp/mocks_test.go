package mcp

import (
	"context"

	"github.com/custodia-labs/docdeck-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
	"github.com/custodia-labs/docdeck-cli/internal/core/services"
)

const testOwner = "auth0|alice"

// mockIdentityService is a mock implementation of driving.IdentityService.
type mockIdentityService struct {
	owner string
	err   error
}

func (m *mockIdentityService) Owner(_ context.Context) (string, error) {
	return m.owner, m.err
}

func (m *mockIdentityService) Login(_ context.Context, _ string) (*domain.Identity, error) {
	return nil, domain.ErrNotImplemented
}

// failingStore is a document store whose every call fails.
type failingStore struct {
	err error
}

func (f *failingStore) FetchDocuments(_ context.Context, _ string) ([]domain.Document, error) {
	return nil, f.err
}

func (f *failingStore) DeleteDocuments(_ context.Context, _ []domain.Document) error {
	return f.err
}

func (f *failingStore) Reload(_ context.Context, _ string) error {
	return f.err
}

func (f *failingStore) SetLanguage(_ context.Context, _ domain.LanguageUpdate) error {
	return f.err
}

// unlistableStore fails to list documents but accepts everything else.
type unlistableStore struct {
	*memory.DocumentStore
	err error
}

func (u *unlistableStore) FetchDocuments(_ context.Context, _ string) ([]domain.Document, error) {
	return nil, u.err
}

// newTestPorts wires real services over an in-memory store holding the
// given documents for testOwner.
func newTestPorts(docs ...domain.Document) (*Ports, *memory.DocumentStore) {
	store := memory.NewDocumentStore()
	for _, d := range docs {
		d.OwnerID = testOwner
		store.Add(d)
	}
	config := memory.NewConfigStore()
	return &Ports{
		Explorer: services.NewExplorerService(store, false),
		Identity: &mockIdentityService{owner: testOwner},
		Language: services.NewLanguageService(store, config),
		Files:    services.NewFileService(store),
	}, store
}

func sampleDocs() []domain.Document {
	return []domain.Document{
		{ID: "1", Filename: "report.pdf", FileSize: 2048},
		{ID: "2", Filename: "notes.txt", FileSize: 10},
		{ID: "3", Filename: "Budget.xlsx", FileSize: 4096},
	}
}

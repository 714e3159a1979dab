package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
)

// mockDocumentStore is a configurable DocumentStore for controller tests.
type mockDocumentStore struct {
	FetchDocumentsFunc  func(ctx context.Context, ownerID string) ([]domain.Document, error)
	DeleteDocumentsFunc func(ctx context.Context, docs []domain.Document) error
	ReloadFunc          func(ctx context.Context, ownerID string) error
	SetLanguageFunc     func(ctx context.Context, update domain.LanguageUpdate) error

	mu          sync.Mutex
	deleteCalls [][]domain.Document
	reloadCalls []string
}

func (m *mockDocumentStore) FetchDocuments(ctx context.Context, ownerID string) ([]domain.Document, error) {
	if m.FetchDocumentsFunc != nil {
		return m.FetchDocumentsFunc(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockDocumentStore) DeleteDocuments(ctx context.Context, docs []domain.Document) error {
	m.mu.Lock()
	m.deleteCalls = append(m.deleteCalls, docs)
	m.mu.Unlock()
	if m.DeleteDocumentsFunc != nil {
		return m.DeleteDocumentsFunc(ctx, docs)
	}
	return nil
}

func (m *mockDocumentStore) Reload(ctx context.Context, ownerID string) error {
	m.mu.Lock()
	m.reloadCalls = append(m.reloadCalls, ownerID)
	m.mu.Unlock()
	if m.ReloadFunc != nil {
		return m.ReloadFunc(ctx, ownerID)
	}
	return nil
}

func (m *mockDocumentStore) SetLanguage(ctx context.Context, update domain.LanguageUpdate) error {
	if m.SetLanguageFunc != nil {
		return m.SetLanguageFunc(ctx, update)
	}
	return nil
}

func (m *mockDocumentStore) deletes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.deleteCalls)
}

func (m *mockDocumentStore) reloads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.reloadCalls)
}

// fixedStore returns a mock that always fetches docs.
func fixedStore(docs ...domain.Document) *mockDocumentStore {
	return &mockDocumentStore{
		FetchDocumentsFunc: func(_ context.Context, _ string) ([]domain.Document, error) {
			return docs, nil
		},
	}
}

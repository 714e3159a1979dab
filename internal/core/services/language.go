package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
	"github.com/custodia-labs/docdeck-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdeck-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docdeck-cli/internal/logger"
)

// Ensure LanguageService implements the interface.
var _ driving.LanguageService = (*LanguageService)(nil)

// LanguageService reads and changes the owner's interface language.
type LanguageService struct {
	store       driven.DocumentStore
	configStore driven.ConfigStore
}

// NewLanguageService creates a new language service.
// configStore may be nil, in which case nothing is remembered locally.
func NewLanguageService(store driven.DocumentStore, configStore driven.ConfigStore) *LanguageService {
	return &LanguageService{store: store, configStore: configStore}
}

// Get returns the language stored for the owner. Stores that cannot report
// a language, or have none yet, fall back to the configured language.
func (s *LanguageService) Get(ctx context.Context, ownerID string) (domain.Language, error) {
	if ls, ok := s.store.(driven.LanguageStore); ok && ownerID != "" {
		lang, err := ls.GetLanguage(ctx, ownerID)
		switch {
		case err == nil && lang.IsValid():
			return lang, nil
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			logger.Warn("reading stored language: %v", err)
		}
	}
	return s.local(), nil
}

// Set stores the language for the owner and remembers it locally.
func (s *LanguageService) Set(ctx context.Context, ownerID string, lang domain.Language) error {
	if !lang.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, lang)
	}
	if ownerID == "" {
		return domain.ErrOwnerRequired
	}
	if s.store == nil {
		return domain.ErrNotImplemented
	}

	logger.Debug("setting language %s for owner %q", lang, ownerID)
	if err := s.store.SetLanguage(ctx, domain.LanguageUpdate{Language: lang, OwnerID: ownerID}); err != nil {
		return fmt.Errorf("set language: %w", err)
	}

	if s.configStore != nil {
		if err := s.configStore.Set(keyUILanguage, lang.String()); err != nil {
			return fmt.Errorf("save language: %w", err)
		}
	}
	return nil
}

// Supported returns the selectable languages.
func (s *LanguageService) Supported() []domain.Language {
	return domain.SupportedLanguages()
}

func (s *LanguageService) local() domain.Language {
	if s.configStore == nil {
		return domain.DefaultLanguage
	}
	lang, err := domain.ParseLanguage(s.configStore.GetString(keyUILanguage))
	if err != nil {
		return domain.DefaultLanguage
	}
	return lang
}

package driving

import (
	"context"

	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
)

// LanguageService reads and changes the owner's interface language.
type LanguageService interface {
	// Get returns the stored language, falling back to configuration.
	Get(ctx context.Context, ownerID string) (domain.Language, error)

	// Set stores the language remotely and remembers it locally.
	Set(ctx context.Context, ownerID string, lang domain.Language) error

	// Supported returns the selectable languages.
	Supported() []domain.Language
}

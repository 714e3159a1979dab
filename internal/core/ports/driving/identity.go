package driving

import (
	"context"

	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
)

// IdentityService resolves the owner id that scopes every listing.
type IdentityService interface {
	// Owner returns the configured owner id or domain.ErrOwnerRequired.
	Owner(ctx context.Context) (string, error)

	// Login verifies an ID token and remembers its subject as the owner.
	Login(ctx context.Context, rawIDToken string) (*domain.Identity, error)
}

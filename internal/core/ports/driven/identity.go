package driven

import (
	"context"

	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
)

// IdentityVerifier validates identity tokens issued by the login provider.
type IdentityVerifier interface {
	// Verify checks the signature, issuer, audience and expiry of a raw
	// ID token and returns the identity it asserts.
	Verify(ctx context.Context, rawIDToken string) (*domain.Identity, error)
}

// Package identity verifies OpenID Connect ID tokens issued by the
// document service's identity provider.
package identity

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
	"github.com/custodia-labs/docdeck-cli/internal/core/ports/driven"
)

// Ensure Verifier implements the interface.
var _ driven.IdentityVerifier = (*Verifier)(nil)

// Config configures a Verifier.
type Config struct {
	// Issuer is the OIDC issuer URL, e.g. https://tenant.eu.auth0.com/.
	Issuer string

	// ClientID is the expected audience. Empty skips the audience check.
	ClientID string

	// KeySet verifies signatures without discovery. When nil the issuer's
	// discovery document and JWKS endpoint are used.
	KeySet oidc.KeySet
}

// Verifier checks ID tokens and extracts the owner identity.
type Verifier struct {
	cfg Config

	mu       sync.Mutex
	verifier *oidc.IDTokenVerifier
}

// NewVerifier creates a verifier. Without a KeySet, OIDC discovery runs on
// the first Verify call.
func NewVerifier(cfg Config) (*Verifier, error) {
	if cfg.Issuer == "" {
		return nil, fmt.Errorf("%w: auth.issuer is not configured", domain.ErrInvalidInput)
	}
	v := &Verifier{cfg: cfg}
	if cfg.KeySet != nil {
		v.verifier = oidc.NewVerifier(cfg.Issuer, cfg.KeySet, v.oidcConfig())
	}
	return v, nil
}

func (v *Verifier) oidcConfig() *oidc.Config {
	return &oidc.Config{
		ClientID:          v.cfg.ClientID,
		SkipClientIDCheck: v.cfg.ClientID == "",
	}
}

// idTokenVerifier returns the verifier, discovering the issuer if needed.
// A failed discovery is retried on the next call.
func (v *Verifier) idTokenVerifier(ctx context.Context) (*oidc.IDTokenVerifier, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.verifier != nil {
		return v.verifier, nil
	}
	provider, err := oidc.NewProvider(ctx, v.cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("discovering issuer %s: %w", v.cfg.Issuer, err)
	}
	v.verifier = provider.Verifier(v.oidcConfig())
	return v.verifier, nil
}

// Verify validates raw and returns its identity. The subject becomes the
// owner id.
func (v *Verifier) Verify(ctx context.Context, raw string) (*domain.Identity, error) {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "Bearer "))
	if raw == "" {
		return nil, fmt.Errorf("%w: empty token", domain.ErrInvalidInput)
	}

	verifier, err := v.idTokenVerifier(ctx)
	if err != nil {
		return nil, err
	}
	token, err := verifier.Verify(ctx, raw)
	if err != nil {
		return nil, err
	}

	var claims struct {
		Email string `json:"email"`
	}
	if err := token.Claims(&claims); err != nil {
		return nil, fmt.Errorf("decoding claims: %w", err)
	}

	return &domain.Identity{
		Subject:   token.Subject,
		Email:     claims.Email,
		Issuer:    token.Issuer,
		ExpiresAt: token.Expiry,
	}, nil
}

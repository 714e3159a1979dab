package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
	"github.com/custodia-labs/docdeck-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdeck-cli/internal/core/ports/driving"
)

// Ensure IdentityService implements the interface.
var _ driving.IdentityService = (*IdentityService)(nil)

// IdentityService resolves the owner id from flags, environment or config.
type IdentityService struct {
	configStore driven.ConfigStore
	verifier    driven.IdentityVerifier
	override    string
}

// NewIdentityService creates a new identity service. A non-empty override
// (from --owner) wins over everything else. verifier may be nil.
func NewIdentityService(configStore driven.ConfigStore, verifier driven.IdentityVerifier, override string) *IdentityService {
	return &IdentityService{
		configStore: configStore,
		verifier:    verifier,
		override:    override,
	}
}

// Owner returns the owner id.
func (s *IdentityService) Owner(_ context.Context) (string, error) {
	if s.override != "" {
		return s.override, nil
	}
	if s.configStore != nil {
		settings := NewSettingsService(s.configStore)
		if owner := settings.getString(keyAuthOwner, ""); owner != "" {
			return owner, nil
		}
	}
	return "", domain.ErrOwnerRequired
}

// Login verifies an ID token and stores its subject as the owner id.
func (s *IdentityService) Login(ctx context.Context, rawIDToken string) (*domain.Identity, error) {
	if s.verifier == nil {
		return nil, domain.ErrNotImplemented
	}
	id, err := s.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAuthInvalid, err)
	}
	if id.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", domain.ErrAuthInvalid)
	}
	if s.configStore != nil {
		if err := s.configStore.Set(keyAuthOwner, id.Subject); err != nil {
			return nil, fmt.Errorf("save owner: %w", err)
		}
	}
	return id, nil
}

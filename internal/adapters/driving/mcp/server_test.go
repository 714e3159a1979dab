package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
	"github.com/custodia-labs/docdeck-cli/internal/core/services"
)

func TestNewServer(t *testing.T) {
	t.Run("nil explorer service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{Identity: &mockIdentityService{}})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingExplorerService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports, _ := newTestPorts()
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	explorer := services.NewExplorerService(nil, false)

	t.Run("nil explorer service returns error", func(t *testing.T) {
		ports := &Ports{Identity: &mockIdentityService{}}
		assert.ErrorIs(t, ports.Validate(), ErrMissingExplorerService)
	})

	t.Run("nil identity service returns error", func(t *testing.T) {
		ports := &Ports{Explorer: explorer}
		assert.ErrorIs(t, ports.Validate(), ErrMissingIdentityService)
	})

	t.Run("required only is valid", func(t *testing.T) {
		ports := &Ports{Explorer: explorer, Identity: &mockIdentityService{}}
		assert.NoError(t, ports.Validate())
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports, _ := newTestPorts()
		assert.NoError(t, ports.Validate())
	})
}

func TestServer_owner(t *testing.T) {
	ports, _ := newTestPorts()
	ports.Identity = &mockIdentityService{err: domain.ErrOwnerRequired}
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, err = server.owner(context.Background())
	assert.ErrorIs(t, err, domain.ErrOwnerRequired)
}

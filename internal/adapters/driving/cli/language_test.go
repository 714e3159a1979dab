package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
)

func TestLanguageGet_Default(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "language", "get")

	require.NoError(t, err)
	assert.Contains(t, out, "en (English)")
}

func TestLanguageSet(t *testing.T) {
	env := setupTestServices(t)

	out, err := execute(t, "language", "set", "DE")

	require.NoError(t, err)
	assert.Contains(t, out, "Language set to Deutsch")
	lang, err := env.store.GetLanguage(context.Background(), testOwner)
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageGerman, lang)

	out, err = execute(t, "language", "get")
	require.NoError(t, err)
	assert.Contains(t, out, "de (Deutsch)")
}

func TestLanguageSet_Unsupported(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "language", "set", "fr")

	assert.ErrorIs(t, err, domain.ErrUnsupportedLanguage)
}

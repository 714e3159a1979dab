package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		input    string
		expected Language
		wantErr  bool
	}{
		{"en", LanguageEnglish, false},
		{"DE", LanguageGerman, false},
		{" de ", LanguageGerman, false},
		{"en-GB", LanguageEnglish, false},
		{"de_AT", LanguageGerman, false},
		{"fr", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lang, err := ParseLanguage(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedLanguage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, lang)
		})
	}
}

func TestLanguage_DisplayName(t *testing.T) {
	assert.Equal(t, "English", LanguageEnglish.DisplayName())
	assert.Equal(t, "Deutsch", LanguageGerman.DisplayName())
	assert.Equal(t, "Unknown", Language("xx").DisplayName())
}

func TestSupportedLanguages(t *testing.T) {
	langs := SupportedLanguages()
	require.Len(t, langs, 2)
	for _, l := range langs {
		assert.True(t, l.IsValid())
	}
	assert.True(t, DefaultLanguage.IsValid())
}

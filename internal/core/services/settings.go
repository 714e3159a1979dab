package services

import (
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
	"github.com/custodia-labs/docdeck-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdeck-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyBackend         = "store.backend"
	keyAPIBaseURL      = "api.base_url"
	keyAPIToken        = "api.token"
	keyAPIRate         = "api.rate_per_second"
	keySQLiteDataDir   = "sqlite.data_dir"
	keyPostgresDSN     = "postgres.dsn"
	keyS3Bucket        = "s3.bucket"
	keyS3Region        = "s3.region"
	keyS3Prefix        = "s3.prefix"
	keyS3Endpoint      = "s3.endpoint"
	keyS3AccessKey     = "s3.access_key_id"
	keyS3SecretKey     = "s3.secret_access_key"
	keyAzureConnString = "azure.connection_string"
	keyAzureAccountURL = "azure.account_url"
	keyAzureContainer  = "azure.container"
	keyAuthOwner       = "auth.owner_id"
	keyAuthIssuer      = "auth.issuer"
	keyAuthClientID    = "auth.client_id"
	keyUILanguage      = "ui.language"
	keyUIDemo          = "ui.demo"
)

// Environment variables that override the config file.
const (
	EnvBackend = "DOCDECK_BACKEND"
	EnvAPIURL  = "DOCDECK_API_URL"
	EnvToken   = "DOCDECK_TOKEN"
	EnvOwner   = "DOCDECK_OWNER"
)

var envOverrides = map[string]string{
	keyBackend:    EnvBackend,
	keyAPIBaseURL: EnvAPIURL,
	keyAPIToken:   EnvToken,
	keyAuthOwner:  EnvOwner,
}

var (
	intKeys  = []string{keyAPIRate}
	boolKeys = []string{keyUIDemo}
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   os.LookupEnv,
	}
}

// Get retrieves current application settings.
// Environment overrides take precedence over stored values.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	d := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Backend: s.getBackend(d.Backend),
		API: domain.APISettings{
			BaseURL:       s.getString(keyAPIBaseURL, d.API.BaseURL),
			Token:         s.getString(keyAPIToken, ""),
			RatePerSecond: s.getInt(keyAPIRate, d.API.RatePerSecond),
		},
		SQLite: domain.SQLiteSettings{
			DataDir: s.getString(keySQLiteDataDir, ""), // Empty means ~/.docdeck/data
		},
		Postgres: domain.PostgresSettings{
			DSN: s.getString(keyPostgresDSN, ""),
		},
		S3: domain.S3Settings{
			Bucket:   s.getString(keyS3Bucket, ""),
			Region:   s.getString(keyS3Region, ""),
			Prefix:   s.getString(keyS3Prefix, ""),
			Endpoint: s.getString(keyS3Endpoint, ""),

			AccessKeyID:     s.getString(keyS3AccessKey, ""),
			SecretAccessKey: s.getString(keyS3SecretKey, ""),
		},
		Azure: domain.AzureSettings{
			ConnectionString: s.getString(keyAzureConnString, ""),
			AccountURL:       s.getString(keyAzureAccountURL, ""),
			Container:        s.getString(keyAzureContainer, d.Azure.Container),
		},
		Auth: domain.AuthSettings{
			OwnerID:  s.getString(keyAuthOwner, ""),
			Issuer:   s.getString(keyAuthIssuer, ""),
			ClientID: s.getString(keyAuthClientID, ""),
		},
		UI: domain.UISettings{
			Language: s.getLanguage(d.UI.Language),
			Demo:     s.getBool(keyUIDemo, d.UI.Demo),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	values := []struct {
		key   string
		value any
	}{
		{keyBackend, settings.Backend.String()},
		{keyAPIBaseURL, settings.API.BaseURL},
		{keyAPIToken, settings.API.Token},
		{keyAPIRate, settings.API.RatePerSecond},
		{keySQLiteDataDir, settings.SQLite.DataDir},
		{keyPostgresDSN, settings.Postgres.DSN},
		{keyS3Bucket, settings.S3.Bucket},
		{keyS3Region, settings.S3.Region},
		{keyS3Prefix, settings.S3.Prefix},
		{keyS3Endpoint, settings.S3.Endpoint},
		{keyS3AccessKey, settings.S3.AccessKeyID},
		{keyS3SecretKey, settings.S3.SecretAccessKey},
		{keyAzureConnString, settings.Azure.ConnectionString},
		{keyAzureAccountURL, settings.Azure.AccountURL},
		{keyAzureContainer, settings.Azure.Container},
		{keyAuthOwner, settings.Auth.OwnerID},
		{keyAuthIssuer, settings.Auth.Issuer},
		{keyAuthClientID, settings.Auth.ClientID},
		{keyUILanguage, settings.UI.Language.String()},
		{keyUIDemo, settings.UI.Demo},
	}
	for _, v := range values {
		// Keys that were never set stay absent when empty.
		if str, ok := v.value.(string); ok && str == "" {
			if _, exists := s.configStore.Get(v.key); !exists {
				continue
			}
		}
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set updates a single key from its string form.
func (s *SettingsService) Set(key, value string) error {
	if !slices.Contains(s.Keys(), key) {
		return fmt.Errorf("%w: unknown settings key %q", domain.ErrInvalidInput, key)
	}

	var typed any = value
	switch {
	case slices.Contains(intKeys, key):
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		typed = n
	case slices.Contains(boolKeys, key):
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		typed = b
	case key == keyBackend:
		if !domain.Backend(value).IsValid() {
			return fmt.Errorf("%w: %s", domain.ErrUnsupportedBackend, value)
		}
	case key == keyUILanguage:
		lang, err := domain.ParseLanguage(value)
		if err != nil {
			return err
		}
		typed = lang.String()
	}

	return s.configStore.Set(key, typed)
}

// Keys returns every recognised settings key.
func (s *SettingsService) Keys() []string {
	return []string{
		keyBackend,
		keyAPIBaseURL, keyAPIToken, keyAPIRate,
		keySQLiteDataDir,
		keyPostgresDSN,
		keyS3Bucket, keyS3Region, keyS3Prefix, keyS3Endpoint, keyS3AccessKey, keyS3SecretKey,
		keyAzureConnString, keyAzureAccountURL, keyAzureContainer,
		keyAuthOwner, keyAuthIssuer, keyAuthClientID,
		keyUILanguage, keyUIDemo,
	}
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	if env, ok := envOverrides[key]; ok && s.lookupEnv != nil {
		if v, ok := s.lookupEnv(env); ok && v != "" {
			return v
		}
	}
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getBackend(defaultVal domain.Backend) domain.Backend {
	b := domain.Backend(s.getString(keyBackend, ""))
	if !b.IsValid() {
		return defaultVal
	}
	return b
}

func (s *SettingsService) getLanguage(defaultVal domain.Language) domain.Language {
	lang, err := domain.ParseLanguage(s.configStore.GetString(keyUILanguage))
	if err != nil {
		return defaultVal
	}
	return lang
}

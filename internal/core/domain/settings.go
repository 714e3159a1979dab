package domain

const unknownDescription = "Unknown"

// Backend names a document store implementation.
type Backend string

// Available store backends.
const (
	// BackendAPI talks to the remote document REST API.
	BackendAPI Backend = "api"

	// BackendSQLite keeps documents in a local SQLite database.
	BackendSQLite Backend = "sqlite"

	// BackendPostgres talks to the document database directly.
	BackendPostgres Backend = "postgres"

	// BackendS3 keeps documents in an S3 bucket.
	BackendS3 Backend = "s3"

	// BackendAzure keeps documents in an Azure blob container.
	BackendAzure Backend = "azure"

	// BackendMemory keeps documents in process. Used for demos and tests.
	BackendMemory Backend = "memory"
)

// AllBackends returns every backend in display order.
func AllBackends() []Backend {
	return []Backend{BackendAPI, BackendSQLite, BackendPostgres, BackendS3, BackendAzure, BackendMemory}
}

// IsValid returns true if the backend is recognised.
func (b Backend) IsValid() bool {
	switch b {
	case BackendAPI, BackendSQLite, BackendPostgres, BackendS3, BackendAzure, BackendMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b Backend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b Backend) Description() string {
	switch b {
	case BackendAPI:
		return "Remote document API"
	case BackendSQLite:
		return "Local SQLite database"
	case BackendPostgres:
		return "PostgreSQL document database"
	case BackendS3:
		return "Amazon S3 bucket"
	case BackendAzure:
		return "Azure Blob Storage container"
	case BackendMemory:
		return "In-memory (demo)"
	default:
		return unknownDescription
	}
}

// APISettings configures the REST backend.
type APISettings struct {
	BaseURL       string
	Token         string
	RatePerSecond int
}

// SQLiteSettings configures the local database backend.
type SQLiteSettings struct {
	DataDir string
}

// PostgresSettings configures the database backend.
type PostgresSettings struct {
	DSN string
}

// S3Settings configures the S3 backend.
// Endpoint is only needed for S3-compatible services. Without static keys
// the default AWS credential chain is used.
type S3Settings struct {
	Bucket   string
	Region   string
	Prefix   string
	Endpoint string

	AccessKeyID     string
	SecretAccessKey string
}

// AzureSettings configures the blob backend.
// ConnectionString takes precedence over AccountURL.
type AzureSettings struct {
	ConnectionString string
	AccountURL       string
	Container        string
}

// AuthSettings configures owner resolution.
type AuthSettings struct {
	OwnerID  string
	Issuer   string
	ClientID string
}

// UISettings configures presentation.
type UISettings struct {
	Language Language
	Demo     bool
}

// AppSettings holds all application configuration.
type AppSettings struct {
	Backend  Backend
	API      APISettings
	SQLite   SQLiteSettings
	Postgres PostgresSettings
	S3       S3Settings
	Azure    AzureSettings
	Auth     AuthSettings
	UI       UISettings
}

// Default setting values.
const (
	DefaultAPIBaseURL     = "http://localhost:8000/api"
	DefaultRatePerSecond  = 5
	DefaultAzureContainer = "documents"
)

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Backend: BackendAPI,
		API: APISettings{
			BaseURL:       DefaultAPIBaseURL,
			RatePerSecond: DefaultRatePerSecond,
		},
		Azure: AzureSettings{
			Container: DefaultAzureContainer,
		},
		UI: UISettings{
			Language: DefaultLanguage,
		},
	}
}

// Validate checks the settings for the selected backend.
func (s *AppSettings) Validate() error {
	if !s.Backend.IsValid() {
		return ErrUnsupportedBackend
	}
	if !s.UI.Language.IsValid() {
		return ErrUnsupportedLanguage
	}
	switch s.Backend {
	case BackendAPI:
		if s.API.BaseURL == "" {
			return ErrInvalidInput
		}
	case BackendPostgres:
		if s.Postgres.DSN == "" {
			return ErrInvalidInput
		}
	case BackendS3:
		if s.S3.Bucket == "" {
			return ErrInvalidInput
		}
	case BackendAzure:
		if s.Azure.ConnectionString == "" && s.Azure.AccountURL == "" {
			return ErrInvalidInput
		}
	}
	return nil
}

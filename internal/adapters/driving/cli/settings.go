package cli

import (
	"net/url"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the settings stored in ~/.docdeck/config.toml.

Environment variables DOCDECK_BACKEND, DOCDECK_API_URL, DOCDECK_TOKEN and
DOCDECK_OWNER take precedence over the file.`,
	Annotations: map[string]string{annotationConfigOnly: "true"},
	RunE:        runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting. Run "docdeck settings keys" for the key names.

Examples:
  docdeck settings set store.backend sqlite
  docdeck settings set api.base_url https://docs.example.com/api
  docdeck settings set ui.language de`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return ErrMissingSettingsService
	}

	settings, err := settingsService.Get()
	if err != nil {
		return err
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Store]")
	cmd.Printf("  Backend: %s (%s)\n", settings.Backend, settings.Backend.Description())
	cmd.Println()

	switch settings.Backend {
	case domain.BackendAPI:
		cmd.Println("[API]")
		cmd.Printf("  Base URL: %s\n", settings.API.BaseURL)
		cmd.Printf("  Token: %s\n", maskSecret(settings.API.Token))
		cmd.Printf("  Rate: %d requests/s\n", settings.API.RatePerSecond)
	case domain.BackendSQLite:
		cmd.Println("[SQLite]")
		cmd.Printf("  Data dir: %s\n", valueOr(settings.SQLite.DataDir, "~/.docdeck/data"))
	case domain.BackendPostgres:
		cmd.Println("[Postgres]")
		cmd.Printf("  DSN: %s\n", redactDSN(settings.Postgres.DSN))
	case domain.BackendS3:
		cmd.Println("[S3]")
		cmd.Printf("  Bucket: %s\n", valueOr(settings.S3.Bucket, "(not set)"))
		cmd.Printf("  Region: %s\n", valueOr(settings.S3.Region, "(default)"))
		cmd.Printf("  Prefix: %s\n", settings.S3.Prefix)
		if settings.S3.Endpoint != "" {
			cmd.Printf("  Endpoint: %s\n", settings.S3.Endpoint)
		}
		if settings.S3.AccessKeyID != "" {
			cmd.Printf("  Access key: %s\n", settings.S3.AccessKeyID)
			cmd.Printf("  Secret key: %s\n", maskSecret(settings.S3.SecretAccessKey))
		}
	case domain.BackendAzure:
		cmd.Println("[Azure]")
		if settings.Azure.ConnectionString != "" {
			cmd.Printf("  Connection string: %s\n", maskSecret(settings.Azure.ConnectionString))
		} else {
			cmd.Printf("  Account URL: %s\n", valueOr(settings.Azure.AccountURL, "(not set)"))
		}
		cmd.Printf("  Container: %s\n", settings.Azure.Container)
	}
	cmd.Println()

	cmd.Println("[Auth]")
	cmd.Printf("  Owner: %s\n", valueOr(settings.Auth.OwnerID, "(not set)"))
	if settings.Auth.Issuer != "" {
		cmd.Printf("  Issuer: %s\n", settings.Auth.Issuer)
		cmd.Printf("  Client ID: %s\n", valueOr(settings.Auth.ClientID, "(any)"))
	}
	cmd.Println()

	cmd.Println("[UI]")
	cmd.Printf("  Language: %s\n", settings.UI.Language.DisplayName())
	cmd.Printf("  Demo: %t\n", settings.UI.Demo)

	if err := settings.Validate(); err != nil {
		cmd.Println()
		cmd.Printf("Warning: settings are incomplete: %v\n", err)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return ErrMissingSettingsService
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("%s updated\n", args[0])
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return ErrMissingSettingsService
	}
	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

func maskSecret(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}

// redactDSN hides the password of a URL-style DSN.
func redactDSN(dsn string) string {
	if dsn == "" {
		return "(not set)"
	}
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	return u.Redacted()
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

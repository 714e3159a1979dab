// Package cli provides the docdeck command line interface.
// It is a driving adapter: commands translate flags and arguments into calls
// on the driving ports and render the results.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdeck-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/docdeck-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docdeck-cli/internal/logger"
)

// annotationConfigOnly marks commands that need settings but no store.
const annotationConfigOnly = "docdeck/config-only"

// version is set at build time via -ldflags.
var version = "dev"

// Options carries the global flags to the bootstrap.
type Options struct {
	ConfigDir  string
	Backend    string
	Owner      string
	Demo       bool
	Verbose    bool
	ConfigOnly bool
}

// Services holds everything commands call into. Fields other than Settings
// and Identity are nil when Options.ConfigOnly is set.
type Services struct {
	Explorer  driving.ExplorerService
	Language  driving.LanguageService
	Files     driving.FileService
	Settings  driving.SettingsService
	Identity  driving.IdentityService
	Localizer driving.Localizer

	// Watch blocks until ctx is done, calling onChange whenever the
	// config file changes. It may be nil.
	Watch tui.WatchFunc

	// Close releases backend resources. It may be nil.
	Close func() error
}

// Bootstrap builds the services for a command invocation.
type Bootstrap func(ctx context.Context, opts Options) (*Services, error)

var (
	bootstrap Bootstrap

	explorerService driving.ExplorerService
	languageService driving.LanguageService
	fileService     driving.FileService
	settingsService driving.SettingsService
	identityService driving.IdentityService
	localizer       driving.Localizer
	watchConfig     tui.WatchFunc
	closeServices   func() error
)

var (
	verboseFlag bool
	configFlag  string
	backendFlag string
	ownerFlag   string
	demoFlag    bool
)

var rootCmd = &cobra.Command{
	Use:   "docdeck",
	Short: "Browse and manage your uploaded documents",
	Long: `docdeck lists, filters, sorts and deletes the documents you uploaded
to a document service, and asks the service to re-process them.

Documents can live behind the REST API, in a local SQLite file, in
PostgreSQL, in an S3 bucket or in an Azure Blob Storage container.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupServices,
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return teardownServices()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&configFlag, "config", "", "config directory (default ~/.docdeck)")
	flags.StringVar(&backendFlag, "backend", "", "store backend: api, sqlite, postgres, s3, azure or memory")
	flags.StringVar(&ownerFlag, "owner", "", "owner id, overriding the configured one")
	flags.BoolVar(&demoFlag, "demo", false, "read-only demo mode with sample documents")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap installs the function that builds services before a command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// Execute runs the root command. Command output goes to stdout.
func Execute(ctx context.Context) error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

func setupServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verboseFlag)
	if bootstrap == nil {
		return nil
	}

	opts := Options{
		ConfigDir:  configFlag,
		Backend:    backendFlag,
		Owner:      ownerFlag,
		Demo:       demoFlag,
		Verbose:    verboseFlag,
		ConfigOnly: configOnly(cmd),
	}
	svc, err := bootstrap(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("starting: %w", err)
	}

	explorerService = svc.Explorer
	languageService = svc.Language
	fileService = svc.Files
	settingsService = svc.Settings
	identityService = svc.Identity
	localizer = svc.Localizer
	watchConfig = svc.Watch
	closeServices = svc.Close
	return nil
}

func teardownServices() error {
	if closeServices == nil {
		return nil
	}
	err := closeServices()
	closeServices = nil
	return err
}

// configOnly reports whether cmd or one of its parents is annotated as
// needing no store.
func configOnly(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationConfigOnly] == "true" {
			return true
		}
	}
	return false
}

// owner resolves the owner id for commands that scope by owner.
func owner(ctx context.Context) (string, error) {
	if identityService == nil {
		return "", ErrMissingIdentityService
	}
	return identityService.Owner(ctx)
}

package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdeck-cli/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive document explorer.

The explorer lists your uploaded documents in a table you can filter,
sort and select from. The interface language follows your account and
changes live when the config file is edited.

Controls:
  ↑/k, ↓/j   - Move the cursor
  space/x    - Select the document under the cursor
  a          - Select all visible documents, or clear the selection
  /          - Filter by name
  1, 2, 3    - Sort by type, name or size (again to flip)
  d          - Delete the selected documents
  r          - Ask the service to reload your files
  R          - Refresh the list
  L          - Change language
  ?          - Toggle help
  q          - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// tuiPorts builds the TUI ports from the bootstrapped services.
func tuiPorts() *tui.Ports {
	return &tui.Ports{
		Explorer:  explorerService,
		Identity:  identityService,
		Localizer: localizer,
		Language:  languageService,
		Watch:     watchConfig,
	}
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := tui.NewApp(tuiPorts())
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

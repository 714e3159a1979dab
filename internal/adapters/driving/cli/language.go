package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
)

var languageCmd = &cobra.Command{
	Use:   "language",
	Short: "Show or change the interface language",
}

var languageGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the current language",
	Args:  cobra.NoArgs,
	RunE:  runLanguageGet,
}

var languageSetCmd = &cobra.Command{
	Use:       "set <en|de>",
	Short:     "Change the language",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"en", "de"},
	RunE:      runLanguageSet,
}

func init() {
	languageCmd.AddCommand(languageGetCmd)
	languageCmd.AddCommand(languageSetCmd)
	rootCmd.AddCommand(languageCmd)
}

func runLanguageGet(cmd *cobra.Command, _ []string) error {
	if languageService == nil {
		return ErrMissingLanguageService
	}
	// Without an owner only the configured language is known.
	ownerID, _ := owner(cmd.Context())

	lang, err := languageService.Get(cmd.Context(), ownerID)
	if err != nil {
		return err
	}
	cmd.Printf("%s (%s)\n", lang, lang.DisplayName())
	return nil
}

func runLanguageSet(cmd *cobra.Command, args []string) error {
	if languageService == nil {
		return ErrMissingLanguageService
	}
	lang, err := domain.ParseLanguage(args[0])
	if err != nil {
		return err
	}
	ownerID, err := owner(cmd.Context())
	if err != nil {
		return err
	}
	if err := languageService.Set(cmd.Context(), ownerID, lang); err != nil {
		return err
	}
	cmd.Printf("Language set to %s\n", lang.DisplayName())
	return nil
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
)

var localCmd = &cobra.Command{
	Use:   "local",
	Short: "Manage documents in stores docdeck writes itself",
	Long: `Add local files to stores that accept uploads from docdeck:
sqlite, postgres, s3, azure and memory. The REST API store takes uploads
through the document service instead.`,
}

var localAddCmd = &cobra.Command{
	Use:   "add <path>...",
	Short: "Add local files",
	Long:  `Add local files under their base name, replacing documents with the same name.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLocalAdd,
}

func init() {
	localCmd.AddCommand(localAddCmd)
	rootCmd.AddCommand(localCmd)
}

func runLocalAdd(cmd *cobra.Command, args []string) error {
	if fileService == nil {
		return ErrMissingFileService
	}
	ownerID, err := owner(cmd.Context())
	if err != nil {
		return err
	}

	for _, path := range args {
		doc, err := fileService.Import(cmd.Context(), ownerID, path)
		if err != nil {
			return err
		}
		cmd.Printf("Added %s (%s)\n", doc.Filename, domain.FormatFileSize(doc.FileSize))
	}
	return nil
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
	"github.com/custodia-labs/docdeck-cli/internal/core/ports/driving"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List and manage uploaded documents",
}

var filesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List uploaded documents",
	Long: `List the owner's uploaded documents.

--filter keeps documents whose filename contains the text, ignoring case.
--sort activates a column (type, name or size). The first activation sorts
ascending; naming the same column again flips the direction.

Examples:
  docdeck files list --filter report
  docdeck files list --sort size --sort size   # largest first`,
	Args: cobra.NoArgs,
	RunE: runFilesList,
}

var filesDeleteCmd = &cobra.Command{
	Use:   "delete <filename>...",
	Short: "Delete documents by filename",
	Long:  `Delete documents in one batch. Nothing is deleted if any filename is unknown.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFilesDelete,
}

var filesReloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Ask the document service to re-process your files",
	Args:  cobra.NoArgs,
	RunE:  runFilesReload,
}

var filesDownloadCmd = &cobra.Command{
	Use:   "download <filename>",
	Short: "Download a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runFilesDownload,
}

func init() {
	filesListCmd.Flags().String("filter", "", "filename substring, case-insensitive")
	filesListCmd.Flags().StringArray("sort", nil, "column to sort by (repeatable)")
	filesListCmd.Flags().Bool("json", false, "print JSON")
	filesDownloadCmd.Flags().StringP("output", "o", "", "output path (default: the filename)")

	filesCmd.AddCommand(filesListCmd)
	filesCmd.AddCommand(filesDeleteCmd)
	filesCmd.AddCommand(filesReloadCmd)
	filesCmd.AddCommand(filesDownloadCmd)
	rootCmd.AddCommand(filesCmd)
}

// openList resolves the owner and returns a loaded listing.
func openList(cmd *cobra.Command) (driving.DocumentList, string, error) {
	if explorerService == nil {
		return nil, "", ErrMissingExplorerService
	}
	ownerID, err := owner(cmd.Context())
	if err != nil {
		return nil, "", err
	}
	list := explorerService.NewList()
	if _, err := list.Load(cmd.Context(), ownerID); err != nil {
		list.Close()
		return nil, "", err
	}
	return list, ownerID, nil
}

type documentJSON struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	FileType   string    `json:"file_type"`
	FileSize   int64     `json:"file_size"`
	Language   string    `json:"language,omitempty"`
	UploadedAt time.Time `json:"uploaded_at,omitzero"`
}

func runFilesList(cmd *cobra.Command, _ []string) error {
	filter, _ := cmd.Flags().GetString("filter")
	sorts, _ := cmd.Flags().GetStringArray("sort")
	asJSON, _ := cmd.Flags().GetBool("json")

	list, _, err := openList(cmd)
	if err != nil {
		return err
	}
	defer list.Close()

	list.SetFilter(filter)
	for _, key := range sorts {
		if err := list.SortBy(key); err != nil {
			return err
		}
	}
	state := list.State()

	if asJSON {
		docs := make([]documentJSON, len(state.Items))
		for i, d := range state.Items {
			docs[i] = documentJSON{
				ID:         d.ID,
				Filename:   d.Filename,
				FileType:   d.FileType(),
				FileSize:   d.FileSize,
				Language:   d.Language.String(),
				UploadedAt: d.UploadedAt,
			}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(docs)
	}

	if len(state.Items) == 0 {
		cmd.Println("No documents found")
		return nil
	}

	cmd.Println(renderTable(state))
	if filter != "" {
		cmd.Printf("Showing %d of %d documents\n", len(state.Items), state.Total)
	} else {
		cmd.Printf("Total: %d documents\n", state.Total)
	}
	return nil
}

// renderTable draws the listing with the active column marked.
func renderTable(state domain.ListState) string {
	headers := make([]string, len(state.Columns))
	for i, col := range state.Columns {
		headers[i] = col.Name
		if col.Sorted {
			arrow := " ▲"
			if col.Descending {
				arrow = " ▼"
			}
			headers[i] += arrow
		}
	}

	rows := make([][]string, len(state.Items))
	for i, d := range state.Items {
		rows[i] = make([]string, len(state.Columns))
		for j, col := range state.Columns {
			rows[i][j] = cellValue(col, d)
		}
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		Render()
}

func cellValue(col domain.Column, d domain.Document) string {
	switch col.FieldName {
	case domain.FieldFileType:
		return d.FileType()
	case domain.FieldFilename:
		return d.Filename
	case domain.FieldFileSize:
		return domain.FormatFileSize(d.FileSize)
	default:
		return ""
	}
}

func runFilesDelete(cmd *cobra.Command, args []string) error {
	list, _, err := openList(cmd)
	if err != nil {
		return err
	}
	defer list.Close()

	list.Select(args...)
	state := list.State()
	for _, name := range args {
		if !state.IsSelected(name) {
			return fmt.Errorf("%s: %w", name, domain.ErrNotFound)
		}
	}

	if err := list.DeleteSelected(cmd.Context()); err != nil {
		return err
	}
	cmd.Printf("Deleted %d document(s)\n", len(state.Selected))
	return nil
}

func runFilesReload(cmd *cobra.Command, _ []string) error {
	if explorerService == nil {
		return ErrMissingExplorerService
	}
	ownerID, err := owner(cmd.Context())
	if err != nil {
		return err
	}
	// Reload does not need the listing.
	list := explorerService.NewList()
	defer list.Close()

	if err := list.Reload(cmd.Context(), ownerID); err != nil {
		return err
	}
	cmd.Println("Reload requested")
	return nil
}

func runFilesDownload(cmd *cobra.Command, args []string) error {
	if fileService == nil {
		return ErrMissingFileService
	}
	ownerID, err := owner(cmd.Context())
	if err != nil {
		return err
	}

	filename := args[0]
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = filepath.Base(filename)
	}

	rc, size, err := fileService.Download(cmd.Context(), ownerID, filename)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", filename, err)
	}
	defer rc.Close()

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", output, err)
	}

	bar := progressbar.NewOptions64(size,
		progressbar.OptionSetDescription(filename),
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)

	n, err := io.Copy(io.MultiWriter(f, bar), rc)
	_ = bar.Finish()
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(output)
		return fmt.Errorf("writing %s: %w", output, err)
	}

	cmd.Printf("Saved %s (%s)\n", output, domain.FormatFileSize(n))
	return nil
}

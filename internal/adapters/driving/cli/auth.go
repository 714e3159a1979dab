package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the owner identity",
	Long: `Manage the identity whose documents are listed.

docdeck does not sign you in itself. Obtain an ID token from your identity
provider and pass it to "docdeck auth login"; its subject becomes the owner
id. Configure the issuer first with:

  docdeck settings set auth.issuer https://example.eu.auth0.com/`,
	Annotations: map[string]string{annotationConfigOnly: "true"},
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Verify an ID token and remember its subject",
	Args:  cobra.NoArgs,
	RunE:  runAuthLogin,
}

var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current owner id",
	Args:  cobra.NoArgs,
	RunE:  runAuthWhoami,
}

func init() {
	authLoginCmd.Flags().String("token", "", "ID token (read from stdin when omitted)")
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authWhoamiCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthLogin(cmd *cobra.Command, _ []string) error {
	if identityService == nil {
		return ErrMissingIdentityService
	}

	token, _ := cmd.Flags().GetString("token")
	if token == "" {
		var err error
		if token, err = readToken(cmd); err != nil {
			return err
		}
	}
	if token == "" {
		return fmt.Errorf("%w: empty token", domain.ErrInvalidInput)
	}

	id, err := identityService.Login(cmd.Context(), token)
	if err != nil {
		return err
	}

	cmd.Printf("Logged in as %s\n", id.Subject)
	if id.Email != "" {
		cmd.Printf("  Email: %s\n", id.Email)
	}
	if !id.ExpiresAt.IsZero() {
		cmd.Printf("  Token expires: %s\n", id.ExpiresAt.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runAuthWhoami(cmd *cobra.Command, _ []string) error {
	ownerID, err := owner(cmd.Context())
	if err != nil {
		return err
	}
	cmd.Println(ownerID)
	return nil
}

// readToken reads a token without echo from a terminal, or one line from
// any other input.
func readToken(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		cmd.Print("ID token: ")
		b, err := term.ReadPassword(int(f.Fd()))
		cmd.Println()
		if err != nil {
			return "", fmt.Errorf("reading token: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading token: %w", err)
	}
	return strings.TrimSpace(line), nil
}

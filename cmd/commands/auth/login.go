package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"backdrop/internal/services/auth"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

// LoginCommand returns the "auth login" command.
func LoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <host>",
		Short: "Store a bearer token for an asset host",
		Long: `Store a bearer token for an asset host using the local keychain.

Example:
  backdrop auth login assets.example.com`,
		Args:         cobra.ExactArgs(1),
		RunE:         runLogin,
		SilenceUsage: true,
	}

	cmd.Flags().String("token", "", "Bearer token (optional, overrides prompt)")

	return cmd
}

func runLogin(cmd *cobra.Command, args []string) error {
	host := auth.NormalizeHost(args[0])
	if host == "" {
		return errors.New("host is required")
	}

	token, err := cmd.Flags().GetString("token")
	if err != nil {
		return err
	}

	token = strings.TrimSpace(token)
	if token == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Enter bearer token: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		token = strings.TrimSpace(string(raw))
	}

	if token == "" {
		return errors.New("token cannot be empty")
	}

	store := auth.DefaultStore()
	if err := store.SetToken(host, token); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved token for %s\n", host)
	return nil
}

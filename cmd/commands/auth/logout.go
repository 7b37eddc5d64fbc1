package auth

import (
	"errors"
	"fmt"

	"backdrop/internal/services/auth"

	"github.com/spf13/cobra"
)

// LogoutCommand returns the "auth logout" command.
func LogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout <host>",
		Short: "Remove the stored token for an asset host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			host := auth.NormalizeHost(args[0])
			store := auth.DefaultStore()
			if err := store.DeleteToken(host); err != nil {
				if errors.Is(err, auth.ErrTokenNotFound) {
					fmt.Fprintf(cmd.OutOrStdout(), "No token stored for %s\n", host)
					return nil
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed token for %s\n", host)
			return nil
		},
		SilenceUsage: true,
	}
}

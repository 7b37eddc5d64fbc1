package auth

import (
	"github.com/spf13/cobra"
)

// NewCommand returns the "auth" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage asset host credentials",
		Long: `Manage bearer tokens for protected asset hosts.

Use this command group to log in and store tokens securely in the
local keychain. Prefetch requests to a host with a stored token carry
it as an Authorization header.`,
	}

	cmd.AddCommand(LoginCommand())
	cmd.AddCommand(StatusCommand())
	cmd.AddCommand(LogoutCommand())

	return cmd
}

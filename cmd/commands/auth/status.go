package auth

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"backdrop/internal/config"
	"backdrop/internal/services/auth"

	"github.com/spf13/cobra"
)

// StatusCommand returns the "auth status" command.
func StatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status [host...]",
		Short: "Show which asset hosts have stored tokens",
		Long: `Show which asset hosts have stored tokens.

Without arguments the configured asset host is checked.

Example:
  backdrop auth status assets.example.com`,
		RunE:         runStatus,
		SilenceUsage: true,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	hosts := args
	if len(hosts) == 0 {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		host := configuredHost(cfg.AssetHost)
		if host == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "No asset host configured.")
			return nil
		}
		hosts = []string{host}
	}

	store := auth.DefaultStore()
	for _, host := range hosts {
		host = auth.NormalizeHost(host)
		_, err := store.GetToken(host)
		switch {
		case err == nil:
			fmt.Fprintf(cmd.OutOrStdout(), "%s: logged in\n", host)
		case errors.Is(err, auth.ErrTokenNotFound):
			fmt.Fprintf(cmd.OutOrStdout(), "%s: not logged in\n", host)
		default:
			fmt.Fprintf(cmd.OutOrStdout(), "%s: error (%v)\n", host, err)
		}
	}
	return nil
}

// configuredHost extracts the bare host from a configured asset origin.
func configuredHost(origin string) string {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return ""
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return origin
	}
	return u.Host
}

package cmd

import (
	"os"

	"backdrop/cmd/commands/auth"
	"backdrop/cmd/commands/catalog"
	cfgcmd "backdrop/cmd/commands/config"
	"backdrop/cmd/commands/journal"
	"backdrop/cmd/commands/preview"
	"backdrop/cmd/commands/resolve"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "backdrop",
		Short: "A reactive page background controller",
		Long: `backdrop picks a page background image from the color mode (dark or
light), the device class (desktop or mobile at a configurable
breakpoint), and a path exclusion policy, and reacts to mode toggles
and viewport resizes as they happen.

Quick start:
  backdrop resolve --path / --mode dark     # One-shot resolution
  backdrop preview                          # Interactive terminal preview
  backdrop catalog prefetch                 # Warm the image cache
  backdrop journal list                     # Inspect past resolutions`,
	}

	cmd.AddCommand(auth.NewCommand())
	cmd.AddCommand(catalog.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(journal.NewCommand())
	cmd.AddCommand(preview.NewCommand())
	cmd.AddCommand(resolve.NewCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	var root = rootCmd()
	err := root.Execute()
	if err != nil {
		os.Exit(1)
	}
}

package config

import "github.com/spf13/cobra"

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage persistent configuration",
		Long: "Manage persistent backdrop configuration: the image catalog, the\n" +
			"exclusion list, the mobile breakpoint, and the asset host.",
		SilenceUsage: true,
	}

	cmd.AddCommand(GetCommand())
	cmd.AddCommand(SetCommand())
	cmd.AddCommand(PathCommand())
	cmd.AddCommand(InitCommand())

	return cmd
}

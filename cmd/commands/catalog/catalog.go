package catalog

import "github.com/spf13/cobra"

// NewCommand returns the "catalog" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and warm the image catalog",
		Long: "Inspect the effective background-image catalog and prefetch its\n" +
			"references into the local cache.",
		SilenceUsage: true,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(PrefetchCommand())

	return cmd
}

package journal

import "github.com/spf13/cobra"

// NewCommand returns the "journal" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "View and manage the resolution journal",
		Long: "View the local journal of background resolutions recorded by preview\n" +
			"sessions, and clear or prune old entries.\n\n" +
			"The journal is stored locally in ~/.config/backdrop/backdrop.db.",
		SilenceUsage: true,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(ClearCommand())
	cmd.AddCommand(PruneCommand())

	return cmd
}

package journal

import (
	"fmt"

	"backdrop/internal/journal"

	"github.com/spf13/cobra"
)

// ClearCommand returns the "journal clear" command.
func ClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "clear",
		Short:        "Delete all journal entries",
		RunE:         runClear,
		SilenceUsage: true,
	}
}

func runClear(cmd *cobra.Command, args []string) error {
	repo, err := journal.Open()
	if err != nil {
		return err
	}
	defer repo.Close()

	removed, err := repo.Clear()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d journal entr(y/ies).\n", removed)
	return nil
}

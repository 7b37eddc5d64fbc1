package journal

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"backdrop/internal/journal"

	"github.com/spf13/cobra"
)

// ListCommand returns the "journal list" command.
func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent resolution entries",
		Long: `List recent resolution entries stored locally.

Examples:
  backdrop journal list
  backdrop journal list --limit 50
  backdrop journal list --trigger resize
  backdrop journal list -o json`,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().Int("limit", 25, "Number of entries to display")
	cmd.Flags().String("trigger", "", "Filter by trigger (startup, attribute, resize, toggle, reload)")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		return fmt.Errorf("limit must be greater than 0")
	}

	filter, _ := cmd.Flags().GetString("trigger")
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = "table"
	}

	repo, err := journal.Open()
	if err != nil {
		return err
	}
	defer repo.Close()

	var entries []journal.Entry
	if filter != "" {
		entries, err = repo.ListByTrigger(filter, limit)
	} else {
		entries, err = repo.List(limit)
	}
	if err != nil {
		return err
	}

	if output == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	}
	if output != "table" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No journal entries found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tTRIGGER\tPATH\tMODE\tCLASS\tWIDTH\tREF")
	fmt.Fprintln(w, "----\t-------\t----\t----\t-----\t-----\t---")
	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			entry.Timestamp.Local().Format("2006-01-02 15:04:05"),
			entry.Trigger,
			entry.Path,
			entry.Mode,
			entry.Class,
			entry.Width,
			entry.Ref,
		)
	}
	w.Flush()
	return nil
}

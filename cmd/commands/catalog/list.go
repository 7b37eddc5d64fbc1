package catalog

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"backdrop/internal/config"
	"backdrop/internal/domain"

	"github.com/spf13/cobra"
)

// ListCommand returns the "catalog list" command.
func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the effective image catalog",
		Long: `List the effective image catalog: the four mode/class entries, the
fallback, and the deduplicated reference count used for prefetching.

Examples:
  backdrop catalog list
  backdrop catalog list -o json`,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

// listing is the JSON output shape.
type listing struct {
	DarkDesktop  string   `json:"dark_desktop"`
	DarkMobile   string   `json:"dark_mobile"`
	LightDesktop string   `json:"light_desktop"`
	LightMobile  string   `json:"light_mobile"`
	Fallback     string   `json:"fallback"`
	Exclusions   []string `json:"exclusions"`
	Distinct     int      `json:"distinct_refs"`
}

func runList(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cat, err := cfg.Catalog()
	if err != nil {
		return err
	}

	if output == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(listing{
			DarkDesktop:  string(cat.Lookup(domain.Dark, domain.Desktop)),
			DarkMobile:   string(cat.Lookup(domain.Dark, domain.Mobile)),
			LightDesktop: string(cat.Lookup(domain.Light, domain.Desktop)),
			LightMobile:  string(cat.Lookup(domain.Light, domain.Mobile)),
			Fallback:     string(cat.Fallback()),
			Exclusions:   cfg.ExclusionList(),
			Distinct:     len(cat.Refs()),
		})
	}
	if output != "table" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tCLASS\tREF")
	fmt.Fprintln(w, "----\t-----\t---")
	for _, row := range []struct {
		mode  domain.ColorMode
		class domain.DeviceClass
	}{
		{domain.Dark, domain.Desktop},
		{domain.Dark, domain.Mobile},
		{domain.Light, domain.Desktop},
		{domain.Light, domain.Mobile},
	} {
		fmt.Fprintf(w, "%s\t%s\t%s\n", row.mode, row.class, cat.Lookup(row.mode, row.class))
	}
	fmt.Fprintf(w, "-\tfallback\t%s\n", cat.Fallback())
	w.Flush()

	fmt.Fprintf(cmd.OutOrStdout(), "\n%d distinct reference(s); excluded prefixes: %v\n",
		len(cat.Refs()), []string(cfg.ExclusionList()))
	return nil
}

package catalog

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"backdrop/internal/config"
	"backdrop/internal/prefetch"
	"backdrop/internal/services/auth"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

// PrefetchCommand returns the "catalog prefetch" command.
func PrefetchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefetch",
		Short: "Warm every catalog reference",
		Long: `Fetch every distinct catalog reference into the local cache, with
bounded concurrency and per-reference outcomes.

Unlike the silent warm the controller performs at startup, this command
reports failures and exits non-zero when any reference cannot be
fetched.

Examples:
  backdrop catalog prefetch
  backdrop catalog prefetch --concurrency 2`,
		RunE:         runPrefetch,
		SilenceUsage: true,
	}

	cmd.Flags().Int("concurrency", 4, "Maximum concurrent fetches")

	return cmd
}

func runPrefetch(cmd *cobra.Command, args []string) error {
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	if concurrency <= 0 {
		return fmt.Errorf("concurrency must be greater than 0")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cat, err := cfg.Catalog()
	if err != nil {
		return err
	}

	warmer := prefetch.New(
		prefetch.WithAssetHost(cfg.AssetHost),
		prefetch.WithLimit(concurrency),
		prefetch.WithTokenFunc(auth.TokenFunc(auth.DefaultStore())),
	)

	refs := cat.Refs()
	var report prefetch.Report

	accessible := os.Getenv("ACCESSIBLE") != ""
	err = spinner.New().
		Title(fmt.Sprintf("Fetching %d reference(s)...", len(refs))).
		Accessible(accessible).
		Output(cmd.ErrOrStderr()).
		ActionWithErr(func(ctx context.Context) error {
			report = warmer.Fetch(ctx, refs)
			return nil
		}).
		Run()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "REF\tSTATUS\tBYTES")
	fmt.Fprintln(w, "---\t------\t-----")
	for _, o := range report.Outcomes {
		status := "ok"
		switch {
		case o.Cached:
			status = "cached"
		case !o.OK:
			status = "failed: " + o.Err
		}
		fmt.Fprintf(w, "%s\t%s\t%d\n", o.Ref, status, o.Bytes)
	}
	w.Flush()

	if failed := report.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d reference(s) failed to warm", failed, len(refs))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nWarmed %d reference(s).\n", len(refs))
	return nil
}

package preview

import (
	"backdrop/internal/config"
	"backdrop/internal/journal"
	"backdrop/internal/prefetch"
	"backdrop/internal/services/auth"
	"backdrop/internal/tui"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// NewCommand returns the "preview" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview [page...]",
		Short: "Interactively preview background resolution",
		Long: `Run an interactive terminal preview of background resolution.

The preview simulates a page with a color mode toggle and a resizable
viewport. Keys: t toggles the mode, [ and ] nudge the viewport width,
arrow keys move between pages, s shows resolution activity, q quits.

Page paths may be given as arguments; without them a small default set
is used.

Examples:
  backdrop preview
  backdrop preview / /posts/hello/ /about/team/
  backdrop preview --width 600`,
		RunE:         runPreview,
		SilenceUsage: true,
	}

	cmd.Flags().Int("width", 0, "Pin the simulated viewport width (px) instead of tracking the terminal")
	cmd.Flags().Bool("journal", false, "Record every resolution in the local journal")
	cmd.Flags().Bool("no-prefetch", false, "Skip warming the image cache at startup")
	cmd.Flags().String("config", "", "Path to an alternate config file")

	return cmd
}

func runPreview(cmd *cobra.Command, args []string) error {
	width, _ := cmd.Flags().GetInt("width")
	journalFlag, _ := cmd.Flags().GetBool("journal")
	noPrefetch, _ := cmd.Flags().GetBool("no-prefetch")
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	cat, err := cfg.Catalog()
	if err != nil {
		return err
	}

	opts := tui.PreviewOptions{
		Catalog:    cat,
		Exclusions: cfg.ExclusionList(),
		Breakpoint: cfg.Breakpoint(),
		Pages:      args,
		FixedWidth: width,
		Logger:     log.Default(),
	}

	if !noPrefetch {
		opts.Warmer = prefetch.New(
			prefetch.WithAssetHost(cfg.AssetHost),
			prefetch.WithTokenFunc(auth.TokenFunc(auth.DefaultStore())),
		)
	}

	if journalFlag {
		repo, err := journal.Open()
		if err != nil {
			return err
		}
		defer repo.Close()
		opts.Journal = repo
	}

	return tui.RunPreview(opts)
}

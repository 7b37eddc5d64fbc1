// Package resolve implements the one-shot resolution command: feed the
// policy evaluator a mode, viewport width, and path, and print the
// image reference it picks.
package resolve

import (
	"encoding/json"
	"fmt"
	"os"

	"backdrop/internal/config"
	"backdrop/internal/domain"
	"backdrop/internal/policy"
	"backdrop/internal/surface"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewCommand returns the "resolve" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the background image for a page",
		Long: `Resolve which background image a page should display, given a color
mode, viewport width, and page path.

Mode "auto" probes the terminal background; width defaults to the
terminal size when omitted.

Examples:
  backdrop resolve --path /posts/hello/ --mode dark
  backdrop resolve --path /about/ --width 390
  backdrop resolve --mode auto --output css
  backdrop resolve --path /about/ --exclude-start --output json`,
		RunE:         runResolve,
		SilenceUsage: true,
	}

	cmd.Flags().String("path", "/", "Page path to resolve for")
	cmd.Flags().String("mode", "auto", "Color mode: dark, light, or auto")
	cmd.Flags().Int("width", 0, "Viewport width in px (0 = derive from terminal)")
	cmd.Flags().String("override", "", "Explicit image ref that wins over every signal")
	cmd.Flags().Bool("exclude-start", false, "Apply the startup exact-match exclusion rule")
	cmd.Flags().StringP("output", "o", "ref", "Output format: ref, css, or json")

	return cmd
}

// result is the JSON output shape.
type result struct {
	Ref      string `json:"ref"`
	Path     string `json:"path"`
	Mode     string `json:"mode"`
	Class    string `json:"class"`
	Width    int    `json:"width"`
	Excluded bool   `json:"excluded"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("path")
	modeFlag, _ := cmd.Flags().GetString("mode")
	width, _ := cmd.Flags().GetInt("width")
	override, _ := cmd.Flags().GetString("override")
	excludeStart, _ := cmd.Flags().GetBool("exclude-start")
	output, _ := cmd.Flags().GetString("output")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cat, err := cfg.Catalog()
	if err != nil {
		return err
	}
	excl := cfg.ExclusionList()

	if width <= 0 {
		width = terminalWidthPx()
	}

	in := domain.Input{
		Class:    domain.ClassifyWidth(width, cfg.Breakpoint()),
		Override: domain.ImageRef(override),
	}

	// The startup rule uses exact match against the exclusion list; the
	// runtime rule inside Resolve uses prefix match.
	startExcluded := excludeStart && excl.MatchesExact(path)
	if !startExcluded {
		mode, err := parseModeFlag(modeFlag)
		if err != nil {
			return err
		}
		in.Mode = mode
		in.HasMode = true
	}

	ref := policy.Resolve(in, path, cat, excl)

	switch output {
	case "ref":
		fmt.Fprintln(cmd.OutOrStdout(), ref)
	case "css":
		fmt.Fprintln(cmd.OutOrStdout(), surface.Declaration("body", ref))
	case "json":
		mode := "none"
		if in.HasMode {
			mode = in.Mode.String()
		}
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(result{
			Ref:      string(ref),
			Path:     path,
			Mode:     mode,
			Class:    in.Class.String(),
			Width:    width,
			Excluded: excl.Matches(path),
		})
	default:
		return fmt.Errorf("unsupported output format %q", output)
	}
	return nil
}

// parseModeFlag maps the --mode flag to a ColorMode. "auto" probes the
// terminal background; unknown values are rejected rather than
// defaulting, since the flag is explicit user input.
func parseModeFlag(value string) (domain.ColorMode, error) {
	switch value {
	case "dark":
		return domain.Dark, nil
	case "light":
		return domain.Light, nil
	case "auto", "":
		if lipgloss.HasDarkBackground() {
			return domain.Dark, nil
		}
		return domain.Light, nil
	default:
		return domain.Light, fmt.Errorf("invalid mode %q (valid: dark, light, auto)", value)
	}
}

// terminalWidthPx derives a viewport width from the terminal size.
// Falls back to a desktop-class width when not attached to a terminal.
func terminalWidthPx() int {
	cols, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || cols <= 0 {
		return 1280
	}
	return cols * 8
}

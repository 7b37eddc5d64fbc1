package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"backdrop/internal/config"
	"backdrop/internal/domain"
	"backdrop/internal/util"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// InitCommand returns the "config init" command, an interactive wizard
// that walks through the full catalog and policy setup.
func InitCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "init",
		Short:        "Interactively configure the image catalog and policy",
		RunE:         runInit,
		SilenceUsage: true,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	accessible := os.Getenv("ACCESSIBLE") != ""

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	stock := domain.DefaultEntries()
	darkDesktop := valueOr(cfg.DarkDesktop, string(stock.DarkDesktop))
	darkMobile := valueOr(cfg.DarkMobile, string(stock.DarkMobile))
	lightDesktop := valueOr(cfg.LightDesktop, string(stock.LightDesktop))
	lightMobile := valueOr(cfg.LightMobile, string(stock.LightMobile))
	fallback := valueOr(cfg.Fallback, string(stock.Fallback))
	exclusions := strings.Join(cfg.ExclusionList(), ",")
	breakpoint := strconv.Itoa(cfg.Breakpoint())
	assetHost := cfg.AssetHost

	form := huh.NewForm(
		huh.NewGroup(
			refInput("Dark desktop image", &darkDesktop),
			refInput("Dark mobile image", &darkMobile),
			refInput("Light desktop image", &lightDesktop),
			refInput("Light mobile image", &lightMobile),
			refInput("Fallback image", &fallback),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Excluded path prefixes").
				Description("Comma-separated, each starting with /").
				Value(&exclusions).
				Validate(validateExclusions),
			huh.NewInput().
				Title("Mobile breakpoint (px)").
				Value(&breakpoint).
				Validate(validateBreakpoint),
			huh.NewInput().
				Title("Asset host (optional)").
				Description("http(s) origin used to resolve relative image refs").
				Value(&assetHost).
				Validate(validateAssetHost),
		),
	).WithAccessible(accessible)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errors.New("configuration aborted")
		}
		return err
	}

	cfg.DarkDesktop = strings.TrimSpace(darkDesktop)
	cfg.DarkMobile = strings.TrimSpace(darkMobile)
	cfg.LightDesktop = strings.TrimSpace(lightDesktop)
	cfg.LightMobile = strings.TrimSpace(lightMobile)
	cfg.Fallback = strings.TrimSpace(fallback)
	cfg.Exclusions = splitExclusions(exclusions)
	cfg.MobileBreakpoint, _ = strconv.Atoi(strings.TrimSpace(breakpoint))
	cfg.AssetHost = strings.TrimSpace(assetHost)

	if err := cfg.Save(); err != nil {
		return err
	}

	path, err := config.Path()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
	return nil
}

func refInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Value(value).
		Validate(func(v string) error {
			return util.ValidateImageRef(strings.TrimSpace(v))
		})
}

func valueOr(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func validateExclusions(v string) error {
	for _, p := range splitExclusions(v) {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("prefix %q must start with /", p)
		}
	}
	return nil
}

func validateBreakpoint(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return errors.New("breakpoint must be a positive integer")
	}
	return nil
}

func validateAssetHost(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if !strings.HasPrefix(v, "http://") && !strings.HasPrefix(v, "https://") {
		return errors.New("asset host must be an http(s) origin")
	}
	return nil
}

func splitExclusions(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

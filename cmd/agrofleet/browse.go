package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"agrofleet/internal/app"
	"agrofleet/internal/filters/registry"
	"agrofleet/internal/tui/browser"
	"agrofleet/pkg/logger"
)

func (c *cli) newBrowseCmd() *cobra.Command {
	var (
		section string
		demo    bool
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse and filter records in the terminal",
		Long: `Opens the terminal browser. Press f to open the filter panel,
tab to change section, enter for details and q to quit.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.browse(cmd.Context(), section, demo)
		},
	}

	cmd.Flags().StringVar(&section, "section", registry.SectionMaquinarias, "Section shown first")
	cmd.Flags().BoolVar(&demo, "demo", false, "Use an in-memory store filled with demo data")
	return cmd
}

func (c *cli) browse(ctx context.Context, section string, demo bool) error {
	var (
		a   *app.App
		err error
	)
	if demo {
		a = app.NewMemory(c.cfg, logger.Nop())
		if _, err := a.Seed(ctx); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	} else {
		a, err = app.New(ctx, c.cfg)
		if err != nil {
			return err
		}
	}
	defer a.Close()

	if _, ok := a.Registry.Section(section); !ok {
		return fmt.Errorf("unknown section %q", section)
	}

	// Log output would draw over the alternate screen, so loads run without
	// the application logger in ctx.
	m := browser.New(ctx, browser.Config{
		Registry:     a.Registry,
		Loader:       a.Load,
		Section:      section,
		BlurDelay:    c.cfg.TUI.BlurDelay,
		SuggestLimit: c.cfg.Suggest.Limit,
	})

	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run browser: %w", err)
	}
	return nil
}

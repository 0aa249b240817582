package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"agrofleet/internal/app"
)

func (c *cli) newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo fleet data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := app.New(cmd.Context(), c.cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := a.Context(cmd.Context())
			if err := a.EnsureSchema(ctx); err != nil {
				return fmt.Errorf("ensure schema: %w", err)
			}

			rep, err := a.Seed(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %s\n", rep)
			return nil
		},
	}
}

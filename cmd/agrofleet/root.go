package main

import (
	"github.com/spf13/cobra"

	"agrofleet/internal/config"
)

// cli holds the state shared by every subcommand.
type cli struct {
	configFile string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "agrofleet",
		Short: "Agricultural fleet and inventory manager",
		Long: `agrofleet keeps machinery, spare parts, suppliers and repairs of a farm.

Settings come from defaults, an optional YAML file (--config), a .env file
and AGROFLEET_* environment variables, in that order. Without
AGROFLEET_DATABASE_URL records are kept in memory.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(config.Options{File: c.configFile})
			if err != nil {
				return err
			}
			c.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVar(&c.configFile, "config", "", "Path to a YAML configuration file")

	root.AddCommand(c.newServeCmd())
	root.AddCommand(c.newBrowseCmd())
	root.AddCommand(c.newSeedCmd())
	root.AddCommand(c.newPartsCSVCmd())

	return root
}

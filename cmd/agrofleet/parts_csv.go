package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"agrofleet/internal/partsdoc"
	"agrofleet/pkg/logger"
)

func (c *cli) newPartsCSVCmd() *cobra.Command {
	var dir, pattern, out string

	cmd := &cobra.Command{
		Use:   "parts-csv",
		Short: "Convert markdown parts lists to CSV",
		Long: `Reads every parts list document in --dir (ST*.md by default) and writes
one CSV row per part with the columns:

  archivo,numero,nombre,descripcion,codigo,cantidad,precio,notas`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := logger.New(logger.Config{Level: c.cfg.Log.Level, Development: c.cfg.Log.Development})
			if err != nil {
				return err
			}
			ctx := logger.WithLogger(cmd.Context(), log)

			items, err := partsdoc.ParseDir(ctx, dir, pattern)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}

			if err := partsdoc.WriteCSV(w, items); err != nil {
				return err
			}
			log.Infow("parts converted", "items", len(items), "dir", dir, "out", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Directory holding the parts documents")
	cmd.Flags().StringVar(&pattern, "pattern", partsdoc.DefaultPattern, "File name pattern")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "Output CSV file; - writes to stdout")
	return cmd
}

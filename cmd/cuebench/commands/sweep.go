package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/alexshd/cuebench"
)

func sweepCmd() *cobra.Command {
	var (
		reactionID string
		samples    int
		fraction   float64
		out        string
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Sweep maintenance cost and chart CUE against it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := cuebench.DefaultSweepConfig()
			cfg.Samples = samples
			cfg.Fraction = fraction

			table, err := cuebench.Sweep(solver, model, reactionID, cfg)
			if err != nil {
				return err
			}

			for _, p := range table {
				if p.Valid() {
					slog.Info("sample", "cost", p.Cost, "cue", p.CUE)
				} else {
					slog.Warn("sample failed", "cost", p.Cost, "err", p.Err)
				}
			}
			if failed := table.Failed(); failed > 0 {
				slog.Warn("sweep completed with failed samples",
					"failed", failed, "total", len(table))
			}

			if err := cuebench.SaveSweep(table, model.Name, out); err != nil {
				return err
			}
			slog.Info("chart written", "path", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&reactionID, "reaction", "r", "R_ATPM", "maintenance reaction ID")
	cmd.Flags().IntVarP(&samples, "samples", "n", 25, "number of cost samples")
	cmd.Flags().Float64Var(&fraction, "fraction", 0, "optimality fraction for the range query")
	cmd.Flags().StringVarP(&out, "out", "o", "cue.png", "output chart path")
	return cmd
}

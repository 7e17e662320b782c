package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/alexshd/cuebench"
)

func summaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Solve the model once and print its exchange summary and CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := solver.SolveSummary(model)
			if err != nil {
				return err
			}

			fmt.Printf("Objective flux: %.4f\n\n", s.Objective)
			fmt.Println("Uptake:")
			printRows(s.Uptake)
			fmt.Println("Secretion:")
			printRows(s.Secretion)

			cue, err := cuebench.CarbonUseEfficiency(s)
			switch {
			case errors.Is(err, cuebench.ErrNoCarbonUptake):
				slog.Warn("no carbon uptake in solution, CUE undefined")
			case err != nil:
				return err
			default:
				fmt.Printf("\nCUE: %.4f\n", cue)
			}
			return nil
		},
	}
	return cmd
}

func printRows(rows []cuebench.ExchangeFlux) {
	for _, r := range rows {
		fmt.Printf("  %-20s %10.4f  (C%d)\n", r.Species, r.Flux, r.Carbon)
	}
}

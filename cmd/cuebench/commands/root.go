package commands

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/alexshd/cuebench"
)

var (
	modelPath string
	verbose   bool

	model  *cuebench.Model
	solver cuebench.Solver
)

func Execute() error {
	root := &cobra.Command{
		Use:           "cuebench",
		Short:         "Carbon use efficiency analysis of metabolic models",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(
				tint.NewHandler(os.Stderr, &tint.Options{
					Level:      level,
					TimeFormat: "15:04:05",
				}),
			))

			m, err := cuebench.Load(modelPath)
			if err != nil {
				return err
			}
			model = m
			solver = cuebench.NewSimplexSolver()

			slog.Debug("model loaded",
				"id", model.ID,
				"reactions", len(model.Reactions),
				"metabolites", len(model.Metabolites))
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&modelPath, "model", "m", "", "SBML model file (.xml or .xml.gz)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	_ = root.MarkPersistentFlagRequired("model")

	root.AddCommand(sweepCmd(), summaryCmd())
	return root.Execute()
}

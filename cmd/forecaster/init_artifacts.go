package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sumesh-12/energy-demand-prediction/internal/artifacts"
)

func newInitArtifactsCmd() *cobra.Command {
	var (
		out  string
		year int
		seed uint64
	)
	cmd := &cobra.Command{
		Use:   "init-artifacts",
		Short: "Write an untrained placeholder model bundle for local development",
		Long: "Writes model.json, scaler_features.json and target_scaler.json with random weights.\n" +
			"The server starts and answers with correctly shaped but meaningless forecasts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if year == 0 {
				year = time.Now().Year()
			}
			b, err := artifacts.Placeholder(year, seed)
			if err != nil {
				return err
			}
			if err := artifacts.Write(out, b); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote placeholder artifacts to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "model", "output directory")
	cmd.Flags().IntVar(&year, "year", 0, "year whose calendar the feature scalers are fitted to (0 = current)")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "weight initialization seed")
	return cmd
}

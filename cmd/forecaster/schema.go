package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sumesh-12/energy-demand-prediction/internal/features"
	"github.com/sumesh-12/energy-demand-prediction/internal/predictor"
)

func newSchemaCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the ordered model input features",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"window_length": predictor.WindowLength,
					"features":      features.Schema,
				})
			}
			fmt.Fprintf(out, "window length %d, %d features\n", predictor.WindowLength, features.Count)
			for i, name := range features.Schema {
				fmt.Fprintf(out, "%2d  %s\n", i, name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

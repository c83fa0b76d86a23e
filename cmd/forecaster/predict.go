package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sumesh-12/energy-demand-prediction/internal/api"
	"github.com/sumesh-12/energy-demand-prediction/internal/forecast"
	"github.com/sumesh-12/energy-demand-prediction/internal/logging"
	"github.com/sumesh-12/energy-demand-prediction/internal/model"
)

type predictOptions struct {
	day, month   int
	artifactsDir string
	csv          bool
}

func newPredictCmd(root *rootOptions) *cobra.Command {
	opts := &predictOptions{}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Print the hourly forecast for one day of the current year",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPredict(cmd, root, opts)
		},
	}
	cmd.Flags().IntVar(&opts.day, "day", 0, "day of month (1-31)")
	cmd.Flags().IntVar(&opts.month, "month", 0, "month (1-12)")
	cmd.Flags().StringVar(&opts.artifactsDir, "artifacts", "", "artifact directory (overrides the configured source)")
	cmd.Flags().BoolVar(&opts.csv, "csv", false, "output as CSV")
	cmd.MarkFlagRequired("day")
	cmd.MarkFlagRequired("month")
	return cmd
}

func runPredict(cmd *cobra.Command, root *rootOptions, opts *predictOptions) error {
	cfg, err := root.load()
	if err != nil {
		return err
	}
	if opts.artifactsDir != "" {
		cfg.Artifacts.Dir = opts.artifactsDir
		cfg.Artifacts.Minio.Endpoint = ""
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	defer log.Sync()

	bundle, err := loadPredictionModel(cmd.Context(), cfg.Artifacts, log)
	if err != nil {
		return err
	}
	svc := forecast.NewService(forecast.Config{Bundle: bundle, Logger: log})

	f, err := svc.Forecast(cmd.Context(), model.ForecastRequest{Day: opts.day, Month: opts.month})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.csv {
		writeCSV(out, f)
		return nil
	}
	writeTable(out, f, opts.day, opts.month)
	return nil
}

func writeCSV(w io.Writer, f model.DailyForecast) {
	fmt.Fprintln(w, "hour,load_mwh")
	for h, v := range f.HourlyData {
		fmt.Fprintf(w, "%d,%.2f\n", h, v)
	}
}

func writeTable(w io.Writer, f model.DailyForecast, day, month int) {
	fmt.Fprintf(w, "Hourly load forecast for %02d-%02d\n\n", month, day)
	fmt.Fprintf(w, "%-6s  %12s\n", "Hour", "Load (MWh)")
	fmt.Fprintf(w, "%-6s  %12s\n", "------", "------------")
	for h, v := range f.HourlyData {
		marker := ""
		if h == f.PeakHour {
			marker = "  <- peak"
		}
		fmt.Fprintf(w, "%02d:00   %12.2f%s\n", h, v, marker)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, api.PredictionText(f))
}

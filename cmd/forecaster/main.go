// forecaster serves next-day hourly electricity load forecasts.
//
// Usage:
//
//	forecaster serve --config config.yaml
//	forecaster predict --day 15 --month 7
//	forecaster predict --day 15 --month 7 --csv
//	forecaster schema
//	forecaster init-artifacts --out model
//	forecaster migrate
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sumesh-12/energy-demand-prediction/internal/config"
)

type rootOptions struct {
	configPath string
	envFile    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "forecaster",
		Short:         "forecaster predicts next-day hourly electricity load",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before the environment overrides")

	rootCmd.AddCommand(
		newServeCmd(opts),
		newPredictCmd(opts),
		newSchemaCmd(),
		newInitArtifactsCmd(),
		newMigrateCmd(opts),
	)
	return rootCmd
}

func (o *rootOptions) load() (*config.Config, error) {
	if err := config.LoadDotEnv(o.envFile); err != nil {
		return nil, fmt.Errorf("load %s: %w", o.envFile, err)
	}
	return config.Load(o.configPath)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

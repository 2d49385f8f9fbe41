package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/joeydtaylor/sdrhunter/pkg/builder"
)

var rootCmd = &cobra.Command{
	Use:   "sdrhunter",
	Short: "Detect radio stations in rtl_power captures",
	Long: `sdrhunter reads rtl_power sweep captures, summarizes each one column by
column and merges the stations standing out of the noise floor into a
per-scan catalog.`,
	SilenceUsage: true,
}

var (
	configPath string
	scanName   string
	catalogArg string
	workers    int
	logLevel   string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", builder.EnvOr("SDRHUNTER_CONFIG", ""), "YAML configuration file")
	rootCmd.PersistentFlags().StringVarP(&scanName, "scan", "s", "", "scan to use when the configuration defines several")
	rootCmd.PersistentFlags().StringVar(&catalogArg, "catalog", "", "catalog file, overriding the configured store")
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "w", 0, "captures analyzed concurrently")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// loadConfig reads the configuration and applies the command line overrides.
func loadConfig(cmd *cobra.Command) (*builder.Config, error) {
	cfg, err := builder.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if catalogArg != "" {
		cfg.Catalog.Path = catalogArg
		cfg.Catalog.S3 = nil
	}
	if cmd.Flags().Changed("workers") {
		if workers < 1 {
			return nil, fmt.Errorf("--workers must be at least 1, got %d", workers)
		}
		cfg.Workers = workers
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	return cfg, nil
}

// openSession builds the components of the selected scan.
func openSession(ctx context.Context, cmd *cobra.Command) (*builder.Session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return builder.NewSession(ctx, cfg, scanName)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

package cmd

import (
	"fmt"
	"os"

	"nutrient-sync/core/config"
	"nutrient-sync/core/logger"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// configDir is the directory holding config.yaml and .env.
var configDir string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "nutrient-sync",
	Short: "Fill Tandoor food properties from USDA FoodData Central",
	Long: `nutrient-sync enriches the foods of a Tandoor recipe catalog with nutrient
values from the USDA FoodData Central database.

Foods are linked to FDC through their source URL, their fdc_id field or,
in interactive mode, an ID typed by the operator.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting
		// We use "debug" level configuration to get ISO8601 timestamps (DevConfig) instead of Epoch (ProdConfig)
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "Directory containing config.yaml and .env")
}

// loadRuntime loads the configuration, applies the log level override and
// builds a logger tagged with a fresh run id.
func loadRuntime(logLevel string, validate func(*config.Config) error) (*config.Config, *zap.Logger, string, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := validate(cfg); err != nil {
		return nil, nil, "", err
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to initialize logger: %w", err)
	}

	runID := uuid.NewString()
	return cfg, logger.WithRunID(l, runID), runID, nil
}

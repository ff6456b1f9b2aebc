package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kilianp07/evsizer/config"
	"github.com/kilianp07/evsizer/infra/logger"
)

var (
	cfgPath string
	envPath string
)

var rootCmd = &cobra.Command{
	Use:           "evsizer",
	Short:         "EV charging station electrical sizing",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envPath, err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
	rootCmd.PersistentFlags().StringVar(&envPath, "env-file", ".env", "dotenv file with environment overrides")
}

// Execute runs the CLI.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "error:", err)
	}
	return err
}

// loadConfig reads the configuration file. Commands that can run without a
// file get the defaults when the default path does not exist.
func loadConfig(cmd *cobra.Command, optional bool) (*config.Config, error) {
	if optional && !cmd.Flags().Changed("config") {
		if _, err := os.Stat(cfgPath); errors.Is(err, fs.ErrNotExist) {
			cfg := &config.Config{}
			cfg.SetDefaults()
			return cfg, nil
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return nil, err
	}
	if cfg.Logging.File != "" {
		if _, err := logger.SetFile(logger.FileOptions{
			Path:       cfg.Logging.File,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
		}); err != nil {
			return nil, fmt.Errorf("log file: %w", err)
		}
	}
	return cfg, nil
}

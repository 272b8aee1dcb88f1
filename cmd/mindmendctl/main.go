package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/yanqian/mindmend/internal/infra/config"
	"github.com/yanqian/mindmend/pkg/logger"
)

var (
	configPath string

	cfg *config.Config
	log *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mindmendctl",
	Short: "Operator tooling for the MindMend backend",
	Long: `mindmendctl applies the database schema and lets operators
exercise the advice fallback chain against the configured providers.

Configuration is read the same way as the server: .env, then the YAML
file named by --config or CONFIG_PATH, then environment variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if configPath != "" {
			if err := os.Setenv("CONFIG_PATH", configPath); err != nil {
				return err
			}
		}
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
		log = logger.New()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the YAML config file")
	rootCmd.AddCommand(migrateCmd, adviceCmd, candidatesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

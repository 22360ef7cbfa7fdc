package main

import (
	"fmt"

	"github.com/fadilmartias/skillsync-api/internal/config"
	"github.com/fadilmartias/skillsync-api/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	envFile string
	log     *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "skillsync",
	Short: "SkillSync career guidance API",
	Long: `SkillSync serves the career guidance API: assessments, career catalog,
skill gap analysis, resume feedback and a career chat assistant.

Run "skillsync serve" to start the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(envFile); err != nil {
			fmt.Printf("Could not load %s file, using process environment\n", envFile)
		}
		var err error
		log, err = logger.New(config.LoadAppConfig().Env)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading configuration")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(embedCmd)
}

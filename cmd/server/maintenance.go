package main

import (
	"github.com/fadilmartias/skillsync-api/internal/events"
	"github.com/fadilmartias/skillsync-api/internal/seed"
	"github.com/fadilmartias/skillsync-api/internal/usecase"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, closeDB, err := openStore()
		if err != nil {
			return err
		}
		closeDB()
		log.Info("migration complete")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the career catalog into an empty database",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeDB, err := openStore()
		if err != nil {
			return err
		}
		defer closeDB()

		n, err := seed.SeedCareers(cmd.Context(), store, log)
		if err != nil {
			return err
		}
		log.Info("seed complete", zap.Int("inserted", n))
		return nil
	},
}

var embedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Compute career embeddings for semantic search",
	Long: `Embeds every career in the catalog with Gemini and stores the vectors in
PostgreSQL (pgvector). Requires GEMINI_API_KEY and a database with the vector extension.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, closeDB, err := openStore()
		if err != nil {
			return err
		}
		defer closeDB()

		if _, err := seed.SeedCareers(ctx, store, log); err != nil {
			return err
		}
		careers := usecase.NewCareerUsecase(store, newGateway(ctx), events.Nop{}, log)
		n, err := careers.IndexEmbeddings(ctx)
		if err != nil {
			return err
		}
		log.Info("embedding complete", zap.Int("careers", n))
		return nil
	},
}

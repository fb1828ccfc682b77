package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/shuttle-bracket/internal/config"
	"github.com/mauv0809/shuttle-bracket/internal/database"
	"github.com/mauv0809/shuttle-bracket/internal/processor"
	"github.com/mauv0809/shuttle-bracket/internal/store"
	"github.com/spf13/cobra"
)

var force bool

var rootCmd = &cobra.Command{
	Use:   "seeder [SEED_FILE]",
	Short: "Load a tournament JSON file into the database",
	Long: `Loads a tournament seed file into the configured database. Without
--force an existing tournament is left untouched. SEED_FILE defaults to the
SEED_FILE environment variable.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		path := cfg.SeedFile
		if len(args) == 1 {
			path = args[0]
		}
		return run(cmd.Context(), cfg, path)
	},
}

func init() {
	rootCmd.Flags().BoolVar(&force, "force", false, "Replace an existing tournament")
}

func run(ctx context.Context, cfg config.Config, path string) error {
	log.Info("Starting database seeder...", "path", path)

	db, teardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer teardown()
	s := store.New(db)

	if !force {
		seeded, err := store.Seed(ctx, s, path)
		if err != nil {
			return err
		}
		if !seeded {
			log.Warn("Database already holds a tournament; use --force to replace it")
		}
		return nil
	}

	snapshot, err := store.ReadSnapshotFile(path)
	if err != nil {
		return err
	}
	if err := processor.Validate(snapshot); err != nil {
		return err
	}
	if err := s.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to save tournament: %w", err)
	}
	log.Info("Tournament replaced", "players", len(snapshot.Players), "matches", len(snapshot.Matches))
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Error("Seeder failed", "error", err)
		os.Exit(1)
	}
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/marklab/annotator/internal/database"
	"github.com/marklab/annotator/internal/models"
	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Manage the video catalog schema for the Video Annotator API.

The catalog uses GORM auto-migration, so "up" is idempotent and safe
to run on every deploy.

Available subcommands:
  up      - Apply the current schema
  status  - Show current schema status`,
}

// migrateUpCmd applies the schema
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply the current schema",
	Long: `Apply the current schema to the catalog database.

Missing tables and columns are created; existing data is preserved.`,
	RunE: runMigrateUp,
}

// migrateStatusCmd shows schema status
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show schema status",
	Long:  `Display which catalog tables exist in the configured database.`,
	RunE:  runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)

	migrateCmd.PersistentFlags().Bool("dry-run", false, "show what would be done without making changes")
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Println("Dry run mode - no changes will be made")
		fmt.Printf("Would migrate %s with tables: videos\n", cfg.Database.Path)
		return nil
	}

	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.AutoMigrate(&models.Video{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	fmt.Printf("Schema applied to %s\n", cfg.Database.Path)
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() { _ = db.Close() }()

	fmt.Println("Database Schema Status")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("Database: %s\n\n", cfg.Database.Path)

	migrator := db.DB.Migrator()
	for _, table := range []string{"videos"} {
		state := "missing"
		if migrator.HasTable(table) {
			state = "present"
		}
		fmt.Printf("  %-20s %s\n", table, state)
	}

	return nil
}

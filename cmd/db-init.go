package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hifzhub/murajaah/internal/infrastructure/config"
	"github.com/hifzhub/murajaah/internal/infrastructure/database"
)

// dbInitCmd applies the database schema.
var dbInitCmd = &cobra.Command{
	Use:   "db-init",
	Short: "Initialize the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		pool, cleanup, err := database.NewConnection(cfg)
		if err != nil {
			return fmt.Errorf("db connect: %w", err)
		}
		defer cleanup()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := database.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		fmt.Println("database schema is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbInitCmd)
}

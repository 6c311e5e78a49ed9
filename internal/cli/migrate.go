package cli

import (
	"context"
	"fmt"

	"github.com/existflow/taskapi/internal/db"
	"github.com/existflow/taskapi/internal/logger"
	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// migrations run as part of opening the store
			store, err := opts.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Schema is up to date (%s)\n", store.Driver())
			return nil
		},
	}
}

func newSeedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo data into an empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			seeded, err := seedStore(cmd.Context(), store)
			if err != nil {
				return err
			}
			if seeded {
				fmt.Fprintln(cmd.OutOrStdout(), "✓ Demo data inserted")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Database already has projects, nothing to seed.")
			}
			return nil
		},
	}
}

func seedStore(ctx context.Context, store *db.DB) (bool, error) {
	seeded, err := store.Seed(ctx)
	if err != nil {
		logger.Error("Seeding failed", logger.F("error", err))
		return false, fmt.Errorf("failed to seed database: %w", err)
	}
	if seeded {
		logger.Info("Seeded demo data")
	}
	return seeded, nil
}

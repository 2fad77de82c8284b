// cmd/tools/profile-migrator/seed.go
package main

import (
	"context"
	"fmt"
	"io"

	"civic-relevance-workers/internal/common/config"
	"civic-relevance-workers/internal/common/database"
	"civic-relevance-workers/internal/dataset"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed-postgres",
	Short: "Copy the file dataset into Postgres",
	Long: `Create the explorer tables if needed and upsert every profile and issue
from the file documents. Connection settings come from configs/config.yaml
and the environment, as for the worker manager.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		defer pg.Close()

		ctx := cmd.Context()
		if err := pg.EnsureSchema(ctx); err != nil {
			return err
		}
		return runSeed(ctx, cmd.OutOrStdout(), dataset.NewFileSource(profilesPath, issuesPath), dataset.NewPostgresStore(pg.DB))
	},
}

func runSeed(ctx context.Context, w io.Writer, from dataset.Source, to *dataset.PostgresStore) error {
	ds, err := from.Load(ctx)
	if err != nil {
		return err
	}
	if err := to.SaveProfiles(ctx, ds.Profiles); err != nil {
		return fmt.Errorf("save profiles: %w", err)
	}
	if err := to.SaveIssues(ctx, ds.Issues); err != nil {
		return fmt.Errorf("save issues: %w", err)
	}
	fmt.Fprintf(w, "Seeded %d profiles and %d issues from %s\n", len(ds.Profiles), len(ds.Issues), from.Name())
	return nil
}

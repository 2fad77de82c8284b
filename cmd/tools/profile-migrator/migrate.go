// cmd/tools/profile-migrator/migrate.go
package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"civic-relevance-workers/internal/dataset"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Convert legacy string resources to weighted objects",
	Long: `Rewrite every resource stored as a bare string as {name, weight} with a
random weight between 1 and 10. Resources already in object form keep
their weight, so running the command twice changes nothing.

Examples:
  profile-migrator migrate
  profile-migrator migrate --dry-run
  profile-migrator migrate --out data/profiles.v2.json --seed 42`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(cmd.OutOrStdout(), migrateOptions{
			in:     profilesPath,
			out:    migrateOut,
			seed:   migrateSeed,
			dryRun: migrateDryRun,
		})
	},
}

var (
	migrateOut    string
	migrateSeed   int64
	migrateDryRun bool
)

func init() {
	migrateCmd.Flags().StringVar(&migrateOut, "out", "", "write here instead of rewriting --profiles")
	migrateCmd.Flags().Int64Var(&migrateSeed, "seed", 0, "weight generator seed (0 uses the clock)")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "report without writing")
}

type migrateOptions struct {
	in     string
	out    string
	seed   int64
	dryRun bool
}

func runMigrate(w io.Writer, opts migrateOptions) error {
	raw, err := os.ReadFile(opts.in)
	if err != nil {
		return fmt.Errorf("read profiles: %w", err)
	}
	profiles, err := dataset.DecodeProfiles(raw)
	if err != nil {
		return err
	}

	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	migrated := dataset.MigrateResources(profiles, rand.New(rand.NewSource(seed)))

	if opts.dryRun {
		fmt.Fprintf(w, "%d resources would be migrated across %d profiles\n", migrated, len(profiles))
		return nil
	}
	if migrated == 0 && opts.out == "" {
		fmt.Fprintln(w, "No legacy resources found; nothing to do.")
		return nil
	}

	out := opts.out
	if out == "" {
		out = opts.in
	}
	if err := dataset.WriteProfilesFile(out, profiles); err != nil {
		return err
	}
	fmt.Fprintf(w, "Migrated %d resources across %d profiles to %s\n", migrated, len(profiles), out)
	return nil
}

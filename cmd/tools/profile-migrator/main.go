// cmd/tools/profile-migrator/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	profilesPath string
	issuesPath   string
)

var rootCmd = &cobra.Command{
	Use:   "profile-migrator",
	Short: "Maintain the explorer profile and issue dataset",
	Long: `profile-migrator upgrades and checks the dataset the workers score.

It provides:
  - migrate: convert legacy string resources into {name, weight} objects
  - validate: check both documents against the dataset schemas
  - seed-postgres: copy the file dataset into the Postgres tables`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&profilesPath, "profiles", "data/profiles.json", "profiles document")
	rootCmd.PersistentFlags().StringVar(&issuesPath, "issues", "data/issues.json", "issues document")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

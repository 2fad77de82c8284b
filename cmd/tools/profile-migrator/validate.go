// cmd/tools/profile-migrator/validate.go
package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"civic-relevance-workers/internal/dataset"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the dataset documents against their schemas",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd.OutOrStdout(), profilesPath, issuesPath)
	},
}

func runValidate(w io.Writer, profiles, issues string) error {
	rawP, err := os.ReadFile(profiles)
	if err != nil {
		return fmt.Errorf("read profiles: %w", err)
	}
	rawI, err := os.ReadFile(issues)
	if err != nil {
		return fmt.Errorf("read issues: %w", err)
	}

	ds, err := dataset.Decode(rawP, rawI)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%d profiles, %d issues, %d legacy resources\n\n",
		len(ds.Profiles), len(ds.Issues), dataset.CountLegacy(ds.Profiles))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tTITLE\tCATEGORY")
	for i, is := range ds.Issues {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i, is.Title, is.Category)
	}
	return tw.Flush()
}

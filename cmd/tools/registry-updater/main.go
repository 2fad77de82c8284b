// cmd/tools/registry-updater/main.go
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"civic-relevance-workers/pkg/registry"

	"github.com/spf13/cobra"
)

var registryPath string

var rootCmd = &cobra.Command{
	Use:          "registry-updater",
	Short:        "Maintain the worker activity catalogue",
	SilenceUsage: true,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalogued activities",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry.LoadRegistry(registryPath)
		if err != nil {
			return fmt.Errorf("failed to load registry: %w", err)
		}
		return listActivities(cmd.OutOrStdout(), reg)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the registry file",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry.LoadRegistry(registryPath)
		if err != nil {
			return fmt.Errorf("failed to load registry: %w", err)
		}
		if err := reg.Validate(); err != nil {
			return fmt.Errorf("registry validation failed:\n%w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Registry validation passed. Found %d activities.\n", len(reg.Activities))
		return nil
	},
}

var setCmd = &cobra.Command{
	Use:   "set <task-type> <field> <value>",
	Short: "Update one field of an activity",
	Long: `Update one field of the activity registered for a task type.

Fields: status, version, displayName, description, category, timeout, retries

Examples:
  registry-updater set rank-experts status verified
  registry-updater set notify-micro-community retries 5`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry.LoadRegistry(registryPath)
		if err != nil {
			return fmt.Errorf("failed to load registry: %w", err)
		}
		if err := updateActivity(reg, args[0], args[1], args[2]); err != nil {
			return err
		}
		if err := reg.Validate(); err != nil {
			return fmt.Errorf("update would leave the registry invalid:\n%w", err)
		}
		if err := reg.Save(registryPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s, field %s to %s\n", args[0], args[1], args[2])
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&registryPath, "path", "configs/activity-registry.json", "Path to registry file")
	rootCmd.AddCommand(listCmd, validateCmd, setCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func updateActivity(reg *registry.ActivityRegistry, taskType, field, value string) error {
	a, ok := reg.Find(taskType)
	if !ok {
		return fmt.Errorf("activity with task type %s not found", taskType)
	}

	switch field {
	case "status":
		a.ImplementationStatus = value
	case "version":
		a.Version = value
	case "displayName":
		a.DisplayName = value
	case "description":
		a.Description = value
	case "category":
		a.Category = value
	case "timeout":
		a.Timeout = value
	case "retries":
		retries, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid retries value: %w", err)
		}
		a.Retries = retries
	default:
		return fmt.Errorf("unknown field: %s", field)
	}
	return nil
}

func listActivities(w io.Writer, reg *registry.ActivityRegistry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TASK TYPE\tCATEGORY\tSTATUS\tTIMEOUT\tRETRIES")
	for _, a := range reg.Activities {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", a.TaskType, a.Category, a.ImplementationStatus, a.Timeout, a.Retries)
	}
	return tw.Flush()
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/seralvarez/compup/internal/engine"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update [component]",
	Short: "Update one component, or all of them",
	Long: `Runs the full pipeline for the named component: resolve the latest
upstream revision, compare it to the stored version record, download the
declared files and commit a new record. Without an argument every
configured component is updated; one component's failure never blocks
the others.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		res := eng.UpdateOne(cmd.Context(), args[0])
		printResult(res)
		if !res.OK() {
			return fmt.Errorf("update of '%s' failed: %w", res.Name, res.Err)
		}
		return nil
	}

	results := eng.UpdateAll(cmd.Context())
	if len(results) == 0 {
		info("No components configured.")
		return nil
	}

	var failed []string
	for _, res := range results {
		printResult(res)
		if !res.OK() {
			failed = append(failed, res.Name)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("update failed for: %s", strings.Join(failed, ", "))
	}
	info("All components updated successfully.")
	return nil
}

func printResult(res engine.Result) {
	switch res.Outcome {
	case engine.OutcomeUpdated:
		from := res.From
		if from == "" {
			from = "n/a"
		}
		info("  updated      %-24s %s → %s", res.Name, from, res.To)
	case engine.OutcomeUpToDate:
		info("  up to date   %-24s %s", res.Name, res.To)
	case engine.OutcomeFailed:
		errorf("%s: %v", res.Name, res.Err)
	}
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

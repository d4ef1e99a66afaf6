package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "List components with available updates",
	Long: `Resolves the latest upstream revision for every component and compares
it against the stored version record, without downloading anything or
modifying any file. Components with no stored record are always listed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		eng, err := newEngine(cfg)
		if err != nil {
			return err
		}

		report := eng.Check(cmd.Context())

		if len(report.Pending) == 0 && len(report.Errors) == 0 {
			info("All components are up to date.")
			return nil
		}

		if len(report.Pending) > 0 {
			info("Updates available:")
			for _, p := range report.Pending {
				current := p.Current
				if current == "" {
					current = "n/a"
				}
				info("  %-24s %s → %s  (%s)", p.Name, current, p.Latest, p.SourceURL)
			}
		}

		for _, e := range report.Errors {
			errorf("%s: %v", e.Name, e.Err)
		}
		if len(report.Errors) > 0 {
			return fmt.Errorf("check failed for %d component(s)", len(report.Errors))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var feasibilityCmd = &cobra.Command{
	Use:   "feasibility <item-id>",
	Short: "Report how ready an action item is to start",
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := GetProvider(cmd)
		if err != nil {
			return err
		}
		sess, err := GetSession(provider)
		if err != nil {
			return err
		}
		defer func() { _ = sess.Close() }()

		item, err := resolveItem(sess, args[0])
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()
		report, err := sess.Feasibility(ctx, item.ID)
		if err != nil {
			return err
		}

		fmt.Printf("%s\n  confidence: %s (%d%% done)\n", item.Title, report.Confidence, report.EstCompletionPct)
		for _, step := range report.RemainingSteps {
			fmt.Printf("  next: %s\n", step)
		}
		return nil
	},
	Args: cobra.ExactArgs(1),
}

func init() {
	rootCmd.AddCommand(feasibilityCmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Reset the plan to an empty state",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("clear discards the whole plan; re-run with --yes to confirm")
		}
		sess, err := GetSession(nil)
		if err != nil {
			return err
		}
		defer func() { _ = sess.Close() }()

		sess.Clear()
		sess.Flush()
		fmt.Println("Plan cleared.")
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation check")
	rootCmd.AddCommand(clearCmd)
}

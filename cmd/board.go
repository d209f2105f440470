package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/impactlist/impactlist/models"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show the triage board with per-column totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := GetSession(nil)
		if err != nil {
			return err
		}
		defer func() { _ = sess.Close() }()

		p := sess.Plan()
		fmt.Printf("%s\n\n", p.EventName)

		columns := []models.Status{models.StatusNow, models.StatusNext, models.StatusLater, models.StatusSkip}
		for _, status := range columns {
			fmt.Printf("== %s ==\n", status)
			for _, item := range p.ActionItems {
				if item.Status != status {
					continue
				}
				fmt.Printf("  [%s] %s (control=%s effort=%s cost=%d)\n",
					shortID(item.ID), item.Title, item.Control, item.Effort, item.Cost)
			}
			fmt.Println()
		}

		totals := sess.Totals()
		fmt.Println("Totals (Skip excluded):")
		for _, status := range []models.Status{models.StatusNow, models.StatusNext, models.StatusLater} {
			t := totals[status]
			fmt.Printf("  %-5s items=%d effort=%d cost=$%d\n", status, t.Count, t.Effort, t.Cost)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(boardCmd)
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/impactlist/impactlist/models"
)

var updateCmd = &cobra.Command{
	Use:   "update <item-id>",
	Short: "Edit an action item's fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := GetSession(nil)
		if err != nil {
			return err
		}
		defer func() { _ = sess.Close() }()

		item, err := resolveItem(sess, args[0])
		if err != nil {
			return err
		}

		if title, _ := cmd.Flags().GetString("title"); title != "" {
			item.Title = title
		}
		if why, _ := cmd.Flags().GetString("why"); why != "" {
			item.Why = why
		}
		if cmd.Flags().Changed("control") {
			raw, _ := cmd.Flags().GetString("control")
			control, err := parseControl(raw)
			if err != nil {
				return err
			}
			item.Control = control
		}
		if cmd.Flags().Changed("effort") {
			raw, _ := cmd.Flags().GetString("effort")
			effort, err := parseEffort(raw)
			if err != nil {
				return err
			}
			item.Effort = effort
		}
		if cmd.Flags().Changed("cost") {
			raw, _ := cmd.Flags().GetInt("cost")
			cost, err := parseCost(raw)
			if err != nil {
				return err
			}
			item.Cost = cost
		}

		if err := sess.UpdateItem(item); err != nil {
			return err
		}
		sess.Flush()
		fmt.Printf("Updated %q.\n", item.Title)
		return nil
	},
}

func parseCost(c int) (int, error) {
	if c < 0 {
		return 0, fmt.Errorf("cost must be non-negative, got %d", c)
	}
	return c, nil
}

func parseControl(s string) (models.Control, error) {
	switch strings.ToLower(s) {
	case "mine":
		return models.ControlMine, nil
	case "3rd-party", "third-party":
		return models.ControlThirdParty, nil
	default:
		return "", fmt.Errorf("unknown control %q (expected Mine or 3rd-party)", s)
	}
}

func parseEffort(s string) (models.Effort, error) {
	switch strings.ToUpper(s) {
	case "L", "LOW":
		return models.EffortLow, nil
	case "M", "MEDIUM":
		return models.EffortMedium, nil
	case "H", "HIGH":
		return models.EffortHigh, nil
	default:
		return "", fmt.Errorf("unknown effort %q (expected L, M, or H)", s)
	}
}

func init() {
	updateCmd.Flags().String("title", "", "New title")
	updateCmd.Flags().String("why", "", "New rationale")
	updateCmd.Flags().String("control", "", "Control: Mine or 3rd-party")
	updateCmd.Flags().String("effort", "", "Effort: L, M, or H")
	updateCmd.Flags().Int("cost", 0, "Estimated cost in whole dollars")
	rootCmd.AddCommand(updateCmd)
}

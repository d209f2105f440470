package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/impactlist/impactlist/models"
	"github.com/impactlist/impactlist/session"
)

var moveCmd = &cobra.Command{
	Use:   "move <item-id> <Now|Next|Later|Skip>",
	Short: "Move an action item to another triage column",
	Args:  cobra.ExactArgs(2),
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
		status, err := parseStatus(args[1])
		if err != nil {
			return err
		}

		if err := sess.MoveItem(item.ID, status); err != nil {
			return err
		}
		sess.Flush()
		fmt.Printf("Moved %q to %s.\n", item.Title, status)
		return nil
	},
}

// resolveItem finds an item by full id or unambiguous prefix.
func resolveItem(sess *session.Session, idOrPrefix string) (models.ActionItem, error) {
	p := sess.Plan()
	if item, ok := p.Item(idOrPrefix); ok {
		return item, nil
	}
	var matches []models.ActionItem
	for _, item := range p.ActionItems {
		if strings.HasPrefix(item.ID, idOrPrefix) {
			matches = append(matches, item)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.ActionItem{}, fmt.Errorf("no action item matches %q", idOrPrefix)
	default:
		return models.ActionItem{}, fmt.Errorf("%q is ambiguous: %d items match", idOrPrefix, len(matches))
	}
}

func parseStatus(s string) (models.Status, error) {
	switch strings.ToLower(s) {
	case "now":
		return models.StatusNow, nil
	case "next":
		return models.StatusNext, nil
	case "later":
		return models.StatusLater, nil
	case "skip":
		return models.StatusSkip, nil
	default:
		return "", fmt.Errorf("unknown status %q (expected Now, Next, Later, or Skip)", s)
	}
}

func init() {
	rootCmd.AddCommand(moveCmd)
}

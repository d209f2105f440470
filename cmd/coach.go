package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/impactlist/impactlist/models"
)

var coachCmd = &cobra.Command{
	Use:   "coach <item-id> <message...>",
	Short: "Ask the AI coach about an action item",
	Long: `Sends a message to the per-item coach thread and prints the reply.
The full conversation history for the item is replayed to the model,
so follow-up questions keep their context.`,
	Args: cobra.MinimumNArgs(2),
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
		userText := strings.Join(args[1:], " ")

		sess.SetActiveItem(item.ID)
		ctx, cancel := commandContext(cmd)
		defer cancel()
		if err := sess.SendCoachMessage(ctx, item.ID, userText); err != nil {
			return err
		}
		sess.Flush()

		refreshed, ok := sess.Plan().Item(item.ID)
		if !ok || len(refreshed.CoachHistory) == 0 {
			return nil
		}
		printCoachMessage(refreshed.CoachHistory[len(refreshed.CoachHistory)-1])
		return nil
	},
}

var coachHistoryCmd = &cobra.Command{
	Use:   "history <item-id>",
	Short: "Print the coach thread for an action item",
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
		if len(item.CoachHistory) == 0 {
			fmt.Println("No coach messages yet.")
			return nil
		}
		for _, msg := range item.CoachHistory {
			fmt.Printf("[%s]\n", msg.Sender)
			printCoachMessage(msg)
			fmt.Println()
		}
		return nil
	},
}

func printCoachMessage(msg models.CoachMessage) {
	if !msg.IsStructured() {
		fmt.Println(msg.DisplayText())
		return
	}
	p := msg.Payload
	fmt.Println(p.Message)
	printCoachSection("First moves", p.FirstMoves)
	printCoachSection("Check prerequisites", p.CheckPrereqs)
	printCoachSection("Risks", p.Risks)
	printCoachSection("Done when", p.DoneWhen)
}

func printCoachSection(heading string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Printf("\n%s:\n", heading)
	for _, line := range lines {
		fmt.Printf("  - %s\n", line)
	}
}

func init() {
	coachCmd.AddCommand(coachHistoryCmd)
	rootCmd.AddCommand(coachCmd)
}

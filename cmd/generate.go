package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/impactlist/impactlist/types"
)

var (
	generateEventName string
	generateFile      string
	generatePrompt    string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Extract action items from source text and start a new plan",
	Long: `Reads source text from --file (or stdin), runs the extraction pass, and
replaces the current plan with the generated items. An empty result keeps the
source text and event name so you can retry with --prompt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sourceText, err := readSource()
		if err != nil {
			return err
		}

		provider, err := GetProvider(cmd)
		if err != nil {
			return fmt.Errorf("configure LLM provider: %w", err)
		}
		sess, err := GetSession(provider)
		if err != nil {
			return err
		}
		defer func() { _ = sess.Close() }()

		ctx, cancel := commandContext(cmd)
		defer cancel()
		err = sess.Generate(ctx, sourceText, generateEventName, generatePrompt)
		sess.Flush()
		if err != nil {
			var planErr *types.PlanError
			if errors.As(err, &planErr) && planErr.Code == types.CodeGenerationEmpty {
				fmt.Println("No action items could be generated from that text.")
				fmt.Println("The source text was kept; retry with --prompt to adjust the extraction instructions.")
				return nil
			}
			return err
		}

		p := sess.Plan()
		fmt.Printf("Generated %d action items for %q.\n", len(p.ActionItems), p.EventName)
		for _, item := range p.ActionItems {
			score := 0.0
			if item.RankScore != nil {
				score = *item.RankScore
			}
			fmt.Printf("  [%s] %s (rank %.2f)\n", shortID(item.ID), item.Title, score)
		}
		return nil
	},
}

func readSource() (string, error) {
	if generateFile != "" {
		data, err := os.ReadFile(generateFile)
		if err != nil {
			return "", fmt.Errorf("read source file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read source from stdin: %w", err)
	}
	return string(data), nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&generateEventName, "event", "e", "My Action Plan", "display name for the plan")
	generateCmd.Flags().StringVarP(&generateFile, "file", "f", "", "source text file (defaults to stdin)")
	generateCmd.Flags().StringVarP(&generatePrompt, "prompt", "p", "", "custom system prompt overriding the default extraction instructions")
}

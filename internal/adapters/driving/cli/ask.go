package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tarifbot/tarifbot/internal/logger"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single recipe question",
	Long: `Answers one free-text cooking question, grounded in the indexed
recipe corpus. The answer is in Turkish; when no relevant recipe exists
a fixed fallback message is returned instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	question := args[0]

	ask := askService
	if ask == nil {
		built, cleanup, err := buildAskService(ctx)
		if err != nil {
			return err
		}
		defer cleanup()
		ask = built
	}

	answer, err := ask.Ask(ctx, question)
	if err != nil {
		return fmt.Errorf("answer question: %w", err)
	}

	if logger.IsVerbose() {
		for i, q := range answer.Queries {
			cmd.Printf("query[%d]: %s\n", i, q)
		}
		cmd.Printf("documents: %d\n\n", answer.Retrieved)
	}

	cmd.Println(answer.Text)
	return nil
}

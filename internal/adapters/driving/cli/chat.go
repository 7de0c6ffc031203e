package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tarifbot/tarifbot/internal/adapters/driving/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start the interactive chat interface",
	Long: `Opens a terminal chat with the recipe assistant. Each question is
answered independently from the indexed corpus; there is no memory
between questions.

Controls:
  Enter   - Ask the typed question
  ↑/↓     - Scroll the transcript
  Ctrl+C  - Quit`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	ask := askService
	if ask == nil {
		built, cleanup, err := buildAskService(ctx)
		if err != nil {
			return err
		}
		defer cleanup()
		ask = built
	}

	program := tea.NewProgram(tui.New(ask), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("chat interface: %w", err)
	}
	return nil
}

// Package cli implements the command-line interface. Commands are thin:
// they wire adapters from configuration and delegate to the core services.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/tarifbot/tarifbot/internal/logger"
)

// version is set via Execute from the build.
var version = "dev"

var (
	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "tarifbot",
	Short: "Recipe question answering over an indexed corpus",
	Long: `Tarifbot answers free-text cooking questions in Turkish, grounded in
a locally indexed recipe corpus.

Build the index once from a RecipeNLG-style CSV, then ask questions:

  tarifbot index --dataset recipes.csv
  tarifbot ask "Spagetti karbonara nasıl yapılır?"
  tarifbot chat`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.tarifbot)")
}

// Execute runs the root command with the given build version.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.Execute()
}

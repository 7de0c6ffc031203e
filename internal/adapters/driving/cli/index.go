package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tarifbot/tarifbot/internal/adapters/driven/vector/sqlite"
	"github.com/tarifbot/tarifbot/internal/connectors/dataset"
	"github.com/tarifbot/tarifbot/internal/core/ports/driven"
	"github.com/tarifbot/tarifbot/internal/core/services"
	"github.com/tarifbot/tarifbot/internal/normalisers/recipe"
)

var (
	indexDataset string
	indexYes     bool
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the recipe vector index",
	Long: `Reads the recipe CSV, normalises each row into a document, embeds the
corpus and writes the vector index to disk.

Rebuilding replaces the existing index after confirmation. The build is
all-or-nothing: a failed build leaves no partial index behind.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringVar(&indexDataset, "dataset", "", "path to the recipe CSV (overrides config)")
	indexCmd.Flags().BoolVarP(&indexYes, "yes", "y", false, "rebuild without confirmation")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if indexDataset != "" {
		cfg.Dataset.Path = indexDataset
	}
	if cfg.Dataset.Path == "" {
		return fmt.Errorf("no dataset configured; pass --dataset or set dataset.path in config.toml")
	}

	// An existing index is only replaced with consent. Declining keeps
	// it and ends the run cleanly.
	if _, err := os.Stat(cfg.Index.Path); err == nil {
		if !indexYes && !confirmRebuild(cmd, cfg.Index.Path) {
			cmd.Printf("Keeping existing index at %s.\n", cfg.Index.Path)
			return nil
		}
	}

	// The corpus is written to a scratch file first; the old index is
	// only replaced once the build has finished.
	scratchPath := cfg.Index.Path + ".build"

	indexer := indexerService
	swap := indexer == nil
	if indexer == nil {
		embed, err := newEmbeddingService(cfg)
		if err != nil {
			return err
		}
		defer embed.Close()

		removeScratch(scratchPath)

		factory := func(dimensions int) (driven.VectorIndex, error) {
			return sqlite.Create(scratchPath, dimensions, embed.ModelName())
		}
		indexer = services.NewIndexerService(
			dataset.New(cfg.Dataset.Path),
			recipe.New(),
			embed,
			factory,
			cfg.Dataset.MaxRecipes,
		)
	}

	cmd.Printf("Building index from %s...\n", cfg.Dataset.Path)
	summary, err := indexer.Build(ctx)
	if err != nil {
		removeScratch(scratchPath)
		return fmt.Errorf("build index: %w", err)
	}
	if swap {
		if err := os.Rename(scratchPath, cfg.Index.Path); err != nil {
			removeScratch(scratchPath)
			return fmt.Errorf("replace index: %w", err)
		}
	}

	cmd.Printf("Indexed %d documents from %d records.\n", summary.Documents, summary.Records)
	cmd.Printf("Index written to %s\n", cfg.Index.Path)
	return nil
}

// removeScratch deletes a leftover scratch index and its WAL side files.
func removeScratch(path string) {
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		_ = os.Remove(p)
	}
}

// confirmRebuild asks on stdin whether the existing index may be replaced.
func confirmRebuild(cmd *cobra.Command, path string) bool {
	cmd.Printf("Index %s already exists. Rebuild? [y/N]: ", path)

	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarifbot/tarifbot/internal/core/domain"
	"github.com/tarifbot/tarifbot/internal/core/ports/driving"
)

// mockIndexer implements driving.Indexer for testing.
type mockIndexer struct {
	summary driving.BuildSummary
	err     error

	builds int
}

func (m *mockIndexer) Build(_ context.Context) (driving.BuildSummary, error) {
	m.builds++
	if m.err != nil {
		return driving.BuildSummary{}, m.err
	}
	return m.summary, nil
}

// setupIndexCmd injects a mock indexer, points the config at a temp
// directory and resets the command flags afterwards.
func setupIndexCmd(t *testing.T, indexer driving.Indexer) string {
	t.Helper()

	dir := t.TempDir()
	indexerService = indexer
	configDir = dir
	t.Cleanup(func() {
		indexerService = nil
		configDir = ""
		indexDataset = ""
		indexYes = false
	})
	return dir
}

func TestIndexCmd_Use(t *testing.T) {
	assert.Equal(t, "index", indexCmd.Use)
}

func TestIndexCmd_HasYesFlag(t *testing.T) {
	flag := indexCmd.Flags().Lookup("yes")
	require.NotNil(t, flag)
	assert.Equal(t, "y", flag.Shorthand)
}

func TestIndexCmd_RequiresDataset(t *testing.T) {
	setupIndexCmd(t, &mockIndexer{})

	_, err := execute(t, "index")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no dataset configured")
}

func TestIndexCmd_BuildsAndReportsSummary(t *testing.T) {
	indexer := &mockIndexer{summary: driving.BuildSummary{Records: 10, Documents: 9}}
	setupIndexCmd(t, indexer)

	out, err := execute(t, "index", "--dataset", "recipes.csv")

	require.NoError(t, err)
	assert.Equal(t, 1, indexer.builds)
	assert.Contains(t, out, "Indexed 9 documents from 10 records.")
}

func TestIndexCmd_DeclinedRebuildKeepsIndex(t *testing.T) {
	indexer := &mockIndexer{}
	dir := setupIndexCmd(t, indexer)

	// Existing index file.
	indexPath := filepath.Join(dir, "index.db")
	require.NoError(t, os.WriteFile(indexPath, []byte("old"), 0600))

	rootCmd.SetIn(strings.NewReader("n\n"))
	defer rootCmd.SetIn(nil)

	out, err := execute(t, "index", "--dataset", "recipes.csv")

	// Declining is a clean abort, not a failure.
	require.NoError(t, err)
	assert.Zero(t, indexer.builds)
	assert.Contains(t, out, "Keeping existing index")

	// The old index is untouched.
	data, readErr := os.ReadFile(indexPath)
	require.NoError(t, readErr)
	assert.Equal(t, "old", string(data))
}

func TestIndexCmd_ConfirmedRebuildRunsBuild(t *testing.T) {
	indexer := &mockIndexer{summary: driving.BuildSummary{Records: 1, Documents: 1}}
	dir := setupIndexCmd(t, indexer)

	indexPath := filepath.Join(dir, "index.db")
	require.NoError(t, os.WriteFile(indexPath, []byte("old"), 0600))

	rootCmd.SetIn(strings.NewReader("y\n"))
	defer rootCmd.SetIn(nil)

	out, err := execute(t, "index", "--dataset", "recipes.csv")

	require.NoError(t, err)
	assert.Equal(t, 1, indexer.builds)
	assert.Contains(t, out, "Rebuild? [y/N]")

	// The old index stays in place until a finished build replaces it.
	data, readErr := os.ReadFile(indexPath)
	require.NoError(t, readErr)
	assert.Equal(t, "old", string(data))
}

func TestIndexCmd_BuildFailureKeepsOldIndex(t *testing.T) {
	indexer := &mockIndexer{err: errors.New("embedding service unreachable")}
	dir := setupIndexCmd(t, indexer)

	indexPath := filepath.Join(dir, "index.db")
	require.NoError(t, os.WriteFile(indexPath, []byte("old"), 0600))

	_, err := execute(t, "index", "--dataset", "recipes.csv", "--yes")

	require.Error(t, err)
	data, readErr := os.ReadFile(indexPath)
	require.NoError(t, readErr)
	assert.Equal(t, "old", string(data))
}

func TestIndexCmd_BuildFailureRemovesScratchFile(t *testing.T) {
	indexer := &mockIndexer{err: errors.New("embedding service unreachable")}
	dir := setupIndexCmd(t, indexer)

	scratchPath := filepath.Join(dir, "index.db.build")
	require.NoError(t, os.WriteFile(scratchPath, []byte("partial"), 0600))

	_, err := execute(t, "index", "--dataset", "recipes.csv")

	require.Error(t, err)
	_, statErr := os.Stat(scratchPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestIndexCmd_YesFlagSkipsPrompt(t *testing.T) {
	indexer := &mockIndexer{summary: driving.BuildSummary{Records: 1, Documents: 1}}
	dir := setupIndexCmd(t, indexer)

	indexPath := filepath.Join(dir, "index.db")
	require.NoError(t, os.WriteFile(indexPath, []byte("old"), 0600))

	out, err := execute(t, "index", "--dataset", "recipes.csv", "--yes")

	require.NoError(t, err)
	assert.Equal(t, 1, indexer.builds)
	assert.NotContains(t, out, "Rebuild?")
}

func TestIndexCmd_EmptyCorpus(t *testing.T) {
	indexer := &mockIndexer{err: domain.ErrEmptyCorpus}
	setupIndexCmd(t, indexer)

	_, err := execute(t, "index", "--dataset", "recipes.csv")

	assert.ErrorIs(t, err, domain.ErrEmptyCorpus)
}

func TestIndexCmd_BuildFailure(t *testing.T) {
	indexer := &mockIndexer{err: errors.New("embedding service unreachable")}
	setupIndexCmd(t, indexer)

	_, err := execute(t, "index", "--dataset", "recipes.csv")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding service unreachable")
}

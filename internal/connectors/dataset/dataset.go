// Package dataset reads recipe records from the RecipeNLG CSV export.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tarifbot/tarifbot/internal/core/domain"
	"github.com/tarifbot/tarifbot/internal/core/ports/driven"
	"github.com/tarifbot/tarifbot/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.RecipeSource = (*Source)(nil)

// Column layout of the dataset file. The first row is a header and is
// always skipped.
const (
	colIndex = iota
	colTitle
	colIngredients
	colDirections
	colLink
	colSource
	colNER
	columnCount
)

// Source reads recipe records from a CSV file.
type Source struct {
	path string
}

// New creates a recipe source for the given CSV path.
func New(path string) *Source {
	return &Source{path: path}
}

// Load reads at most limit records in file order, skipping the header row.
// Rows with too few columns are skipped with a warning; reading continues.
func (s *Source) Load(ctx context.Context, limit int) ([]domain.RecipeRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset %s: %w", s.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // dataset rows are occasionally ragged
	reader.LazyQuotes = true

	// Header row.
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("dataset %s is empty", s.path)
		}
		return nil, fmt.Errorf("reading dataset header: %w", err)
	}

	var records []domain.RecipeRecord
	for limit <= 0 || len(records) < limit {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading dataset row: %w", err)
		}
		if len(row) < columnCount {
			logger.Warn("skipping short row with %d columns", len(row))
			continue
		}

		records = append(records, domain.RecipeRecord{
			Title:       row[colTitle],
			Ingredients: row[colIngredients],
			Directions:  row[colDirections],
			Link:        row[colLink],
			Source:      row[colSource],
			NER:         row[colNER],
		})
	}

	logger.Info("loaded %d records from %s", len(records), s.path)
	return records, nil
}

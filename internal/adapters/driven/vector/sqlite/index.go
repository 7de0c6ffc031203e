// Package sqlite persists the recipe vector index in a single SQLite file.
//
// The index is written once by the offline build (Create) and opened
// read-only by the online path (Open). Embeddings are stored as
// little-endian float32 blobs next to the document they belong to, so a
// save/load round trip restores the exact search behaviour of the
// original build.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/tarifbot/tarifbot/internal/adapters/driven/vector/sqlite/migrations"
	"github.com/tarifbot/tarifbot/internal/core/domain"
	"github.com/tarifbot/tarifbot/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Meta keys recorded at build time.
const (
	metaDimensions = "dimensions"
	metaModel      = "embedding_model"
)

// Index is a SQLite-backed vector index with exact cosine search.
// Vectors are loaded into memory on first search; at the corpus sizes this
// project targets (tens of thousands of recipes) a linear scan is fast
// enough and keeps the on-disk format trivial.
type Index struct {
	db         *sql.DB
	path       string
	dimensions int
	model      string

	mu     sync.RWMutex
	loaded bool
	docs   []indexedDoc
}

// indexedDoc caches one document and its embedding in insertion order.
type indexedDoc struct {
	doc  domain.Document
	vec  []float32
	norm float64
}

// Create builds a new index file at path. The parent directory is created
// as needed. Create refuses to overwrite an existing file; the caller
// handles the rebuild-confirmation flow and removes the old file first.
func Create(path string, dimensions int, model string) (*Index, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("%w: dimensions must be positive", domain.ErrInvalidInput)
	}
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("index already exists at %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	if err := migrate(db, migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	for key, value := range map[string]string{
		metaDimensions: strconv.Itoa(dimensions),
		metaModel:      model,
	} {
		if _, err := db.Exec(
			`INSERT INTO index_meta (key, value) VALUES (?, ?)`, key, value,
		); err != nil {
			db.Close()
			return nil, fmt.Errorf("writing index metadata: %w", err)
		}
	}

	return &Index{db: db, path: path, dimensions: dimensions, model: model, loaded: true}, nil
}

// Open loads an existing index. A missing file maps to
// domain.ErrIndexNotFound; a file without the expected schema or metadata
// maps to domain.ErrIndexCorrupt. Both are fatal startup conditions for
// the online path.
func Open(path string) (*Index, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrIndexNotFound, path)
		}
		return nil, fmt.Errorf("stat index %s: %w", path, err)
	}

	db, err := openDB(path)
	if err != nil {
		return nil, err
	}

	idx := &Index{db: db, path: path}
	if err := idx.readMeta(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrIndexCorrupt, path, err)
	}
	return idx, nil
}

func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening index database: %w", err)
	}
	return db, nil
}

func (i *Index) readMeta() error {
	var dims string
	err := i.db.QueryRow(
		`SELECT value FROM index_meta WHERE key = ?`, metaDimensions,
	).Scan(&dims)
	if err != nil {
		return fmt.Errorf("reading dimensions: %w", err)
	}
	i.dimensions, err = strconv.Atoi(dims)
	if err != nil || i.dimensions <= 0 {
		return fmt.Errorf("invalid dimensions %q", dims)
	}

	if err := i.db.QueryRow(
		`SELECT value FROM index_meta WHERE key = ?`, metaModel,
	).Scan(&i.model); err != nil {
		return fmt.Errorf("reading embedding model: %w", err)
	}
	return nil
}

// Add inserts a document and its embedding. Insertion order becomes the
// tie-break order for equal similarities in Search.
func (i *Index) Add(ctx context.Context, doc domain.Document, embedding []float32) error {
	if len(embedding) != i.dimensions {
		return fmt.Errorf("%w: embedding has %d dimensions, index expects %d",
			domain.ErrInvalidInput, len(embedding), i.dimensions)
	}

	metadata, err := json.Marshal(doc.Metadata)
	if err != nil {
		return fmt.Errorf("marshalling metadata: %w", err)
	}

	if _, err := i.db.ExecContext(ctx,
		`INSERT INTO documents (id, content, metadata, embedding) VALUES (?, ?, ?, ?)`,
		doc.ID, doc.Content, string(metadata), float32SliceToBytes(embedding),
	); err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}

	i.mu.Lock()
	if i.loaded {
		i.docs = append(i.docs, indexedDoc{doc: doc, vec: embedding, norm: norm(embedding)})
	}
	i.mu.Unlock()
	return nil
}

// Search returns the k most similar documents, most similar first. Ties are
// broken by insertion order. If fewer than k documents exist, all of them
// are returned.
func (i *Index) Search(ctx context.Context, query []float32, k int) ([]domain.SearchResult, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be >= 1", domain.ErrInvalidInput)
	}
	if len(query) != i.dimensions {
		return nil, fmt.Errorf("%w: query has %d dimensions, index expects %d",
			domain.ErrInvalidInput, len(query), i.dimensions)
	}

	if err := i.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	queryNorm := norm(query)
	scored := make([]domain.SearchResult, len(i.docs))
	for idx, d := range i.docs {
		scored[idx] = domain.SearchResult{
			Document:   d.doc,
			Similarity: cosine(query, queryNorm, d.vec, d.norm),
		}
	}

	// SliceStable over the insertion-ordered slice keeps ties stable.
	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].Similarity > scored[b].Similarity
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k], nil
}

// Count returns the number of stored documents.
func (i *Index) Count(ctx context.Context) (int, error) {
	var count int
	if err := i.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return count, nil
}

// Dimensions returns the embedding dimension recorded at build time.
func (i *Index) Dimensions(_ context.Context) (int, error) {
	return i.dimensions, nil
}

// Model returns the embedding model name recorded at build time. The
// startup path compares it against the configured embedding service to
// reject incompatible indexes.
func (i *Index) Model() string {
	return i.model
}

// Path returns the index file path.
func (i *Index) Path() string {
	return i.path
}

// Close closes the underlying database.
func (i *Index) Close() error {
	return i.db.Close()
}

// ensureLoaded reads all documents into memory once, in insertion order.
func (i *Index) ensureLoaded(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.loaded {
		return nil
	}

	rows, err := i.db.QueryContext(ctx,
		`SELECT id, content, metadata, embedding FROM documents ORDER BY rowid`)
	if err != nil {
		return fmt.Errorf("%w: loading documents: %v", domain.ErrIndexCorrupt, err)
	}
	defer rows.Close()

	var docs []indexedDoc
	for rows.Next() {
		var doc domain.Document
		var metadataJSON string
		var blob []byte
		if err := rows.Scan(&doc.ID, &doc.Content, &metadataJSON, &blob); err != nil {
			return fmt.Errorf("%w: scanning document: %v", domain.ErrIndexCorrupt, err)
		}
		if err := json.Unmarshal([]byte(metadataJSON), &doc.Metadata); err != nil {
			return fmt.Errorf("%w: metadata for %s: %v", domain.ErrIndexCorrupt, doc.ID, err)
		}
		vec := bytesToFloat32Slice(blob)
		if len(vec) != i.dimensions {
			return fmt.Errorf("%w: document %s has %d dimensions, index expects %d",
				domain.ErrIndexCorrupt, doc.ID, len(vec), i.dimensions)
		}
		docs = append(docs, indexedDoc{doc: doc, vec: vec, norm: norm(vec)})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: reading documents: %v", domain.ErrIndexCorrupt, err)
	}

	i.docs = docs
	i.loaded = true
	return nil
}

// migrate runs all pending .up.sql migrations from the embedded filesystem.
func migrate(db *sql.DB, fsys fs.FS) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`)
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := db.Exec(
			`INSERT INTO schema_migrations (version) VALUES (?)`, version,
		); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// norm returns the Euclidean norm of v.
func norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// cosine computes cosine similarity given precomputed norms.
// A zero vector on either side yields 0.
func cosine(a []float32, aNorm float64, b []float32, bNorm float64) float64 {
	if aNorm == 0 || bNorm == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot / (aNorm * bNorm)
}

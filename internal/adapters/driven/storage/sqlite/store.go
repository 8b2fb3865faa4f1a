package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/docvec/internal/adapters/driven/storage/similarity"
	"github.com/custodia-labs/docvec/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/docvec/internal/core/domain"
	"github.com/custodia-labs/docvec/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// DBFile is the database file name inside the data directory.
const DBFile = "vectors.db"

// Store is a SQLite-backed vector store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the database in dataDir.
// If dataDir is empty, defaults to ~/.docvec/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docvec", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFile)

	// WAL mode lets the MCP server and the CLI read while the other writes.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
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
		// "001_vectors.up.sql" -> 1
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
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ListCollections returns collection names sorted alphabetically.
func (s *Store) ListCollections(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM collections ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning collection: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// GetCollection returns a collection's dimension and distance.
func (s *Store) GetCollection(ctx context.Context, name string) (*domain.Collection, error) {
	return getCollection(ctx, s.db, name)
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getCollection(ctx context.Context, q queryer, name string) (*domain.Collection, error) {
	c := domain.Collection{Name: name}
	var distance string
	err := q.QueryRowContext(ctx,
		"SELECT dimension, distance FROM collections WHERE name = ?", name,
	).Scan(&c.Dimension, &distance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrCollectionNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("getting collection: %w", err)
	}
	c.Distance = domain.Distance(distance)
	return &c, nil
}

// CreateCollection creates an empty collection.
func (s *Store) CreateCollection(ctx context.Context, c domain.Collection) error {
	distance := c.Distance
	if distance == "" {
		distance = domain.DistanceCosine
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO collections (name, dimension, distance) VALUES (?, ?, ?)",
		c.Name, c.Dimension, string(distance),
	)
	if err != nil {
		return fmt.Errorf("creating collection %s: %w", c.Name, err)
	}
	return nil
}

// DeleteCollection removes a collection and, by cascade, its points.
func (s *Store) DeleteCollection(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM collections WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("deleting collection: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrCollectionNotFound, name)
	}
	return nil
}

// Upsert inserts or overwrites points in a single transaction.
func (s *Store) Upsert(ctx context.Context, collection string, points []domain.Point) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	c, err := getCollection(ctx, tx, collection)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO points (collection, id, title, vector, payload)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(collection, id) DO UPDATE SET
			title = excluded.title,
			vector = excluded.vector,
			payload = excluded.payload,
			updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		if c.Dimension > 0 && len(p.Vector) != c.Dimension {
			return fmt.Errorf("%w: point %s has %d values, collection %q expects %d",
				domain.ErrDimensionMismatch, p.ID, len(p.Vector), collection, c.Dimension)
		}
		payload, err := json.Marshal(p.Payload)
		if err != nil {
			return fmt.Errorf("marshalling payload: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, collection, p.ID, p.Payload.Title,
			float32SliceToBytes(p.Vector), string(payload)); err != nil {
			return fmt.Errorf("upserting point %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// Search scores every point in the collection by cosine similarity.
func (s *Store) Search(ctx context.Context, collection string, vector []float32, limit int) ([]domain.ScoredPoint, error) {
	if _, err := s.GetCollection(ctx, collection); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, vector, payload FROM points WHERE collection = ? ORDER BY rowid", collection)
	if err != nil {
		return nil, fmt.Errorf("querying points: %w", err)
	}
	defer rows.Close()

	var candidates []similarity.Candidate[domain.ScoredPoint]
	for rows.Next() {
		var (
			id      string
			blob    []byte
			payload string
		)
		if err := rows.Scan(&id, &blob, &payload); err != nil {
			return nil, fmt.Errorf("scanning point: %w", err)
		}
		sp := domain.ScoredPoint{ID: id}
		if err := json.Unmarshal([]byte(payload), &sp.Payload); err != nil {
			return nil, fmt.Errorf("unmarshalling payload of %s: %w", id, err)
		}
		sp.Score = similarity.Cosine(vector, bytesToFloat32Slice(blob))
		candidates = append(candidates, similarity.Candidate[domain.ScoredPoint]{Item: sp, Score: sp.Score})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ranked := similarity.TopK(candidates, limit)
	hits := make([]domain.ScoredPoint, len(ranked))
	for i, r := range ranked {
		hits[i] = r.Item
	}
	return hits, nil
}

// DeletePoints removes points by id.
func (s *Store) DeletePoints(ctx context.Context, collection string, ids []string) error {
	if _, err := s.GetCollection(ctx, collection); err != nil {
		return err
	}
	for _, id := range ids {
		if _, err := s.db.ExecContext(ctx,
			"DELETE FROM points WHERE collection = ? AND id = ?", collection, id); err != nil {
			return fmt.Errorf("deleting point %s: %w", id, err)
		}
	}
	return nil
}

// DeleteByTitle removes every point of a document title, matched ignoring
// case. Ids in keep survive. SQLite's lower() only folds ASCII, so titles
// are compared in Go.
func (s *Store) DeleteByTitle(ctx context.Context, collection, title string, keep []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := getCollection(ctx, tx, collection); err != nil {
		return err
	}

	kept := make(map[string]bool, len(keep))
	for _, id := range keep {
		kept[id] = true
	}

	rows, err := tx.QueryContext(ctx,
		"SELECT id, title FROM points WHERE collection = ?", collection)
	if err != nil {
		return fmt.Errorf("listing points of %q: %w", title, err)
	}
	var stale []string
	for rows.Next() {
		var id, t string
		if err := rows.Scan(&id, &t); err != nil {
			rows.Close()
			return fmt.Errorf("scanning point: %w", err)
		}
		if strings.EqualFold(t, title) && !kept[id] {
			stale = append(stale, id)
		}
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return fmt.Errorf("listing points of %q: %w", title, err)
	}

	for _, id := range stale {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM points WHERE collection = ? AND id = ?", collection, id); err != nil {
			return fmt.Errorf("deleting point %s: %w", id, err)
		}
	}
	return tx.Commit()
}

// Count returns the exact number of points in a collection.
func (s *Store) Count(ctx context.Context, collection string) (int, error) {
	if _, err := s.GetCollection(ctx, collection); err != nil {
		return 0, err
	}
	var n int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM points WHERE collection = ?", collection).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting points: %w", err)
	}
	return n, nil
}

// float32SliceToBytes encodes a vector as little-endian IEEE 754 values.
func float32SliceToBytes(floats []float32) []byte {
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

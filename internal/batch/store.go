package batch

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"takeout/internal/config"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; stale databases are rejected rather than migrated in place.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// ErrNotFound indicates no chunk matched the lookup.
var ErrNotFound = errors.New("chunk not found")

// Store manages chunk persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the chunk database under the configured
// log directory.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(filepath.Join(cfg.Paths.LogDir, "chunks.db"))
}

// OpenPath opens the chunk database at an explicit location.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the on-disk location of the database.
func (s *Store) Path() string { return s.path }

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		return nil
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (run 'takeout queue clear' or delete the database)",
			ErrSchemaMismatch, version, schemaVersion)
	}
	return nil
}

// NewChunk inserts a pending chunk for the given batch with the provided
// member paths.
func (s *Store) NewChunk(ctx context.Context, batchID string, members []string) (*Chunk, error) {
	if len(members) == 0 {
		return nil, errors.New("chunk requires at least one member")
	}
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)
	id := uuid.NewString()

	membersJSON, err := json.Marshal(members)
	if err != nil {
		return nil, fmt.Errorf("marshal members: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO chunks (id, batch_id, members_json, status, attempts, last_error, created_at, updated_at)
         VALUES (?, ?, ?, ?, 0, NULL, ?, ?)`,
		id, batchID, string(membersJSON), StatusPending, timestamp, timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert chunk: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID returns the chunk with the given identifier.
func (s *Store) GetByID(ctx context.Context, id string) (*Chunk, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id)
	chunk, err := scanChunk(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return chunk, err
}

// NextPending returns the oldest pending chunk for the batch, or nil when
// none remain.
func (s *Store) NextPending(ctx context.Context, batchID string) (*Chunk, error) {
	row := s.db.QueryRowContext(ctx,
		selectColumns+" WHERE batch_id = ? AND status = ? ORDER BY created_at, id LIMIT 1",
		batchID, StatusPending,
	)
	chunk, err := scanChunk(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return chunk, err
}

// Update persists the chunk's mutable fields.
func (s *Store) Update(ctx context.Context, chunk *Chunk) error {
	if chunk == nil {
		return errors.New("nil chunk")
	}
	if !chunk.Status.Valid() {
		return fmt.Errorf("invalid chunk status %q", chunk.Status)
	}
	membersJSON, err := json.Marshal(chunk.Members)
	if err != nil {
		return fmt.Errorf("marshal members: %w", err)
	}
	chunk.UpdatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx,
		`UPDATE chunks SET members_json = ?, status = ?, attempts = ?, last_error = ?, updated_at = ?
         WHERE id = ?`,
		string(membersJSON), chunk.Status, chunk.Attempts,
		nullableString(chunk.LastError), chunk.UpdatedAt.Format(time.RFC3339Nano),
		chunk.ID,
	)
	if err != nil {
		return fmt.Errorf("update chunk: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all chunks for the batch in creation order. An empty batchID
// lists every chunk.
func (s *Store) List(ctx context.Context, batchID string) ([]*Chunk, error) {
	query := selectColumns
	var args []any
	if batchID != "" {
		query += " WHERE batch_id = ?"
		args = append(args, batchID)
	}
	query += " ORDER BY created_at, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list chunks: %w", err)
	}
	defer rows.Close()

	var chunks []*Chunk
	for rows.Next() {
		chunk, err := scanChunk(rows)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}
	return chunks, rows.Err()
}

// Counts returns the number of chunks per status for the batch.
func (s *Store) Counts(ctx context.Context, batchID string) (map[Status]int, error) {
	query := "SELECT status, COUNT(1) FROM chunks"
	var args []any
	if batchID != "" {
		query += " WHERE batch_id = ?"
		args = append(args, batchID)
	}
	query += " GROUP BY status"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count chunks: %w", err)
	}
	defer rows.Close()

	counts := make(map[Status]int)
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// ResetStuck returns chunks stranded in the writing state to pending, for
// recovery after an interrupted run. It reports how many were reset.
func (s *Store) ResetStuck(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE chunks SET status = ?, updated_at = ? WHERE status = ?",
		StatusPending, time.Now().UTC().Format(time.RFC3339Nano), StatusWriting,
	)
	if err != nil {
		return 0, fmt.Errorf("reset stuck chunks: %w", err)
	}
	return res.RowsAffected()
}

// Clear removes every chunk for the batch; an empty batchID clears all.
func (s *Store) Clear(ctx context.Context, batchID string) error {
	query := "DELETE FROM chunks"
	var args []any
	if batchID != "" {
		query += " WHERE batch_id = ?"
		args = append(args, batchID)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear chunks: %w", err)
	}
	return nil
}

const selectColumns = `SELECT id, batch_id, members_json, status, attempts, last_error, created_at, updated_at FROM chunks`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChunk(row rowScanner) (*Chunk, error) {
	var (
		chunk       Chunk
		membersJSON string
		lastError   sql.NullString
		createdAt   string
		updatedAt   string
	)
	if err := row.Scan(&chunk.ID, &chunk.BatchID, &membersJSON, &chunk.Status,
		&chunk.Attempts, &lastError, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(membersJSON), &chunk.Members); err != nil {
		return nil, fmt.Errorf("unmarshal members: %w", err)
	}
	chunk.LastError = lastError.String
	var err error
	if chunk.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if chunk.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &chunk, nil
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

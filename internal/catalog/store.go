package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Store provides catalog access backed by a SQLite database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open opens the catalog database at dbPath, creating it and its parent
// directory if needed, and applies the schema.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// busy_timeout must come first so later statements wait on locks.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Resolve looks up a single entry by identifier. Returns ErrEntryNotFound
// for identifiers with no catalog record.
func (s *Store) Resolve(ctx context.Context, id int64) (Entry, error) {
	query := `SELECT id, name, kind, parent_id FROM entries WHERE id = ?`

	var e Entry
	var kind string
	err := s.db.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.Name, &kind, &e.ParentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, fmt.Errorf("resolve entry %d: %w", id, ErrEntryNotFound)
		}
		return Entry{}, fmt.Errorf("resolve entry %d: %w", id, err)
	}
	e.Kind = Kind(kind)

	return e, nil
}

// Children returns the entries whose parent is parentID, in insertion order.
// No sorting is imposed; the export layout depends on this order being
// stable across calls, which rowid order gives us.
func (s *Store) Children(ctx context.Context, parentID int64) ([]Entry, error) {
	query := `SELECT id, name, kind, parent_id FROM entries WHERE parent_id = ? ORDER BY rowid`

	rows, err := s.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("query children of %d: %w", parentID, err)
	}
	defer rows.Close()

	var children []Entry
	for rows.Next() {
		var e Entry
		var kind string
		if err := rows.Scan(&e.ID, &e.Name, &kind, &e.ParentID); err != nil {
			return nil, fmt.Errorf("scan child row: %w", err)
		}
		e.Kind = Kind(kind)
		children = append(children, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate child rows: %w", err)
	}

	return children, nil
}

// InterestingHits returns one Hit per flagged entry, carrying every set
// label recorded for it. Hits are ordered by the first classification
// attribute that flagged each entry; labels within a hit keep attribute
// order.
func (s *Store) InterestingHits(ctx context.Context) ([]Hit, error) {
	query := `SELECT a.entry_id, attr.value_text
		FROM attributes attr
		JOIN artifacts a ON attr.artifact_id = a.id
		WHERE a.type = ? AND attr.type = ?
		ORDER BY attr.id`

	rows, err := s.db.QueryContext(ctx, query, ArtifactInterestingItem, AttributeSetName)
	if err != nil {
		return nil, fmt.Errorf("query interesting hits: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	index := make(map[int64]int)
	for rows.Next() {
		var entryID int64
		var label string
		if err := rows.Scan(&entryID, &label); err != nil {
			return nil, fmt.Errorf("scan hit row: %w", err)
		}

		if i, ok := index[entryID]; ok {
			hits[i].Labels = append(hits[i].Labels, label)
			continue
		}
		index[entryID] = len(hits)
		hits = append(hits, Hit{EntryID: entryID, Labels: []string{label}})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hit rows: %w", err)
	}

	return hits, nil
}

// CopyContent writes the recovered content of the given entry to destPath,
// creating parent directories and truncating any existing file. Entries
// without recorded content produce an empty file, matching how sparse or
// unrecoverable files appear in the source image.
func (s *Store) CopyContent(ctx context.Context, id int64, destPath string) error {
	query := `SELECT content FROM entry_data WHERE entry_id = ?`

	var content []byte
	err := s.db.QueryRowContext(ctx, query, id).Scan(&content)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("read content of entry %d: %w", id, err)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("create directory for %s: %w", destPath, err)
	}
	if err := os.WriteFile(destPath, content, 0644); err != nil {
		return fmt.Errorf("write %s: %w", destPath, err)
	}

	return nil
}

// InsertEntry adds an entry to the catalog. Used by the seed command and
// by tests building fixture catalogs.
func (s *Store) InsertEntry(ctx context.Context, e Entry) error {
	query := `INSERT INTO entries (id, name, kind, parent_id) VALUES (?, ?, ?, ?)`

	if _, err := s.db.ExecContext(ctx, query, e.ID, e.Name, string(e.Kind), e.ParentID); err != nil {
		return fmt.Errorf("insert entry %d: %w", e.ID, err)
	}
	return nil
}

// AttachContent records recovered content for a file entry.
func (s *Store) AttachContent(ctx context.Context, id int64, content []byte) error {
	query := `INSERT OR REPLACE INTO entry_data (entry_id, content) VALUES (?, ?)`

	if _, err := s.db.ExecContext(ctx, query, id, content); err != nil {
		return fmt.Errorf("attach content to entry %d: %w", id, err)
	}
	return nil
}

// FlagInteresting records a classification hit: an interesting_item artifact
// on the entry with one set_name attribute per label.
func (s *Store) FlagInteresting(ctx context.Context, entryID int64, labels ...string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO artifacts (entry_id, type) VALUES (?, ?)`,
		entryID, ArtifactInterestingItem)
	if err != nil {
		return fmt.Errorf("insert artifact: %w", err)
	}

	artifactID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get artifact id: %w", err)
	}

	for _, label := range labels {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO attributes (artifact_id, type, value_text) VALUES (?, ?, ?)`,
			artifactID, AttributeSetName, label)
		if err != nil {
			return fmt.Errorf("insert attribute: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

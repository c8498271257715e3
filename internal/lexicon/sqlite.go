package lexicon

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteArchive persists lexicon documents in a SQLite database. Entries are
// stored one row each, in document order; everything else lives in a
// metadata row.
type SQLiteArchive struct {
	db *sql.DB
	mu sync.RWMutex
}

const metaKeyLexicon = "lexicon"

// OpenSQLiteArchive opens (creating if needed) an archive.
// Use ":memory:" for an in-memory database.
func OpenSQLiteArchive(dbPath string) (*SQLiteArchive, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// A single connection keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)

	a := &SQLiteArchive{db: db}
	if err := a.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return a, nil
}

func (a *SQLiteArchive) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		guid TEXT NOT NULL UNIQUE,
		headword TEXT NOT NULL,
		payload BLOB NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_entries_headword ON entries(headword);
	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	);
	`
	_, err := a.db.Exec(schema)
	return err
}

// Close releases the database.
func (a *SQLiteArchive) Close() error {
	return a.db.Close()
}

// Save replaces the archive contents with doc.
func (a *SQLiteArchive) Save(ctx context.Context, doc *Document) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM entries"); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM meta"); err != nil {
		return fmt.Errorf("clear meta: %w", err)
	}

	meta := *doc
	meta.Entries = nil
	metaJSON, err := json.Marshal(&meta)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO meta (key, payload) VALUES (?, ?)", metaKeyLexicon, metaJSON); err != nil {
		return fmt.Errorf("insert metadata: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO entries (guid, headword, payload) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	analysis := firstVernacular(doc.WritingSystems)
	for _, e := range doc.Entries {
		payload, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("marshal entry %s: %w", e.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, e.ID, e.HeadWord(analysis), payload); err != nil {
			return fmt.Errorf("insert entry %s: %w", e.ID, err)
		}
	}
	return tx.Commit()
}

// Load reads the archived document back in its saved order.
func (a *SQLiteArchive) Load(ctx context.Context) (*Document, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var doc Document
	var metaJSON []byte
	err := a.db.QueryRowContext(ctx, "SELECT payload FROM meta WHERE key = ?", metaKeyLexicon).Scan(&metaJSON)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return nil, fmt.Errorf("query metadata: %w", err)
	default:
		if err := json.Unmarshal(metaJSON, &doc); err != nil {
			return nil, fmt.Errorf("unmarshal metadata: %w", err)
		}
	}

	rows, err := a.db.QueryContext(ctx, "SELECT payload FROM entries ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		var e Entry
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, fmt.Errorf("unmarshal entry: %w", err)
		}
		doc.Entries = append(doc.Entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return &doc, nil
}

// Count returns the number of archived entries.
func (a *SQLiteArchive) Count(ctx context.Context) (int, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	var n int
	if err := a.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries").Scan(&n); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}

func firstVernacular(wss []WritingSystem) string {
	for _, ws := range wss {
		if ws.Vernacular {
			return ws.Code
		}
	}
	if len(wss) > 0 {
		return wss[0].Code
	}
	return ""
}

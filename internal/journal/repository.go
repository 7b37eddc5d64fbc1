package journal

import (
	"database/sql"
	"fmt"
	"time"

	"backdrop/internal/database"
)

// Repository defines the persistence interface for resolution entries.
type Repository interface {
	Save(entry *Entry) error
	List(limit int) ([]Entry, error)
	ListByTrigger(trigger string, limit int) ([]Entry, error)
	Clear() (int64, error)
	Prune(olderThan time.Duration) (int64, error)
	Close() error
}

// SQLiteRepository implements Repository backed by a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// timeLayout is fixed-width so that the string comparisons in the
// ORDER BY and prune queries agree with chronological order;
// RFC3339Nano trims trailing zeros, which breaks lexicographic
// ordering inside a second.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Open creates or opens the journal at the default path.
func Open() (*SQLiteRepository, error) {
	path, err := database.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}
	return OpenAt(path)
}

// OpenAt creates or opens a SQLite database at the given path.
func OpenAt(path string) (*SQLiteRepository, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}

	r := &SQLiteRepository{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *SQLiteRepository) migrate() error {
	const ddl = `
        CREATE TABLE IF NOT EXISTS resolution_log (
            id          INTEGER PRIMARY KEY AUTOINCREMENT,
            timestamp   TEXT    NOT NULL,
            "trigger"   TEXT    NOT NULL,
            path        TEXT    NOT NULL DEFAULT '',
            mode        TEXT    NOT NULL DEFAULT '',
            class       TEXT    NOT NULL DEFAULT '',
            width       INTEGER NOT NULL DEFAULT 0,
            ref         TEXT    NOT NULL DEFAULT '',
            duration_ms INTEGER NOT NULL DEFAULT 0
        );
        CREATE INDEX IF NOT EXISTS idx_resolution_log_timestamp ON resolution_log(timestamp);
        CREATE INDEX IF NOT EXISTS idx_resolution_log_trigger ON resolution_log("trigger");
    `
	if _, err := r.db.Exec(ddl); err != nil {
		return fmt.Errorf("journal: migration failed: %w", err)
	}
	return nil
}

// Save inserts a new entry.
func (r *SQLiteRepository) Save(entry *Entry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	result, err := r.db.Exec(`
        INSERT INTO resolution_log (timestamp, "trigger", path, mode, class, width, ref, duration_ms)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.Timestamp.UTC().Format(timeLayout), entry.Trigger, entry.Path,
		entry.Mode, entry.Class, entry.Width, entry.Ref, entry.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("journal: insert failed: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("journal: failed to get last insert ID: %w", err)
	}
	entry.ID = id
	return nil
}

// List returns the most recent n entries.
func (r *SQLiteRepository) List(limit int) ([]Entry, error) {
	rows, err := r.db.Query(`
        SELECT id, timestamp, "trigger", path, mode, class, width, ref, duration_ms
        FROM resolution_log ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// ListByTrigger returns the most recent n entries for a trigger.
func (r *SQLiteRepository) ListByTrigger(trigger string, limit int) ([]Entry, error) {
	rows, err := r.db.Query(`
        SELECT id, timestamp, "trigger", path, mode, class, width, ref, duration_ms
        FROM resolution_log WHERE "trigger" = ? ORDER BY timestamp DESC LIMIT ?`, trigger, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// Clear deletes every entry.
func (r *SQLiteRepository) Clear() (int64, error) {
	result, err := r.db.Exec(`DELETE FROM resolution_log`)
	if err != nil {
		return 0, fmt.Errorf("journal: delete failed: %w", err)
	}
	return result.RowsAffected()
}

// Prune deletes entries older than the given duration.
func (r *SQLiteRepository) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan).Format(timeLayout)
	result, err := r.db.Exec(`DELETE FROM resolution_log WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("journal: delete failed: %w", err)
	}
	return result.RowsAffected()
}

// Close releases database resources.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func scanRows(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var entry Entry
		var timestampStr string
		err := rows.Scan(
			&entry.ID, &timestampStr, &entry.Trigger, &entry.Path,
			&entry.Mode, &entry.Class, &entry.Width, &entry.Ref, &entry.DurationMs,
		)
		if err != nil {
			return nil, fmt.Errorf("journal: scan failed: %w", err)
		}
		entry.Timestamp, _ = time.Parse(time.RFC3339Nano, timestampStr)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

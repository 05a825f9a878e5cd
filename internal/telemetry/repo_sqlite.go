package telemetry

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRepository keeps the event log in a local SQLite database so it
// survives restarts without bloating the state document.
type SQLiteRepository struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		type TEXT NOT NULL,
		timestamp DATETIME NOT NULL,
		metadata TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_events_timestamp ON events(timestamp);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate telemetry db: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) RecordEvent(eventType EventType, metadata EventMetadata) error {
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(
		`INSERT INTO events (type, timestamp, metadata) VALUES (?, ?, ?)`,
		string(eventType), time.Now().UTC().Format(time.RFC3339Nano), string(metadataJSON),
	)
	if err != nil {
		return fmt.Errorf("record event: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetEvents(since time.Time, eventTypes []EventType) ([]Event, error) {
	query := `SELECT id, type, timestamp, metadata FROM events WHERE timestamp >= ?`
	args := []any{since.UTC().Format(time.RFC3339Nano)}

	if len(eventTypes) > 0 {
		placeholders := make([]string, len(eventTypes))
		for i, t := range eventTypes {
			placeholders[i] = "?"
			args = append(args, string(t))
		}
		query += ` AND type IN (` + strings.Join(placeholders, ",") + `)`
	}
	query += ` ORDER BY id`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	result := make([]Event, 0)
	for rows.Next() {
		var (
			e  Event
			ts string
		)
		if err := rows.Scan(&e.ID, &e.Type, &ts, &e.Metadata); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("bad event timestamp %q: %w", ts, err)
		}
		e.Timestamp = t
		result = append(result, e)
	}
	return result, rows.Err()
}

func (r *SQLiteRepository) Clear() error {
	_, err := r.db.Exec(`DELETE FROM events`)
	return err
}

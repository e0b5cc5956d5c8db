// Package store provides a SQLite-backed cache for parsed conversation records.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/chatwrap/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache stores the parsed rows of conversation.csv so unchanged files are
// not re-parsed on every start.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// FileInfo holds the tracked mtime and size for a file.
type FileInfo struct {
	MtimeNs     int64
	SizeBytes   int64
	ParseErrors int
}

// Matches reports whether the tracked entry still describes a file with the
// given mtime and size.
func (fi FileInfo) Matches(mtimeNs, sizeBytes int64) bool {
	return fi.MtimeNs == mtimeNs && fi.SizeBytes == sizeBytes
}

// TrackedFile returns the tracking entry for filePath, if any.
func (c *Cache) TrackedFile(filePath string) (FileInfo, bool, error) {
	var fi FileInfo
	err := c.db.QueryRow(
		"SELECT mtime_ns, size_bytes, parse_errors FROM file_tracker WHERE file_path = ?", filePath,
	).Scan(&fi.MtimeNs, &fi.SizeBytes, &fi.ParseErrors)
	if errors.Is(err, sql.ErrNoRows) {
		return FileInfo{}, false, nil
	}
	if err != nil {
		return FileInfo{}, false, err
	}
	return fi, true, nil
}

// SaveConversations replaces every cached row for filePath and records its
// tracking info in one transaction.
func (c *Cache) SaveConversations(filePath string, records []model.ConversationRecord, parseErrors int, mtimeNs, sizeBytes int64) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM conversations WHERE file_path = ?", filePath); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO conversations
		(file_path, ord, uuid, name, start_time, end_time, duration_secs,
		 dialogue_turns, input_tokens, output_tokens)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for i, r := range records {
		endTime := ""
		if !r.EndTime.IsZero() {
			endTime = r.EndTime.Format(time.RFC3339Nano)
		}
		_, err = stmt.Exec(filePath, i, r.UUID, r.Name, r.StartTime.Format(time.RFC3339Nano), endTime,
			r.DurationSecs, r.DialogueTurns, r.InputTokens, r.OutputTokens)
		if err != nil {
			return err
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.Exec(`INSERT OR REPLACE INTO file_tracker (file_path, mtime_ns, size_bytes, parse_errors, parsed_at)
		VALUES (?, ?, ?, ?, ?)`, filePath, mtimeNs, sizeBytes, parseErrors, now)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// LoadConversations reads cached rows for filePath in their original order.
func (c *Cache) LoadConversations(filePath string) ([]model.ConversationRecord, error) {
	rows, err := c.db.Query(`SELECT
		uuid, name, start_time, end_time, duration_secs, dialogue_turns, input_tokens, output_tokens
		FROM conversations WHERE file_path = ? ORDER BY ord`, filePath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []model.ConversationRecord
	for rows.Next() {
		var r model.ConversationRecord
		var uuid, name, endStr sql.NullString
		var startStr string

		err := rows.Scan(&uuid, &name, &startStr, &endStr, &r.DurationSecs,
			&r.DialogueTurns, &r.InputTokens, &r.OutputTokens)
		if err != nil {
			return nil, err
		}
		r.UUID = uuid.String
		r.Name = name.String
		if r.StartTime, err = time.Parse(time.RFC3339Nano, startStr); err != nil {
			return nil, fmt.Errorf("cached start_time %q: %w", startStr, err)
		}
		if endStr.Valid && endStr.String != "" {
			r.EndTime, _ = time.Parse(time.RFC3339Nano, endStr.String)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// DeleteFile removes a file's rows and tracking entry.
func (c *Cache) DeleteFile(filePath string) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM conversations WHERE file_path = ?", filePath); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM file_tracker WHERE file_path = ?", filePath); err != nil {
		return err
	}
	return tx.Commit()
}

// ConversationCount returns the number of cached rows across all files.
func (c *Cache) ConversationCount() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM conversations").Scan(&count)
	return count, err
}

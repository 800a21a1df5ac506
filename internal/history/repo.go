package history

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/BenjaminIrwin/scatexparser/internal/apperr"
)

// Entry is one recorded parse. Start and End are nil for inputs whose
// expression could not be resolved against an anchor.
type Entry struct {
	ID         int64      `json:"id"`
	Checksum   string     `json:"-"`
	Input      string     `json:"input"`
	Locale     string     `json:"locale"`
	Period     string     `json:"period"`
	Expression string     `json:"expression"`
	Resolved   bool       `json:"resolved"`
	Start      *time.Time `json:"start,omitempty"`
	End        *time.Time `json:"end,omitempty"`
	Hits       int        `json:"hits"`
	CreatedAt  time.Time  `json:"created_at"`
	LastSeenAt time.Time  `json:"last_seen_at"`
}

// Record inserts the entry or, when its checksum is already present, bumps
// the existing row's hit counter and last-seen timestamp. The stored row's
// id is returned either way.
func (db *DB) Record(e Entry) (int64, error) {
	now := time.Now().UTC()
	_, err := db.conn.Exec(`
		INSERT INTO parses (checksum, input, locale, period, expression, resolved, start_at, end_at, created_at, last_seen_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(checksum) DO UPDATE SET
			hits         = hits + 1,
			last_seen_at = excluded.last_seen_at
	`, e.Checksum, e.Input, e.Locale, e.Period, e.Expression, e.Resolved, e.Start, e.End, now, now)
	if err != nil {
		return 0, fmt.Errorf("history: record: %w", err)
	}
	// LastInsertId is unreliable across the upsert's update path, so the
	// row id is always read back by checksum.
	var id int64
	if err := db.conn.QueryRow(`SELECT id FROM parses WHERE checksum = ?`, e.Checksum).Scan(&id); err != nil {
		return 0, fmt.Errorf("history: record lookup: %w", err)
	}
	return id, nil
}

// Get returns the entry with the given id, or apperr.ErrNotFound.
func (db *DB) Get(id int64) (Entry, error) {
	row := db.conn.QueryRow(`
		SELECT id, checksum, input, locale, period, expression, resolved, start_at, end_at, hits, created_at, last_seen_at
		FROM parses WHERE id = ?
	`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, apperr.ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("history: get: %w", err)
	}
	return e, nil
}

// List returns entries ordered by most recently seen. A non-empty locale
// restricts the result; limit <= 0 means no limit.
func (db *DB) List(locale string, limit, offset int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `
		SELECT id, checksum, input, locale, period, expression, resolved, start_at, end_at, hits, created_at, last_seen_at
		FROM parses
	`
	args := []any{}
	if locale != "" {
		query += ` WHERE locale = ?`
		args = append(args, locale)
	}
	query += ` ORDER BY last_seen_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("history: list scan: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Count returns the number of stored entries.
func (db *DB) Count() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM parses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("history: count: %w", err)
	}
	return n, nil
}

// Purge deletes every stored entry and reports how many were removed.
func (db *DB) Purge() (int64, error) {
	res, err := db.conn.Exec(`DELETE FROM parses`)
	if err != nil {
		return 0, fmt.Errorf("history: purge: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var (
		e          Entry
		start, end sql.NullTime
	)
	err := s.Scan(&e.ID, &e.Checksum, &e.Input, &e.Locale, &e.Period, &e.Expression,
		&e.Resolved, &start, &end, &e.Hits, &e.CreatedAt, &e.LastSeenAt)
	if err != nil {
		return Entry{}, err
	}
	if start.Valid {
		t := start.Time
		e.Start = &t
	}
	if end.Valid {
		t := end.Time
		e.End = &t
	}
	return e, nil
}

// Package sqlite provides a SQLite-backed implementation of
// checkoutlog.Repository.
//
// WAL mode is enabled on Open so the checkout handler can write while a
// status or ops query reads concurrently.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jcamposr/storefront-gateway/internal/checkoutlog"

	// Pure-Go SQLite driver: no CGO, builds cleanly in minimal images.
	_ "modernc.org/sqlite"
)

// schema is applied once on Open. The table is append-only: each row is an
// immutable event; the newest row per attempt_id is the current state.
const schema = `
CREATE TABLE IF NOT EXISTS checkout_logs (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,

    -- One checkout attempt spans several rows (one per transition).
    attempt_id      TEXT        NOT NULL,

    -- Visitor session that triggered the attempt.
    session_id      TEXT        NOT NULL DEFAULT '',

    status          TEXT        NOT NULL,

    -- JSON order payload. Written once on STARTED, NULL after.
    payload         TEXT,

    -- JSON array of error strings.
    error_messages  TEXT        NOT NULL DEFAULT '[]',

    -- W3C trace/span IDs of the active span, for trace correlation.
    trace_id        TEXT        NOT NULL DEFAULT '',
    span_id         TEXT        NOT NULL DEFAULT '',

    -- RFC3339 stored as TEXT, SQLite idiom.
    created_at      TEXT        NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_checkout_logs_attempt_id ON checkout_logs(attempt_id, created_at);
CREATE INDEX IF NOT EXISTS idx_checkout_logs_trace_id ON checkout_logs(trace_id);
`

// Repository is the SQLite implementation of checkoutlog.Repository.
type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
func Open(path string) (*Repository, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}

	return &Repository{db: db}, nil
}

// Close releases the database connection. Call it with defer in main().
func (r *Repository) Close() error {
	return r.db.Close()
}

// Save inserts a new log entry. Safe to call concurrently.
func (r *Repository) Save(ctx context.Context, entry *checkoutlog.Entry) error {
	const q = `
		INSERT INTO checkout_logs
			(attempt_id, session_id, status, payload, error_messages, trace_id, span_id, created_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.AttemptID,
		entry.SessionID,
		string(entry.Status),
		nullableString(entry.Payload),
		entry.ErrorMessages,
		entry.TraceID,
		entry.SpanID,
		entry.CreatedAt.UTC().Format("2006-01-02T15:04:05.999999999Z"),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save checkout log for %q: %w", entry.AttemptID, err)
	}
	return nil
}

// GetLatest returns the most recent entry for an attempt.
func (r *Repository) GetLatest(ctx context.Context, attemptID string) (*checkoutlog.Entry, error) {
	const q = `
		SELECT attempt_id, session_id, status, COALESCE(payload,''), error_messages,
		       trace_id, span_id, created_at
		FROM   checkout_logs
		WHERE  attempt_id = ?
		ORDER  BY created_at DESC, id DESC
		LIMIT  1`

	row := r.db.QueryRowContext(ctx, q, attemptID)

	var entry checkoutlog.Entry
	var createdAt string
	err := row.Scan(
		&entry.AttemptID,
		&entry.SessionID,
		&entry.Status,
		&entry.Payload,
		&entry.ErrorMessages,
		&entry.TraceID,
		&entry.SpanID,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("sqlite: checkout attempt %q not found", attemptID)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get latest for %q: %w", attemptID, err)
	}

	entry.CreatedAt, err = parseRFC3339(createdAt)
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// nullableString maps "" to NULL so non-STARTED rows keep the payload
// column clean.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

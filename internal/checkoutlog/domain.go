// Package checkoutlog defines an append-only audit trail of checkout
// attempts.
//
// Each attempt produces one row per state transition: STARTED when the
// payload is submitted, then exactly one of ACCEPTED, REJECTED, or FAILED.
// The trace_id column lets you jump from a row straight to the matching
// distributed trace.
package checkoutlog

import "time"

// Status is the lifecycle state of a checkout attempt.
type Status string

const (
	// StatusStarted is written before the order request leaves the process.
	StatusStarted Status = "STARTED"
	// StatusAccepted means the backend answered the request successfully.
	StatusAccepted Status = "ACCEPTED"
	// StatusRejected means the backend answered with a business rejection.
	StatusRejected Status = "REJECTED"
	// StatusFailed means the request itself failed (network, non-2xx, parse).
	StatusFailed Status = "FAILED"
)

// Entry is a single row in the checkout_logs table.
type Entry struct {
	// AttemptID identifies one checkout attempt across its rows.
	AttemptID string

	// SessionID links the attempt back to the visitor session.
	SessionID string

	// Status is the lifecycle state recorded by this row.
	Status Status

	// Payload is the JSON-serialised order body. Written once on STARTED,
	// empty on later rows.
	Payload string

	// ErrorMessages is a JSON array of failure details, "[]" when none.
	ErrorMessages string

	// TraceID is the W3C trace ID of the span active when the row was
	// written; empty when no span was active.
	TraceID string

	// SpanID pinpoints the span within the trace.
	SpanID string

	// CreatedAt is the wall-clock time of this row.
	CreatedAt time.Time
}

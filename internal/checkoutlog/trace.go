package checkoutlog

import (
	"context"
	"encoding/json"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// NewEntry builds an Entry for the given transition, stamping it with the
// trace and span IDs of the span active in ctx (empty when there is none,
// e.g. in unit tests).
func NewEntry(ctx context.Context, attemptID, sessionID string, status Status, payload string, errs []string) *Entry {
	traceID, spanID := traceIDs(ctx)

	errJSON := "[]"
	if len(errs) > 0 {
		if b, err := json.Marshal(errs); err == nil {
			errJSON = string(b)
		}
	}

	return &Entry{
		AttemptID:     attemptID,
		SessionID:     sessionID,
		Status:        status,
		Payload:       payload,
		ErrorMessages: errJSON,
		TraceID:       traceID,
		SpanID:        spanID,
		CreatedAt:     time.Now().UTC(),
	}
}

func traceIDs(ctx context.Context) (traceID, spanID string) {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return "", ""
	}
	return sc.TraceID().String(), sc.SpanID().String()
}

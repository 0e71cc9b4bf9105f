package checkoutlog

import "context"

// Repository is the port for persisting checkout log entries. The HTTP
// handler depends on this abstraction and treats a nil Repository as
// "logging disabled", so the audit trail stays strictly optional.
type Repository interface {
	// Save appends a row. The table is append-only, never an upsert.
	Save(ctx context.Context, entry *Entry) error
}

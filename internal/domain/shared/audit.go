package shared

import "context"

// AuditLog records human-readable lines describing mutating operations.
// Implementations must be safe for concurrent use.
type AuditLog interface {
	Append(ctx context.Context, text string) error
}

// NoOpAuditLog discards all entries. Useful for tests.
type NoOpAuditLog struct{}

// Append implements AuditLog
func (NoOpAuditLog) Append(ctx context.Context, text string) error { return nil }

package bootstrap

import "context"

// AuditLog is a single operational audit entry. Meta carries free-form
// context such as the signal that triggered a shutdown.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

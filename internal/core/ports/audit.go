package ports

import (
	"context"

	"github.com/neurocare-ai/portal/internal/core/domain"
)

// AuditRepository persists audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry domain.AuditEntry) error
}

// AuditRecorder accepts audit entries for asynchronous persistence. Record
// must not block the request path.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}

// AuditProcessor handles one dequeued audit entry.
type AuditProcessor interface {
	Process(ctx context.Context, entry domain.AuditEntry) error
}

// AuditReader queries persisted audit entries.
type AuditReader interface {
	RecentByActor(ctx context.Context, actor string, limit int64) ([]domain.AuditEntry, error)
}

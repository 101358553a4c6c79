package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/neurocare-ai/portal/internal/core/domain"
	"github.com/neurocare-ai/portal/internal/core/ports"
	"github.com/neurocare-ai/portal/internal/pkg/metrics"
)

// AuditService persists clinical audit entries dequeued by the dispatcher.
type AuditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) *AuditService {
	return &AuditService{repo: repo, log: log}
}

// Process stamps and stores a single entry.
func (s *AuditService) Process(ctx context.Context, entry domain.AuditEntry) error {
	if entry.Action == "" {
		return fmt.Errorf("audit entry without action")
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		metrics.AuditErrorsTotal.WithLabelValues("insert_failed").Inc()
		return fmt.Errorf("insert audit entry: %w", err)
	}

	outcome := "failure"
	if entry.Success {
		outcome = "success"
	}
	metrics.AuditRecordsTotal.WithLabelValues(entry.Action, outcome).Inc()

	s.log.Debug().
		Str("actor", entry.Actor).
		Str("action", entry.Action).
		Str("target", entry.Target).
		Bool("success", entry.Success).
		Msg("audit entry recorded")
	return nil
}

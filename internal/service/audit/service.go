package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Tesseract-Nexus/admin-bff/internal/domain"
	"github.com/Tesseract-Nexus/admin-bff/internal/pkg/logger"
)

// Service writes audit entries asynchronously and serves audit listings.
// A nil *Service is valid and records nothing, so callers never need a
// feature flag at the call site.
type Service struct {
	repo    Repository
	timeout time.Duration
}

// NewService creates an audit service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, timeout: 5 * time.Second}
}

// Record persists an audit entry in the background. The caller's context is
// deliberately not used: the mutation response must not wait on the audit
// store, and a cancelled request should still leave a trace.
func (s *Service) Record(entry domain.AuditEntry) {
	if s == nil {
		return
	}
	entry.ID = uuid.New().String()
	entry.CreatedAt = time.Now().UTC()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if err := s.repo.Insert(ctx, &entry); err != nil {
			logger.Warn("audit insert failed",
				"tenantId", entry.TenantID,
				"entityKind", entry.EntityKind,
				"action", entry.Action,
				"error", err.Error())
		}
	}()
}

// List returns audit entries for a tenant, newest first.
func (s *Service) List(ctx context.Context, tenantID string, f ListFilter) ([]domain.AuditEntry, int, error) {
	if s == nil {
		return []domain.AuditEntry{}, 0, nil
	}
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
	return s.repo.List(ctx, tenantID, f)
}

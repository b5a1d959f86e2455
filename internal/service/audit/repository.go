package audit

import (
	"context"

	"github.com/Tesseract-Nexus/admin-bff/internal/domain"
)

// Repository persists and queries audit entries.
type Repository interface {
	Insert(ctx context.Context, e *domain.AuditEntry) error
	List(ctx context.Context, tenantID string, f ListFilter) ([]domain.AuditEntry, int, error)
}

// ListFilter narrows an audit listing.
type ListFilter struct {
	EntityKind string
	Action     string
	Limit      int
	Offset     int
}

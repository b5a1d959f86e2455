// Package postgres contains the SQL-backed repositories.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Tesseract-Nexus/admin-bff/internal/domain"
	"github.com/Tesseract-Nexus/admin-bff/internal/service/audit"
)

// AuditRepo implements audit.Repository against PostgreSQL.
type AuditRepo struct{ db *sql.DB }

// NewAuditRepo creates a Postgres-backed audit repository.
func NewAuditRepo(db *sql.DB) *AuditRepo { return &AuditRepo{db: db} }

func (r *AuditRepo) Insert(ctx context.Context, e *domain.AuditEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO bff_audit_log
			(id, tenant_id, actor_id, entity_kind, entity_id, action, outcome, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, e.ID, e.TenantID, e.ActorID, e.EntityKind, e.EntityID, e.Action, e.Outcome, e.Detail, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepo) List(ctx context.Context, tenantID string, f audit.ListFilter) ([]domain.AuditEntry, int, error) {
	countQ := `SELECT COUNT(*) FROM bff_audit_log WHERE tenant_id = $1`
	args := []interface{}{tenantID}
	idx := 2

	if f.EntityKind != "" {
		countQ += fmt.Sprintf(" AND entity_kind = $%d", idx)
		args = append(args, f.EntityKind)
		idx++
	}
	if f.Action != "" {
		countQ += fmt.Sprintf(" AND action = $%d", idx)
		args = append(args, f.Action)
		idx++
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit entries: %w", err)
	}

	q := `
		SELECT id, tenant_id, actor_id, entity_kind, entity_id, action,
		       outcome, COALESCE(detail,''), created_at
		FROM bff_audit_log
		WHERE tenant_id = $1`

	qArgs := []interface{}{tenantID}
	qIdx := 2
	if f.EntityKind != "" {
		q += fmt.Sprintf(" AND entity_kind = $%d", qIdx)
		qArgs = append(qArgs, f.EntityKind)
		qIdx++
	}
	if f.Action != "" {
		q += fmt.Sprintf(" AND action = $%d", qIdx)
		qArgs = append(qArgs, f.Action)
		qIdx++
	}
	q += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", qIdx, qIdx+1)
	qArgs = append(qArgs, f.Limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, q, qArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.AuditEntry{}
	for rows.Next() {
		var e domain.AuditEntry
		if err := rows.Scan(
			&e.ID, &e.TenantID, &e.ActorID, &e.EntityKind, &e.EntityID,
			&e.Action, &e.Outcome, &e.Detail, &e.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}

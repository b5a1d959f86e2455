package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tesseract-Nexus/admin-bff/internal/domain"
	"github.com/Tesseract-Nexus/admin-bff/internal/service/audit"
)

func TestAuditInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	entry := &domain.AuditEntry{
		ID:         "a1",
		TenantID:   "tenant-1",
		ActorID:    "user-1",
		EntityKind: "campaign",
		EntityID:   "c1",
		Action:     "send",
		Outcome:    domain.AuditOK,
		CreatedAt:  time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO bff_audit_log").
		WithArgs(entry.ID, entry.TenantID, entry.ActorID, entry.EntityKind,
			entry.EntityID, entry.Action, entry.Outcome, entry.Detail, entry.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewAuditRepo(db)
	require.NoError(t, repo.Insert(context.Background(), entry))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditListFiltersByEntityKind(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bff_audit_log").
		WithArgs("tenant-1", "order").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id, tenant_id, actor_id").
		WithArgs("tenant-1", "order", 50, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "tenant_id", "actor_id", "entity_kind", "entity_id",
			"action", "outcome", "detail", "created_at",
		}).AddRow("a1", "tenant-1", "user-1", "order", "o1", "cancel", "ok", "", now))

	repo := NewAuditRepo(db)
	entries, total, err := repo.List(context.Background(), "tenant-1", audit.ListFilter{
		EntityKind: "order",
		Limit:      50,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, entries, 1)
	assert.Equal(t, "cancel", entries[0].Action)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditListEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bff_audit_log").
		WithArgs("tenant-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT id, tenant_id, actor_id").
		WithArgs("tenant-1", 50, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "tenant_id", "actor_id", "entity_kind", "entity_id",
			"action", "outcome", "detail", "created_at",
		}))

	repo := NewAuditRepo(db)
	entries, total, err := repo.List(context.Background(), "tenant-1", audit.ListFilter{Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

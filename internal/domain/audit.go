package domain

import "time"

// AuditEntry records one mutation attempted through the BFF: who did what
// to which entity, and how it turned out.
type AuditEntry struct {
	ID       string `json:"id"`
	TenantID string `json:"tenantId"`
	ActorID  string `json:"actorId"`

	EntityKind string `json:"entityKind"` // campaign, order, gateway, settings
	EntityID   string `json:"entityId"`
	Action     string `json:"action"`

	Outcome string `json:"outcome"` // ok, rejected, failed
	Detail  string `json:"detail,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Audit outcomes.
const (
	AuditOK       = "ok"
	AuditRejected = "rejected"
	AuditFailed   = "failed"
)

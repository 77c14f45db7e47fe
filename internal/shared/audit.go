package shared

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditLog represents a record stored in audit_logs.
type AuditLog struct {
	ActorID  uuid.UUID
	TenantID uuid.UUID
	Action   string
	Entity   string
	EntityID string
	Meta     map[string]any
	At       time.Time
}

// AuditLogger writes records into audit_logs. Role and grant changes
// go through it so a permission a user suddenly holds (or lost) can
// be traced to the administrative action that caused it.
type AuditLogger struct {
	pool *pgxpool.Pool
}

// NewAuditLogger returns a new AuditLogger.
func NewAuditLogger(pool *pgxpool.Pool) *AuditLogger {
	return &AuditLogger{pool: pool}
}

// Record persists the log entry. When the entry carries no actor, the
// authenticated identity in ctx is used; entries written outside a
// request, such as seeding, stay actorless.
func (l *AuditLogger) Record(ctx context.Context, log AuditLog) error {
	if l == nil {
		return errors.New("audit logger not initialised")
	}
	if log.Action == "" || log.Entity == "" || log.EntityID == "" {
		return errors.New("audit log requires action/entity/entity_id")
	}
	if log.ActorID == uuid.Nil {
		if id, ok := IdentityFromContext(ctx); ok {
			log.ActorID = id.UserID
			log.TenantID = id.TenantID
		}
	}
	metaJSON, err := json.Marshal(log.Meta)
	if err != nil {
		return err
	}
	var actor, tenant, at any
	if log.ActorID != uuid.Nil {
		actor = log.ActorID
	}
	if log.TenantID != uuid.Nil {
		tenant = log.TenantID
	}
	if !log.At.IsZero() {
		at = log.At
	}
	_, err = l.pool.Exec(ctx, `INSERT INTO audit_logs (actor_id, tenant_id, action, entity, entity_id, meta, occurred_at) VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, NOW()))`, actor, tenant, log.Action, log.Entity, log.EntityID, metaJSON, at)
	return err
}

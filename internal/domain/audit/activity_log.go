package audit

import (
	"context"
	"time"

	"github.com/amani/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Action names the kind of mutation an activity log row records
type Action string

const (
	ActionCreate      Action = "CREATE"
	ActionUpdate      Action = "UPDATE"
	ActionDelete      Action = "DELETE"
	ActionSubmit      Action = "SUBMIT"
	ActionApprove     Action = "APPROVE"
	ActionReject      Action = "REJECT"
	ActionPay         Action = "PAY"
	ActionReconcile   Action = "RECONCILE"
	ActionUnreconcile Action = "UNRECONCILE"
	ActionLogin       Action = "LOGIN"
	ActionLogout      Action = "LOGOUT"
	ActionUpload      Action = "UPLOAD"
	ActionGenerate    Action = "GENERATE"
)

// ActivityLog is one append-only audit row. Rows are never updated or
// deleted; soft-deleted entities keep their history.
type ActivityLog struct {
	shared.BaseEntity
	ActorID    uuid.UUID `json:"actor_id"`
	Action     Action    `json:"action"`
	EntityKind string    `json:"entity_kind"`
	EntityID   uuid.UUID `json:"entity_id"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewActivityLog records one mutation
func NewActivityLog(actorID uuid.UUID, action Action, entityKind string, entityID uuid.UUID, detail string) (*ActivityLog, error) {
	if actorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Actor user ID cannot be empty")
	}
	if action == "" {
		return nil, shared.NewDomainError("INVALID_ACTION", "Action cannot be empty")
	}
	if entityKind == "" {
		return nil, shared.NewDomainError("INVALID_ENTITY", "Entity kind cannot be empty")
	}

	return &ActivityLog{
		BaseEntity: shared.NewBaseEntity(),
		ActorID:    actorID,
		Action:     action,
		EntityKind: entityKind,
		EntityID:   entityID,
		Detail:     detail,
		OccurredAt: time.Now(),
	}, nil
}

// ActivityLogFilter narrows audit listings
type ActivityLogFilter struct {
	shared.Filter
	ActorID    *uuid.UUID
	Action     *Action
	EntityKind *string
	EntityID   *uuid.UUID
	From       *time.Time
	To         *time.Time
}

// ActivityLogRepository persists audit rows, append-only
type ActivityLogRepository interface {
	Create(ctx context.Context, log *ActivityLog) error
	FindAll(ctx context.Context, filter ActivityLogFilter) ([]*ActivityLog, error)
	Count(ctx context.Context, filter ActivityLogFilter) (int64, error)
}

package models

import (
	"time"

	"github.com/amani/backend/internal/domain/audit"
	"github.com/google/uuid"
)

// ActivityLogModel is the persistence model for audit log rows. The table is
// append-only.
type ActivityLogModel struct {
	BaseModel
	ActorID    uuid.UUID    `gorm:"type:uuid;not null;index"`
	Action     audit.Action `gorm:"type:varchar(20);not null;index"`
	EntityKind string       `gorm:"type:varchar(30);not null;index:idx_activity_logs_entity"`
	EntityID   uuid.UUID    `gorm:"type:uuid;not null;index:idx_activity_logs_entity"`
	Detail     string       `gorm:"type:varchar(1000)"`
	OccurredAt time.Time    `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ActivityLogModel) TableName() string {
	return "activity_logs"
}

// ToDomain converts the persistence model to a domain ActivityLog.
func (m *ActivityLogModel) ToDomain() *audit.ActivityLog {
	return &audit.ActivityLog{
		BaseEntity: m.BaseModel.ToDomain(),
		ActorID:    m.ActorID,
		Action:     m.Action,
		EntityKind: m.EntityKind,
		EntityID:   m.EntityID,
		Detail:     m.Detail,
		OccurredAt: m.OccurredAt,
	}
}

// FromDomain populates the persistence model from a domain ActivityLog.
func (m *ActivityLogModel) FromDomain(l *audit.ActivityLog) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.ActorID = l.ActorID
	m.Action = l.Action
	m.EntityKind = l.EntityKind
	m.EntityID = l.EntityID
	m.Detail = l.Detail
	m.OccurredAt = l.OccurredAt
}

// ActivityLogModelFromDomain creates a new persistence model from a domain ActivityLog.
func ActivityLogModelFromDomain(l *audit.ActivityLog) *ActivityLogModel {
	m := &ActivityLogModel{}
	m.FromDomain(l)
	return m
}

package models

import (
	"time"

	"github.com/amani/backend/internal/domain/report"
	"github.com/google/uuid"
)

// ReportModel is the persistence model for the Report aggregate root.
type ReportModel struct {
	AggregateModel
	Type        report.ReportType   `gorm:"type:varchar(30);not null;index"`
	Title       string              `gorm:"type:varchar(200);not null"`
	PeriodStart time.Time           `gorm:"not null"`
	PeriodEnd   time.Time           `gorm:"not null"`
	Filters     report.Filters      `gorm:"type:jsonb;default:'{}'"`
	Status      report.ReportStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	FilePath    string              `gorm:"type:varchar(500)"`
	FileSize    int64
	GeneratedBy uuid.UUID `gorm:"type:uuid;not null;index"`
	CompletedAt *time.Time
	FailReason  string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ReportModel) TableName() string {
	return "reports"
}

// ToDomain converts the persistence model to a domain Report.
func (m *ReportModel) ToDomain() *report.Report {
	return &report.Report{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Type:              m.Type,
		Title:             m.Title,
		PeriodStart:       m.PeriodStart,
		PeriodEnd:         m.PeriodEnd,
		Filters:           m.Filters,
		Status:            m.Status,
		FilePath:          m.FilePath,
		FileSize:          m.FileSize,
		GeneratedBy:       m.GeneratedBy,
		CompletedAt:       m.CompletedAt,
		FailReason:        m.FailReason,
	}
}

// FromDomain populates the persistence model from a domain Report.
func (m *ReportModel) FromDomain(r *report.Report) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.Type = r.Type
	m.Title = r.Title
	m.PeriodStart = r.PeriodStart
	m.PeriodEnd = r.PeriodEnd
	m.Filters = r.Filters
	m.Status = r.Status
	m.FilePath = r.FilePath
	m.FileSize = r.FileSize
	m.GeneratedBy = r.GeneratedBy
	m.CompletedAt = r.CompletedAt
	m.FailReason = r.FailReason
}

// ReportModelFromDomain creates a new persistence model from a domain Report.
func ReportModelFromDomain(r *report.Report) *ReportModel {
	m := &ReportModel{}
	m.FromDomain(r)
	return m
}

package report

import (
	"context"

	"github.com/amani/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ReportFilter narrows report listings
type ReportFilter struct {
	shared.Filter
	Type        *ReportType
	Status      *ReportStatus
	GeneratedBy *uuid.UUID
}

// ReportRepository persists report rows
type ReportRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Report, error)
	FindAll(ctx context.Context, filter ReportFilter) ([]*Report, error)
	Count(ctx context.Context, filter ReportFilter) (int64, error)
	Create(ctx context.Context, report *Report) error
	Save(ctx context.Context, report *Report) error
	Delete(ctx context.Context, id uuid.UUID) error
}

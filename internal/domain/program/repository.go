package program

import (
	"context"
	"time"

	"github.com/amani/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProjectFilter narrows project listings
type ProjectFilter struct {
	shared.Filter
	Status    *ProjectStatus
	ManagerID *uuid.UUID
}

// ProjectRepository persists projects
type ProjectRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)
	FindByCode(ctx context.Context, code string) (*Project, error)
	FindAll(ctx context.Context, filter ProjectFilter) ([]*Project, error)
	Count(ctx context.Context, filter ProjectFilter) (int64, error)
	Save(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// DonorFilter narrows donor listings
type DonorFilter struct {
	shared.Filter
	Type     *DonorType
	IsActive *bool
}

// DonorRepository persists donors
type DonorRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Donor, error)
	FindByEmail(ctx context.Context, email string) (*Donor, error)
	FindAll(ctx context.Context, filter DonorFilter) ([]*Donor, error)
	Count(ctx context.Context, filter DonorFilter) (int64, error)
	Save(ctx context.Context, donor *Donor) error
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// DonorContribution is one row of the per-donor funding summary
type DonorContribution struct {
	DonorID            uuid.UUID
	DonorName          string
	TotalAmount        decimal.Decimal
	RestrictedAmount   decimal.Decimal
	UnrestrictedAmount decimal.Decimal
	FundingCount       int64
}

// DonorFundingRepository persists funding commitments
type DonorFundingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*DonorFunding, error)
	FindByDonor(ctx context.Context, donorID uuid.UUID) ([]*DonorFunding, error)
	FindByProject(ctx context.Context, projectID uuid.UUID) ([]*DonorFunding, error)
	Create(ctx context.Context, funding *DonorFunding) error
	Delete(ctx context.Context, id uuid.UUID) error
	SumByProject(ctx context.Context, projectID uuid.UUID) (decimal.Decimal, error)
	ContributionsByDonor(ctx context.Context, from, to time.Time) ([]DonorContribution, error)
}

package program

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/amani/backend/internal/domain/audit"
	"github.com/amani/backend/internal/domain/program"
	"github.com/amani/backend/internal/domain/shared"
	"github.com/amani/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateDonorCommand carries the input for registering a donor
type CreateDonorCommand struct {
	Name          string
	Type          program.DonorType
	Email         string
	Phone         string
	Address       string
	ContactPerson string
}

// UpdateDonorCommand carries the input for editing donor contact details
type UpdateDonorCommand struct {
	Name          string
	Phone         string
	Address       string
	ContactPerson string
	Notes         string
}

// RecordFundingCommand carries the input for recording a funding commitment
type RecordFundingCommand struct {
	DonorID      uuid.UUID
	ProjectID    uuid.UUID
	Amount       valueobject.Money
	IsRestricted bool
	FundingDate  time.Time
	Reference    string
	Notes        string
}

// DonorService manages donors and their funding commitments
type DonorService struct {
	donorRepo    program.DonorRepository
	fundingRepo  program.DonorFundingRepository
	projectRepo  program.ProjectRepository
	activityRepo audit.ActivityLogRepository
	logger       *zap.Logger
}

// NewDonorService creates a new DonorService
func NewDonorService(
	donorRepo program.DonorRepository,
	fundingRepo program.DonorFundingRepository,
	projectRepo program.ProjectRepository,
	activityRepo audit.ActivityLogRepository,
	logger *zap.Logger,
) *DonorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DonorService{
		donorRepo:    donorRepo,
		fundingRepo:  fundingRepo,
		projectRepo:  projectRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

func (s *DonorService) logActivity(ctx context.Context, actorID uuid.UUID, action audit.Action, entityID uuid.UUID, detail string) {
	if s.activityRepo == nil {
		return
	}
	entry, err := audit.NewActivityLog(actorID, action, "DONOR", entityID, detail)
	if err != nil {
		return
	}
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		s.logger.Warn("failed to write activity log",
			zap.String("donor_id", entityID.String()),
			zap.Error(err))
	}
}

// CreateDonor registers a new donor. Email is unique across donors.
func (s *DonorService) CreateDonor(ctx context.Context, cmd CreateDonorCommand, actorID uuid.UUID) (*program.Donor, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	existing, err := s.donorRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A donor with this email already exists")
	}

	donor, err := program.NewDonor(cmd.Name, cmd.Type, email, cmd.Phone, cmd.Address, cmd.ContactPerson)
	if err != nil {
		return nil, err
	}
	if err := s.donorRepo.Save(ctx, donor); err != nil {
		return nil, err
	}
	s.logActivity(ctx, actorID, audit.ActionCreate, donor.ID, donor.Name)
	return donor, nil
}

// GetDonor retrieves a donor by ID
func (s *DonorService) GetDonor(ctx context.Context, id uuid.UUID) (*program.Donor, error) {
	return s.donorRepo.FindByID(ctx, id)
}

// ListDonors returns a filtered page of donors
func (s *DonorService) ListDonors(ctx context.Context, filter program.DonorFilter) (shared.Paginated[*program.Donor], error) {
	items, err := s.donorRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[*program.Donor]{}, err
	}
	total, err := s.donorRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[*program.Donor]{}, err
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// UpdateDonor edits donor contact details
func (s *DonorService) UpdateDonor(ctx context.Context, id uuid.UUID, cmd UpdateDonorCommand, actorID uuid.UUID) (*program.Donor, error) {
	donor, err := s.donorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := donor.Update(cmd.Name, cmd.Phone, cmd.Address, cmd.ContactPerson, cmd.Notes); err != nil {
		return nil, err
	}
	if err := s.donorRepo.Save(ctx, donor); err != nil {
		return nil, err
	}
	s.logActivity(ctx, actorID, audit.ActionUpdate, donor.ID, donor.Name)
	return donor, nil
}

// DeactivateDonor retires a donor; existing fundings are untouched
func (s *DonorService) DeactivateDonor(ctx context.Context, id, actorID uuid.UUID) (*program.Donor, error) {
	donor, err := s.donorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := donor.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.donorRepo.Save(ctx, donor); err != nil {
		return nil, err
	}
	s.logActivity(ctx, actorID, audit.ActionUpdate, donor.ID, "deactivated")
	return donor, nil
}

// ActivateDonor re-enables a deactivated donor
func (s *DonorService) ActivateDonor(ctx context.Context, id, actorID uuid.UUID) (*program.Donor, error) {
	donor, err := s.donorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := donor.Activate(); err != nil {
		return nil, err
	}
	if err := s.donorRepo.Save(ctx, donor); err != nil {
		return nil, err
	}
	s.logActivity(ctx, actorID, audit.ActionUpdate, donor.ID, "activated")
	return donor, nil
}

// RecordFunding records a funding commitment from an active donor to a project
func (s *DonorService) RecordFunding(ctx context.Context, cmd RecordFundingCommand, actorID uuid.UUID) (*program.DonorFunding, error) {
	donor, err := s.donorRepo.FindByID(ctx, cmd.DonorID)
	if err != nil {
		return nil, err
	}
	if !donor.IsActive {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot record funding from an inactive donor")
	}
	exists, err := s.projectRepo.Exists(ctx, cmd.ProjectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrNotFound
	}

	funding, err := program.NewDonorFunding(cmd.DonorID, cmd.ProjectID, cmd.Amount,
		cmd.IsRestricted, cmd.FundingDate, cmd.Reference)
	if err != nil {
		return nil, err
	}
	funding.Notes = cmd.Notes

	if err := s.fundingRepo.Create(ctx, funding); err != nil {
		return nil, err
	}
	s.logActivity(ctx, actorID, audit.ActionCreate, donor.ID,
		"funding "+funding.Amount.StringFixed(2)+" "+string(funding.Currency))
	return funding, nil
}

// ListFundingsByDonor returns a donor's funding commitments
func (s *DonorService) ListFundingsByDonor(ctx context.Context, donorID uuid.UUID) ([]*program.DonorFunding, error) {
	if _, err := s.donorRepo.FindByID(ctx, donorID); err != nil {
		return nil, err
	}
	return s.fundingRepo.FindByDonor(ctx, donorID)
}

// ListFundingsByProject returns the funding commitments against a project
func (s *DonorService) ListFundingsByProject(ctx context.Context, projectID uuid.UUID) ([]*program.DonorFunding, error) {
	exists, err := s.projectRepo.Exists(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrNotFound
	}
	return s.fundingRepo.FindByProject(ctx, projectID)
}

// ProjectFundingTotal sums all funding committed to a project
func (s *DonorService) ProjectFundingTotal(ctx context.Context, projectID uuid.UUID) (decimal.Decimal, error) {
	return s.fundingRepo.SumByProject(ctx, projectID)
}

// DeleteFunding removes a funding record that was entered in error
func (s *DonorService) DeleteFunding(ctx context.Context, id, actorID uuid.UUID) error {
	funding, err := s.fundingRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.fundingRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logActivity(ctx, actorID, audit.ActionDelete, funding.DonorID, "funding removed")
	return nil
}

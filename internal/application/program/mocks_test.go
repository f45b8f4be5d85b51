package program

import (
	"context"
	"time"

	"github.com/amani/backend/internal/domain/audit"
	"github.com/amani/backend/internal/domain/program"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockProjectRepository is a mock implementation of program.ProjectRepository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*program.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*program.Project), args.Error(1)
}

func (m *MockProjectRepository) FindByCode(ctx context.Context, code string) (*program.Project, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*program.Project), args.Error(1)
}

func (m *MockProjectRepository) FindAll(ctx context.Context, filter program.ProjectFilter) ([]*program.Project, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*program.Project), args.Error(1)
}

func (m *MockProjectRepository) Count(ctx context.Context, filter program.ProjectFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProjectRepository) Save(ctx context.Context, project *program.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockDonorRepository is a mock implementation of program.DonorRepository
type MockDonorRepository struct {
	mock.Mock
}

func (m *MockDonorRepository) FindByID(ctx context.Context, id uuid.UUID) (*program.Donor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*program.Donor), args.Error(1)
}

func (m *MockDonorRepository) FindByEmail(ctx context.Context, email string) (*program.Donor, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*program.Donor), args.Error(1)
}

func (m *MockDonorRepository) FindAll(ctx context.Context, filter program.DonorFilter) ([]*program.Donor, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*program.Donor), args.Error(1)
}

func (m *MockDonorRepository) Count(ctx context.Context, filter program.DonorFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDonorRepository) Save(ctx context.Context, donor *program.Donor) error {
	args := m.Called(ctx, donor)
	return args.Error(0)
}

func (m *MockDonorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDonorRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockDonorFundingRepository is a mock implementation of program.DonorFundingRepository
type MockDonorFundingRepository struct {
	mock.Mock
}

func (m *MockDonorFundingRepository) FindByID(ctx context.Context, id uuid.UUID) (*program.DonorFunding, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*program.DonorFunding), args.Error(1)
}

func (m *MockDonorFundingRepository) FindByDonor(ctx context.Context, donorID uuid.UUID) ([]*program.DonorFunding, error) {
	args := m.Called(ctx, donorID)
	return args.Get(0).([]*program.DonorFunding), args.Error(1)
}

func (m *MockDonorFundingRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]*program.DonorFunding, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]*program.DonorFunding), args.Error(1)
}

func (m *MockDonorFundingRepository) Create(ctx context.Context, funding *program.DonorFunding) error {
	args := m.Called(ctx, funding)
	return args.Error(0)
}

func (m *MockDonorFundingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDonorFundingRepository) SumByProject(ctx context.Context, projectID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockDonorFundingRepository) ContributionsByDonor(ctx context.Context, from, to time.Time) ([]program.DonorContribution, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]program.DonorContribution), args.Error(1)
}

// MockActivityLogRepository is a mock implementation of audit.ActivityLogRepository
type MockActivityLogRepository struct {
	mock.Mock
}

func (m *MockActivityLogRepository) Create(ctx context.Context, log *audit.ActivityLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockActivityLogRepository) FindAll(ctx context.Context, filter audit.ActivityLogFilter) ([]*audit.ActivityLog, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*audit.ActivityLog), args.Error(1)
}

func (m *MockActivityLogRepository) Count(ctx context.Context, filter audit.ActivityLogFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserChecker is a mock manager existence check
type MockUserChecker struct {
	mock.Mock
}

func (m *MockUserChecker) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

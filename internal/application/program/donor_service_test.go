package program

import (
	"context"
	"testing"
	"time"

	"github.com/amani/backend/internal/domain/program"
	"github.com/amani/backend/internal/domain/shared"
	"github.com/amani/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type donorFixture struct {
	donorRepo   *MockDonorRepository
	fundingRepo *MockDonorFundingRepository
	projectRepo *MockProjectRepository
	service     *DonorService
}

func newDonorFixture() *donorFixture {
	f := &donorFixture{
		donorRepo:   new(MockDonorRepository),
		fundingRepo: new(MockDonorFundingRepository),
		projectRepo: new(MockProjectRepository),
	}
	f.service = NewDonorService(f.donorRepo, f.fundingRepo, f.projectRepo, nil, nil)
	return f
}

func foundationDonor(t *testing.T) *program.Donor {
	t.Helper()
	d, err := program.NewDonor("Harambee Foundation", program.DonorTypeFoundation,
		"grants@harambee.org", "", "", "Grace Wanjiru")
	require.NoError(t, err)
	return d
}

func TestCreateDonor_NormalizesEmail(t *testing.T) {
	f := newDonorFixture()

	f.donorRepo.On("FindByEmail", mock.Anything, "grants@harambee.org").Return(nil, shared.ErrNotFound)
	f.donorRepo.On("Save", mock.Anything, mock.AnythingOfType("*program.Donor")).Return(nil)

	donor, err := f.service.CreateDonor(context.Background(), CreateDonorCommand{
		Name:  "Harambee Foundation",
		Type:  program.DonorTypeFoundation,
		Email: " Grants@Harambee.ORG ",
	}, uuid.New())

	require.NoError(t, err)
	assert.Equal(t, "grants@harambee.org", donor.Email)
	assert.True(t, donor.IsActive)
}

func TestCreateDonor_DuplicateEmail(t *testing.T) {
	f := newDonorFixture()
	existing := foundationDonor(t)

	f.donorRepo.On("FindByEmail", mock.Anything, "grants@harambee.org").Return(existing, nil)

	_, err := f.service.CreateDonor(context.Background(), CreateDonorCommand{
		Name:  "Another Org",
		Type:  program.DonorTypeCorporate,
		Email: "grants@harambee.org",
	}, uuid.New())

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestRecordFunding_Success(t *testing.T) {
	f := newDonorFixture()
	donor := foundationDonor(t)
	projectID := uuid.New()

	f.donorRepo.On("FindByID", mock.Anything, donor.ID).Return(donor, nil)
	f.projectRepo.On("Exists", mock.Anything, projectID).Return(true, nil)
	f.fundingRepo.On("Create", mock.Anything, mock.AnythingOfType("*program.DonorFunding")).Return(nil)

	funding, err := f.service.RecordFunding(context.Background(), RecordFundingCommand{
		DonorID:      donor.ID,
		ProjectID:    projectID,
		Amount:       valueobject.NewMoneyUSDFromFloat(25000),
		IsRestricted: true,
		FundingDate:  time.Now(),
		Reference:    "GRANT-2026-014",
	}, uuid.New())

	require.NoError(t, err)
	assert.True(t, funding.IsRestricted)
	assert.Equal(t, "25000", funding.Amount.String())
	f.fundingRepo.AssertExpectations(t)
}

func TestRecordFunding_InactiveDonor(t *testing.T) {
	f := newDonorFixture()
	donor := foundationDonor(t)
	require.NoError(t, donor.Deactivate())

	f.donorRepo.On("FindByID", mock.Anything, donor.ID).Return(donor, nil)

	_, err := f.service.RecordFunding(context.Background(), RecordFundingCommand{
		DonorID:     donor.ID,
		ProjectID:   uuid.New(),
		Amount:      valueobject.NewMoneyUSDFromFloat(1000),
		FundingDate: time.Now(),
	}, uuid.New())

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	f.fundingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordFunding_UnknownProject(t *testing.T) {
	f := newDonorFixture()
	donor := foundationDonor(t)
	projectID := uuid.New()

	f.donorRepo.On("FindByID", mock.Anything, donor.ID).Return(donor, nil)
	f.projectRepo.On("Exists", mock.Anything, projectID).Return(false, nil)

	_, err := f.service.RecordFunding(context.Background(), RecordFundingCommand{
		DonorID:     donor.ID,
		ProjectID:   projectID,
		Amount:      valueobject.NewMoneyUSDFromFloat(1000),
		FundingDate: time.Now(),
	}, uuid.New())

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeactivateDonor_Twice(t *testing.T) {
	f := newDonorFixture()
	donor := foundationDonor(t)
	require.NoError(t, donor.Deactivate())

	f.donorRepo.On("FindByID", mock.Anything, donor.ID).Return(donor, nil)

	_, err := f.service.DeactivateDonor(context.Background(), donor.ID, uuid.New())

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

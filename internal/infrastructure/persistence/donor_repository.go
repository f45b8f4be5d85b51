package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amani/backend/internal/domain/program"
	"github.com/amani/backend/internal/domain/shared"
	"github.com/amani/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormDonorRepository implements program.DonorRepository using GORM
type GormDonorRepository struct {
	db *gorm.DB
}

// NewGormDonorRepository creates a new GormDonorRepository
func NewGormDonorRepository(db *gorm.DB) *GormDonorRepository {
	return &GormDonorRepository{db: db}
}

// FindByID finds a donor by its ID
func (r *GormDonorRepository) FindByID(ctx context.Context, id uuid.UUID) (*program.Donor, error) {
	var model models.DonorModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a donor by email
func (r *GormDonorRepository) FindByEmail(ctx context.Context, email string) (*program.Donor, error) {
	var model models.DonorModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds donors with filtering
func (r *GormDonorRepository) FindAll(ctx context.Context, filter program.DonorFilter) ([]*program.Donor, error) {
	var donorModels []models.DonorModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.DonorModel{}), filter)

	if err := query.Find(&donorModels).Error; err != nil {
		return nil, err
	}
	donors := make([]*program.Donor, len(donorModels))
	for i := range donorModels {
		donors[i] = donorModels[i].ToDomain()
	}
	return donors, nil
}

// Count counts donors with filtering
func (r *GormDonorRepository) Count(ctx context.Context, filter program.DonorFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.DonorModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a donor
func (r *GormDonorRepository) Save(ctx context.Context, donor *program.Donor) error {
	model := models.DonorModelFromDomain(donor)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete soft deletes a donor
func (r *GormDonorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.DonorModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Exists reports whether a donor with the given ID exists
func (r *GormDonorRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.DonorModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormDonorRepository) applyFilter(query *gorm.DB, filter program.DonorFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, DonorSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		offset := (filter.Page - 1) * filter.PageSize
		if offset > 0 {
			query = query.Offset(offset)
		}
	}
	return query
}

func (r *GormDonorRepository) applyFilterWithoutPagination(query *gorm.DB, filter program.DonorFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("(name ILIKE ? OR email ILIKE ? OR contact_person ILIKE ?)",
			searchPattern, searchPattern, searchPattern)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	return query
}

var _ program.DonorRepository = (*GormDonorRepository)(nil)

// GormDonorFundingRepository implements program.DonorFundingRepository using GORM
type GormDonorFundingRepository struct {
	db *gorm.DB
}

// NewGormDonorFundingRepository creates a new GormDonorFundingRepository
func NewGormDonorFundingRepository(db *gorm.DB) *GormDonorFundingRepository {
	return &GormDonorFundingRepository{db: db}
}

// FindByID finds a funding record by its ID
func (r *GormDonorFundingRepository) FindByID(ctx context.Context, id uuid.UUID) (*program.DonorFunding, error) {
	var model models.DonorFundingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByDonor lists funding records for a donor, newest first
func (r *GormDonorFundingRepository) FindByDonor(ctx context.Context, donorID uuid.UUID) ([]*program.DonorFunding, error) {
	return r.findWhere(ctx, "donor_id = ?", donorID)
}

// FindByProject lists funding records for a project, newest first
func (r *GormDonorFundingRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]*program.DonorFunding, error) {
	return r.findWhere(ctx, "project_id = ?", projectID)
}

func (r *GormDonorFundingRepository) findWhere(ctx context.Context, cond string, arg interface{}) ([]*program.DonorFunding, error) {
	var fundingModels []models.DonorFundingModel
	if err := r.db.WithContext(ctx).
		Where(cond, arg).
		Order("funding_date DESC").
		Find(&fundingModels).Error; err != nil {
		return nil, err
	}
	fundings := make([]*program.DonorFunding, len(fundingModels))
	for i := range fundingModels {
		fundings[i] = fundingModels[i].ToDomain()
	}
	return fundings, nil
}

// Create inserts a funding record
func (r *GormDonorFundingRepository) Create(ctx context.Context, funding *program.DonorFunding) error {
	model := models.DonorFundingModelFromDomain(funding)
	return r.db.WithContext(ctx).Create(model).Error
}

// Delete removes a funding record
func (r *GormDonorFundingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.DonorFundingModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SumByProject sums total funding committed to a project
func (r *GormDonorFundingRepository) SumByProject(ctx context.Context, projectID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.DonorFundingModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("project_id = ?", projectID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// ContributionsByDonor aggregates funding per donor over [from, to]
func (r *GormDonorFundingRepository) ContributionsByDonor(ctx context.Context, from, to time.Time) ([]program.DonorContribution, error) {
	var rows []program.DonorContribution
	if err := r.db.WithContext(ctx).Model(&models.DonorFundingModel{}).
		Select(`donor_fundings.donor_id,
			donors.name AS donor_name,
			COALESCE(SUM(donor_fundings.amount), 0) AS total_amount,
			COALESCE(SUM(donor_fundings.amount) FILTER (WHERE donor_fundings.is_restricted), 0) AS restricted_amount,
			COALESCE(SUM(donor_fundings.amount) FILTER (WHERE NOT donor_fundings.is_restricted), 0) AS unrestricted_amount,
			COUNT(*) AS funding_count`).
		Joins("JOIN donors ON donors.id = donor_fundings.donor_id").
		Where("donor_fundings.funding_date >= ? AND donor_fundings.funding_date <= ?", from, to).
		Group("donor_fundings.donor_id, donors.name").
		Order("total_amount DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

var _ program.DonorFundingRepository = (*GormDonorFundingRepository)(nil)

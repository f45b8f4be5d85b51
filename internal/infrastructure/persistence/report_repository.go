package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/amani/backend/internal/domain/report"
	"github.com/amani/backend/internal/domain/shared"
	"github.com/amani/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReportRepository implements report.ReportRepository using GORM
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// FindByID finds a report by its ID
func (r *GormReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*report.Report, error) {
	var model models.ReportModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds reports with filtering
func (r *GormReportRepository) FindAll(ctx context.Context, filter report.ReportFilter) ([]*report.Report, error) {
	var reportModels []models.ReportModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ReportModel{}), filter)

	if err := query.Find(&reportModels).Error; err != nil {
		return nil, err
	}
	reports := make([]*report.Report, len(reportModels))
	for i := range reportModels {
		reports[i] = reportModels[i].ToDomain()
	}
	return reports, nil
}

// Count counts reports with filtering
func (r *GormReportRepository) Count(ctx context.Context, filter report.ReportFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ReportModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a new report row
func (r *GormReportRepository) Create(ctx context.Context, rep *report.Report) error {
	model := models.ReportModelFromDomain(rep)
	return r.db.WithContext(ctx).Create(model).Error
}

// Save updates an existing report
func (r *GormReportRepository) Save(ctx context.Context, rep *report.Report) error {
	model := models.ReportModelFromDomain(rep)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete soft deletes a report
func (r *GormReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ReportModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormReportRepository) applyFilter(query *gorm.DB, filter report.ReportFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, ReportSortFields, "created_at")
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

func (r *GormReportRepository) applyFilterWithoutPagination(query *gorm.DB, filter report.ReportFilter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.GeneratedBy != nil {
		query = query.Where("generated_by = ?", *filter.GeneratedBy)
	}
	return query
}

var _ report.ReportRepository = (*GormReportRepository)(nil)

package persistence

import (
	"context"
	"fmt"

	"github.com/amani/backend/internal/domain/audit"
	"github.com/amani/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormActivityLogRepository implements audit.ActivityLogRepository using GORM.
// Rows are append-only, there is no update or delete path.
type GormActivityLogRepository struct {
	db *gorm.DB
}

// NewGormActivityLogRepository creates a new GormActivityLogRepository
func NewGormActivityLogRepository(db *gorm.DB) *GormActivityLogRepository {
	return &GormActivityLogRepository{db: db}
}

// Create appends an activity log row
func (r *GormActivityLogRepository) Create(ctx context.Context, log *audit.ActivityLog) error {
	model := models.ActivityLogModelFromDomain(log)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindAll finds activity logs with filtering
func (r *GormActivityLogRepository) FindAll(ctx context.Context, filter audit.ActivityLogFilter) ([]*audit.ActivityLog, error) {
	var logModels []models.ActivityLogModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ActivityLogModel{}), filter)

	if err := query.Find(&logModels).Error; err != nil {
		return nil, err
	}
	logs := make([]*audit.ActivityLog, len(logModels))
	for i := range logModels {
		logs[i] = logModels[i].ToDomain()
	}
	return logs, nil
}

// Count counts activity logs with filtering
func (r *GormActivityLogRepository) Count(ctx context.Context, filter audit.ActivityLogFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ActivityLogModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormActivityLogRepository) applyFilter(query *gorm.DB, filter audit.ActivityLogFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, ActivityLogSortFields, "occurred_at")
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

func (r *GormActivityLogRepository) applyFilterWithoutPagination(query *gorm.DB, filter audit.ActivityLogFilter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("detail ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.ActorID != nil {
		query = query.Where("actor_id = ?", *filter.ActorID)
	}
	if filter.Action != nil {
		query = query.Where("action = ?", *filter.Action)
	}
	if filter.EntityKind != nil {
		query = query.Where("entity_kind = ?", *filter.EntityKind)
	}
	if filter.EntityID != nil {
		query = query.Where("entity_id = ?", *filter.EntityID)
	}
	if filter.From != nil {
		query = query.Where("occurred_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("occurred_at <= ?", *filter.To)
	}
	return query
}

var _ audit.ActivityLogRepository = (*GormActivityLogRepository)(nil)

package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amani/backend/internal/domain/finance"
	"github.com/amani/backend/internal/domain/shared"
	"github.com/amani/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPurchaseOrderRepository implements finance.PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// FindByID finds a purchase order by its ID
func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.PurchaseOrder, error) {
	var model models.PurchaseOrderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPONumber finds a purchase order by its number
func (r *GormPurchaseOrderRepository) FindByPONumber(ctx context.Context, poNumber string) (*finance.PurchaseOrder, error) {
	var model models.PurchaseOrderModel
	if err := r.db.WithContext(ctx).
		Where("po_number = ?", poNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds purchase orders with filtering
func (r *GormPurchaseOrderRepository) FindAll(ctx context.Context, filter finance.PurchaseOrderFilter) ([]finance.PurchaseOrder, error) {
	var orderModels []models.PurchaseOrderModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PurchaseOrderModel{}), filter)

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}
	orders := make([]finance.PurchaseOrder, len(orderModels))
	for i, model := range orderModels {
		orders[i] = *model.ToDomain()
	}
	return orders, nil
}

// Count counts purchase orders with filtering
func (r *GormPurchaseOrderRepository) Count(ctx context.Context, filter finance.PurchaseOrderFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.PurchaseOrderModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a purchase order
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, order *finance.PurchaseOrder) error {
	model := models.PurchaseOrderModelFromDomain(order)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete soft deletes a purchase order
func (r *GormPurchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PurchaseOrderModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GeneratePONumber generates the next purchase order number (PO-YYYYMM-NNNNN)
func (r *GormPurchaseOrderRepository) GeneratePONumber(ctx context.Context) (string, error) {
	var count int64
	yearMonth := time.Now().Format("200601")

	if err := r.db.WithContext(ctx).Model(&models.PurchaseOrderModel{}).
		Unscoped().
		Where("po_number LIKE ?", fmt.Sprintf("PO-%s-%%", yearMonth)).
		Count(&count).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("PO-%s-%05d", yearMonth, count+1), nil
}

func (r *GormPurchaseOrderRepository) applyFilter(query *gorm.DB, filter finance.PurchaseOrderFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, PurchaseOrderSortFields, "created_at")
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

func (r *GormPurchaseOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter finance.PurchaseOrderFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("(po_number ILIKE ? OR supplier_name ILIKE ?)", searchPattern, searchPattern)
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.FromDate != nil {
		query = query.Where("created_at >= ?", filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("created_at <= ?", filter.ToDate)
	}
	return query
}

var _ finance.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)

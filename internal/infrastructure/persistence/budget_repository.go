package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/amani/backend/internal/domain/finance"
	"github.com/amani/backend/internal/domain/shared"
	"github.com/amani/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBudgetRepository implements finance.BudgetRepository using GORM
type GormBudgetRepository struct {
	db *gorm.DB
}

// NewGormBudgetRepository creates a new GormBudgetRepository
func NewGormBudgetRepository(db *gorm.DB) *GormBudgetRepository {
	return &GormBudgetRepository{db: db}
}

// FindByID finds a budget by its ID
func (r *GormBudgetRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Budget, error) {
	var model models.BudgetModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds budgets with filtering
func (r *GormBudgetRepository) FindAll(ctx context.Context, filter finance.BudgetFilter) ([]finance.Budget, error) {
	var budgetModels []models.BudgetModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.BudgetModel{}), filter)

	if err := query.Find(&budgetModels).Error; err != nil {
		return nil, err
	}
	budgets := make([]finance.Budget, len(budgetModels))
	for i, model := range budgetModels {
		budgets[i] = *model.ToDomain()
	}
	return budgets, nil
}

// Count counts budgets with filtering
func (r *GormBudgetRepository) Count(ctx context.Context, filter finance.BudgetFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.BudgetModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a budget
func (r *GormBudgetRepository) Save(ctx context.Context, budget *finance.Budget) error {
	model := models.BudgetModelFromDomain(budget)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete soft deletes a budget
func (r *GormBudgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BudgetModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormBudgetRepository) applyFilter(query *gorm.DB, filter finance.BudgetFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, BudgetSortFields, "created_at")
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

func (r *GormBudgetRepository) applyFilterWithoutPagination(query *gorm.DB, filter finance.BudgetFilter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.FiscalYear != nil {
		query = query.Where("fiscal_year = ?", *filter.FiscalYear)
	}
	return query
}

var _ finance.BudgetRepository = (*GormBudgetRepository)(nil)

// GormBudgetItemRepository implements finance.BudgetItemRepository using GORM
type GormBudgetItemRepository struct {
	db *gorm.DB
}

// NewGormBudgetItemRepository creates a new GormBudgetItemRepository
func NewGormBudgetItemRepository(db *gorm.DB) *GormBudgetItemRepository {
	return &GormBudgetItemRepository{db: db}
}

// FindByID finds a budget item by its ID
func (r *GormBudgetItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.BudgetItem, error) {
	var model models.BudgetItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds a budget item by ID taking a row lock.
// Must be called inside a transaction so concurrent consumption serializes.
func (r *GormBudgetItemRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*finance.BudgetItem, error) {
	var model models.BudgetItemModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBudgetID lists items belonging to a budget
func (r *GormBudgetItemRepository) FindByBudgetID(ctx context.Context, budgetID uuid.UUID) ([]finance.BudgetItem, error) {
	var itemModels []models.BudgetItemModel
	if err := r.db.WithContext(ctx).
		Where("budget_id = ?", budgetID).
		Order("category ASC").
		Find(&itemModels).Error; err != nil {
		return nil, err
	}
	items := make([]finance.BudgetItem, len(itemModels))
	for i, model := range itemModels {
		items[i] = *model.ToDomain()
	}
	return items, nil
}

// Save creates or updates a budget item
func (r *GormBudgetItemRepository) Save(ctx context.Context, item *finance.BudgetItem) error {
	model := models.BudgetItemModelFromDomain(item)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete soft deletes a budget item
func (r *GormBudgetItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BudgetItemModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ finance.BudgetItemRepository = (*GormBudgetItemRepository)(nil)

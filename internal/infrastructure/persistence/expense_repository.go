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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormExpenseRepository implements finance.ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense by its ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	var model models.ExpenseModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds an expense by ID taking a row lock.
// Must be called inside a transaction.
func (r *GormExpenseRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	var model models.ExpenseModel
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

// FindByExpenseNumber finds an expense by its human-readable number
func (r *GormExpenseRepository) FindByExpenseNumber(ctx context.Context, expenseNumber string) (*finance.Expense, error) {
	var model models.ExpenseModel
	if err := r.db.WithContext(ctx).
		Where("expense_number = ?", expenseNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds expenses with filtering
func (r *GormExpenseRepository) FindAll(ctx context.Context, filter finance.ExpenseFilter) ([]finance.Expense, error) {
	var expenseModels []models.ExpenseModel
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{})
	query = r.applyFilter(query, filter)

	if err := query.Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	expenses := make([]finance.Expense, len(expenseModels))
	for i, model := range expenseModels {
		expenses[i] = *model.ToDomain()
	}
	return expenses, nil
}

// Count counts expenses with filtering
func (r *GormExpenseRepository) Count(ctx context.Context, filter finance.ExpenseFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	model := models.ExpenseModelFromDomain(expense)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete soft deletes an expense
func (r *GormExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ExpenseModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GenerateExpenseNumber generates the next expense number (EXP-YYYYMM-NNNNN)
func (r *GormExpenseRepository) GenerateExpenseNumber(ctx context.Context) (string, error) {
	var count int64
	yearMonth := time.Now().Format("200601")

	if err := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).
		Unscoped().
		Where("expense_number LIKE ?", fmt.Sprintf("EXP-%s-%%", yearMonth)).
		Count(&count).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("EXP-%s-%05d", yearMonth, count+1), nil
}

// SumByProject sums expense amounts for a project within a date range,
// restricted to the given statuses
func (r *GormExpenseRepository) SumByProject(ctx context.Context, projectID uuid.UUID, statuses []finance.ExpenseStatus, from, to time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("project_id = ? AND incurred_at >= ? AND incurred_at <= ?", projectID, from, to)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	if err := query.Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// applyFilter applies filter conditions, sorting, and pagination to a query
func (r *GormExpenseRepository) applyFilter(query *gorm.DB, filter finance.ExpenseFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, ExpenseSortFields, "created_at")
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

// applyFilterWithoutPagination applies filter conditions without pagination
func (r *GormExpenseRepository) applyFilterWithoutPagination(query *gorm.DB, filter finance.ExpenseFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("(expense_number ILIKE ? OR description ILIKE ?)", searchPattern, searchPattern)
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.BudgetItemID != nil {
		query = query.Where("budget_item_id = ?", *filter.BudgetItemID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.SubmittedBy != nil {
		query = query.Where("submitted_by = ?", *filter.SubmittedBy)
	}
	if filter.FromDate != nil {
		query = query.Where("incurred_at >= ?", filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("incurred_at <= ?", filter.ToDate)
	}
	if filter.MinAmount != nil {
		query = query.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("amount <= ?", *filter.MaxAmount)
	}
	return query
}

var _ finance.ExpenseRepository = (*GormExpenseRepository)(nil)

// GormExpenseApprovalRepository implements finance.ExpenseApprovalRepository using GORM.
// Approval records are append-only.
type GormExpenseApprovalRepository struct {
	db *gorm.DB
}

// NewGormExpenseApprovalRepository creates a new GormExpenseApprovalRepository
func NewGormExpenseApprovalRepository(db *gorm.DB) *GormExpenseApprovalRepository {
	return &GormExpenseApprovalRepository{db: db}
}

// Create appends an approval record
func (r *GormExpenseApprovalRepository) Create(ctx context.Context, approval *finance.ExpenseApproval) error {
	model := models.ExpenseApprovalModelFromDomain(approval)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByExpenseID lists approval records for an expense, oldest first
func (r *GormExpenseApprovalRepository) FindByExpenseID(ctx context.Context, expenseID uuid.UUID) ([]finance.ExpenseApproval, error) {
	var approvalModels []models.ExpenseApprovalModel
	if err := r.db.WithContext(ctx).
		Where("expense_id = ?", expenseID).
		Order("action_date ASC, created_at ASC").
		Find(&approvalModels).Error; err != nil {
		return nil, err
	}
	approvals := make([]finance.ExpenseApproval, len(approvalModels))
	for i, model := range approvalModels {
		approvals[i] = *model.ToDomain()
	}
	return approvals, nil
}

var _ finance.ExpenseApprovalRepository = (*GormExpenseApprovalRepository)(nil)

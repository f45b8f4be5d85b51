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

// GormBankAccountRepository implements finance.BankAccountRepository using GORM
type GormBankAccountRepository struct {
	db *gorm.DB
}

// NewGormBankAccountRepository creates a new GormBankAccountRepository
func NewGormBankAccountRepository(db *gorm.DB) *GormBankAccountRepository {
	return &GormBankAccountRepository{db: db}
}

// FindByID finds a bank account by its ID
func (r *GormBankAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.BankAccount, error) {
	var model models.BankAccountModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds a bank account by ID taking a row lock.
// Must be called inside a transaction so concurrent postings serialize.
func (r *GormBankAccountRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*finance.BankAccount, error) {
	var model models.BankAccountModel
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

// FindByAccountNumber finds a bank account by its account number
func (r *GormBankAccountRepository) FindByAccountNumber(ctx context.Context, accountNumber string) (*finance.BankAccount, error) {
	var model models.BankAccountModel
	if err := r.db.WithContext(ctx).
		Where("account_number = ?", accountNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds bank accounts with filtering
func (r *GormBankAccountRepository) FindAll(ctx context.Context, filter finance.BankAccountFilter) ([]finance.BankAccount, error) {
	var accountModels []models.BankAccountModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.BankAccountModel{}), filter)

	if err := query.Find(&accountModels).Error; err != nil {
		return nil, err
	}
	accounts := make([]finance.BankAccount, len(accountModels))
	for i, model := range accountModels {
		accounts[i] = *model.ToDomain()
	}
	return accounts, nil
}

// Count counts bank accounts with filtering
func (r *GormBankAccountRepository) Count(ctx context.Context, filter finance.BankAccountFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.BankAccountModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a bank account
func (r *GormBankAccountRepository) Save(ctx context.Context, account *finance.BankAccount) error {
	model := models.BankAccountModelFromDomain(account)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete soft deletes a bank account
func (r *GormBankAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BankAccountModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormBankAccountRepository) applyFilter(query *gorm.DB, filter finance.BankAccountFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, BankAccountSortFields, "created_at")
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

func (r *GormBankAccountRepository) applyFilterWithoutPagination(query *gorm.DB, filter finance.BankAccountFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("(account_number ILIKE ? OR account_name ILIKE ? OR bank_name ILIKE ?)",
			searchPattern, searchPattern, searchPattern)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.Currency != nil {
		query = query.Where("currency = ?", *filter.Currency)
	}
	return query
}

var _ finance.BankAccountRepository = (*GormBankAccountRepository)(nil)

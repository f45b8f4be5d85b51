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
)

// GormCashFlowRepository implements finance.CashFlowRepository using GORM
type GormCashFlowRepository struct {
	db *gorm.DB
}

// NewGormCashFlowRepository creates a new GormCashFlowRepository
func NewGormCashFlowRepository(db *gorm.DB) *GormCashFlowRepository {
	return &GormCashFlowRepository{db: db}
}

// FindByID finds a ledger entry by its ID
func (r *GormCashFlowRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.CashFlow, error) {
	var model models.CashFlowModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTransactionNumber finds a ledger entry by its transaction number
func (r *GormCashFlowRepository) FindByTransactionNumber(ctx context.Context, transactionNumber string) (*finance.CashFlow, error) {
	var model models.CashFlowModel
	if err := r.db.WithContext(ctx).
		Where("transaction_number = ?", transactionNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds ledger entries with filtering
func (r *GormCashFlowRepository) FindAll(ctx context.Context, filter finance.CashFlowFilter) ([]finance.CashFlow, error) {
	var flowModels []models.CashFlowModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CashFlowModel{}), filter)

	if err := query.Find(&flowModels).Error; err != nil {
		return nil, err
	}
	flows := make([]finance.CashFlow, len(flowModels))
	for i, model := range flowModels {
		flows[i] = *model.ToDomain()
	}
	return flows, nil
}

// Count counts ledger entries with filtering
func (r *GormCashFlowRepository) Count(ctx context.Context, filter finance.CashFlowFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.CashFlowModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create appends a ledger entry
func (r *GormCashFlowRepository) Create(ctx context.Context, flow *finance.CashFlow) error {
	model := models.CashFlowModelFromDomain(flow)
	return r.db.WithContext(ctx).Create(model).Error
}

// Save persists reconciliation metadata changes
func (r *GormCashFlowRepository) Save(ctx context.Context, flow *finance.CashFlow) error {
	model := models.CashFlowModelFromDomain(flow)
	return r.db.WithContext(ctx).Save(model).Error
}

// GenerateTransactionNumber generates the next transaction number (TXN-YYYY-NNNNNN)
func (r *GormCashFlowRepository) GenerateTransactionNumber(ctx context.Context) (string, error) {
	var count int64
	year := time.Now().Format("2006")

	if err := r.db.WithContext(ctx).Model(&models.CashFlowModel{}).
		Unscoped().
		Where("transaction_number LIKE ?", fmt.Sprintf("TXN-%s-%%", year)).
		Count(&count).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("TXN-%s-%06d", year, count+1), nil
}

// MonthlyTotals aggregates inflow/outflow sums per calendar month for an
// account over [from, to]
func (r *GormCashFlowRepository) MonthlyTotals(ctx context.Context, bankAccountID uuid.UUID, from, to time.Time) ([]finance.MonthlyFlowTotals, error) {
	var rows []struct {
		Year    int
		Month   int
		Inflow  decimal.Decimal
		Outflow decimal.Decimal
	}

	if err := r.db.WithContext(ctx).Model(&models.CashFlowModel{}).
		Select(`EXTRACT(YEAR FROM flow_date)::int AS year,
			EXTRACT(MONTH FROM flow_date)::int AS month,
			COALESCE(SUM(amount) FILTER (WHERE type = ?), 0) AS inflow,
			COALESCE(SUM(amount) FILTER (WHERE type = ?), 0) AS outflow`,
			finance.CashFlowTypeInflow, finance.CashFlowTypeOutflow).
		Where("bank_account_id = ? AND flow_date >= ? AND flow_date <= ?", bankAccountID, from, to).
		Group("1, 2").
		Order("1 ASC, 2 ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := make([]finance.MonthlyFlowTotals, len(rows))
	for i, row := range rows {
		totals[i] = finance.MonthlyFlowTotals{
			Year:    row.Year,
			Month:   time.Month(row.Month),
			Inflow:  row.Inflow,
			Outflow: row.Outflow,
		}
	}
	return totals, nil
}

func (r *GormCashFlowRepository) applyFilter(query *gorm.DB, filter finance.CashFlowFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, CashFlowSortFields, "flow_date")
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

func (r *GormCashFlowRepository) applyFilterWithoutPagination(query *gorm.DB, filter finance.CashFlowFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("(transaction_number ILIKE ? OR description ILIKE ?)", searchPattern, searchPattern)
	}
	if filter.BankAccountID != nil {
		query = query.Where("bank_account_id = ?", *filter.BankAccountID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.IsReconciled != nil {
		query = query.Where("is_reconciled = ?", *filter.IsReconciled)
	}
	if filter.FromDate != nil {
		query = query.Where("flow_date >= ?", filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("flow_date <= ?", filter.ToDate)
	}
	return query
}

var _ finance.CashFlowRepository = (*GormCashFlowRepository)(nil)

package finance

import (
	"time"

	"github.com/amani/backend/internal/domain/shared"
	"github.com/amani/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetStatus represents the lifecycle of a budget
type BudgetStatus string

const (
	BudgetStatusDraft  BudgetStatus = "DRAFT"
	BudgetStatusActive BudgetStatus = "ACTIVE"
	BudgetStatusClosed BudgetStatus = "CLOSED"
)

// IsValid checks if the status is a valid BudgetStatus
func (s BudgetStatus) IsValid() bool {
	switch s {
	case BudgetStatusDraft, BudgetStatusActive, BudgetStatusClosed:
		return true
	}
	return false
}

// Budget is a project-level spending plan made of category allocation lines
type Budget struct {
	shared.BaseAggregateRoot
	ProjectID  uuid.UUID            `json:"project_id"`
	Name       string               `json:"name"`
	FiscalYear int                  `json:"fiscal_year"`
	Currency   valueobject.Currency `json:"currency"`
	Status     BudgetStatus         `json:"status"`
	Notes      string               `json:"notes,omitempty"`
}

// NewBudget creates a new budget in draft status
func NewBudget(projectID uuid.UUID, name string, fiscalYear int, currency valueobject.Currency) (*Budget, error) {
	if projectID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROJECT", "Project ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Budget name cannot be empty")
	}
	if fiscalYear < 2000 || fiscalYear > 2100 {
		return nil, shared.NewDomainError("INVALID_FISCAL_YEAR", "Fiscal year is out of range")
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency is not supported")
	}

	return &Budget{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProjectID:         projectID,
		Name:              name,
		FiscalYear:        fiscalYear,
		Currency:          currency,
		Status:            BudgetStatusDraft,
	}, nil
}

// Activate makes a draft budget active so expenses can consume it
func (b *Budget) Activate() error {
	if b.Status != BudgetStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft budgets can be activated")
	}
	b.Status = BudgetStatusActive
	b.UpdatedAt = time.Now()
	return nil
}

// Close closes an active budget; no further consumption is allowed
func (b *Budget) Close() error {
	if b.Status != BudgetStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active budgets can be closed")
	}
	b.Status = BudgetStatusClosed
	b.UpdatedAt = time.Now()
	return nil
}

// IsActive returns true if the budget accepts consumption
func (b *Budget) IsActive() bool {
	return b.Status == BudgetStatusActive
}

// BudgetItem is a category-level allocation line within a budget.
// Invariant: RemainingAmount = AllocatedAmount - SpentAmount at all times.
type BudgetItem struct {
	shared.BaseAggregateRoot
	BudgetID        uuid.UUID       `json:"budget_id"`
	Category        string          `json:"category"`
	Description     string          `json:"description,omitempty"`
	AllocatedAmount decimal.Decimal `json:"allocated_amount"`
	SpentAmount     decimal.Decimal `json:"spent_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
}

// NewBudgetItem creates a new allocation line
func NewBudgetItem(budgetID uuid.UUID, category, description string, allocated decimal.Decimal) (*BudgetItem, error) {
	if budgetID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUDGET", "Budget ID cannot be empty")
	}
	if category == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category cannot be empty")
	}
	if allocated.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Allocated amount must be positive")
	}

	return &BudgetItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BudgetID:          budgetID,
		Category:          category,
		Description:       description,
		AllocatedAmount:   allocated,
		SpentAmount:       decimal.Zero,
		RemainingAmount:   allocated,
	}, nil
}

// Consume increases SpentAmount by amount and recomputes RemainingAmount.
// Consumption beyond the allocation is rejected.
func (i *BudgetItem) Consume(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Consumption amount must be positive")
	}
	if i.RemainingAmount.LessThan(amount) {
		return shared.ErrBudgetExceeded
	}
	i.SpentAmount = i.SpentAmount.Add(amount)
	i.RemainingAmount = i.AllocatedAmount.Sub(i.SpentAmount)
	i.UpdatedAt = time.Now()
	return nil
}

// Release decreases SpentAmount by amount, reversing a prior consumption
func (i *BudgetItem) Release(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Release amount must be positive")
	}
	if i.SpentAmount.LessThan(amount) {
		return shared.NewDomainError("INVALID_AMOUNT", "Cannot release more than the spent amount")
	}
	i.SpentAmount = i.SpentAmount.Sub(amount)
	i.RemainingAmount = i.AllocatedAmount.Sub(i.SpentAmount)
	i.UpdatedAt = time.Now()
	return nil
}

// Reallocate moves part of this item's unspent allocation to another item
// within the same budget.
func (i *BudgetItem) Reallocate(to *BudgetItem, amount decimal.Decimal) error {
	if to == nil {
		return shared.NewDomainError("INVALID_BUDGET_ITEM", "Target budget item is required")
	}
	if i.BudgetID != to.BudgetID {
		return shared.NewDomainError("INVALID_BUDGET_ITEM", "Reallocation must stay within the same budget")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Reallocation amount must be positive")
	}
	if i.RemainingAmount.LessThan(amount) {
		return shared.ErrBudgetExceeded
	}

	now := time.Now()
	i.AllocatedAmount = i.AllocatedAmount.Sub(amount)
	i.RemainingAmount = i.AllocatedAmount.Sub(i.SpentAmount)
	i.UpdatedAt = now
	to.AllocatedAmount = to.AllocatedAmount.Add(amount)
	to.RemainingAmount = to.AllocatedAmount.Sub(to.SpentAmount)
	to.UpdatedAt = now
	return nil
}

// UtilizationPercent returns spent/allocated as a percentage
func (i *BudgetItem) UtilizationPercent() decimal.Decimal {
	if i.AllocatedAmount.IsZero() {
		return decimal.Zero
	}
	return i.SpentAmount.Div(i.AllocatedAmount).Mul(decimal.NewFromInt(100)).Round(2)
}

package finance

import (
	"time"

	"github.com/amani/backend/internal/domain/shared"
	"github.com/amani/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashFlowType represents the direction of a ledger entry
type CashFlowType string

const (
	CashFlowTypeInflow  CashFlowType = "INFLOW"
	CashFlowTypeOutflow CashFlowType = "OUTFLOW"
)

// IsValid checks if the type is a valid CashFlowType
func (t CashFlowType) IsValid() bool {
	return t == CashFlowTypeInflow || t == CashFlowTypeOutflow
}

// CashFlowCategory classifies a ledger entry for reporting
type CashFlowCategory string

const (
	CashFlowCategoryDonation       CashFlowCategory = "DONATION"
	CashFlowCategoryGrant          CashFlowCategory = "GRANT"
	CashFlowCategoryExpensePayment CashFlowCategory = "EXPENSE_PAYMENT"
	CashFlowCategoryTransfer       CashFlowCategory = "TRANSFER"
	CashFlowCategoryBankCharge     CashFlowCategory = "BANK_CHARGE"
	CashFlowCategoryOther          CashFlowCategory = "OTHER"
)

// IsValid checks if the category is a valid CashFlowCategory
func (c CashFlowCategory) IsValid() bool {
	switch c {
	case CashFlowCategoryDonation, CashFlowCategoryGrant, CashFlowCategoryExpensePayment,
		CashFlowCategoryTransfer, CashFlowCategoryBankCharge, CashFlowCategoryOther:
		return true
	}
	return false
}

// CashFlow is one append-only ledger entry against a bank account, carrying
// the account balance before and after the posting.
// Invariant: BalanceAfter = BalanceBefore + Amount for inflows and
// BalanceAfter = BalanceBefore - Amount for outflows.
type CashFlow struct {
	shared.BaseAggregateRoot
	TransactionNumber string               `json:"transaction_number"`
	BankAccountID     uuid.UUID            `json:"bank_account_id"`
	Type              CashFlowType         `json:"type"`
	Category          CashFlowCategory     `json:"category"`
	Amount            decimal.Decimal      `json:"amount"`
	Currency          valueobject.Currency `json:"currency"`
	BalanceBefore     decimal.Decimal      `json:"balance_before"`
	BalanceAfter      decimal.Decimal      `json:"balance_after"`
	Description       string               `json:"description,omitempty"`
	FlowDate          time.Time            `json:"flow_date"`
	ExpenseID         *uuid.UUID           `json:"expense_id,omitempty"` // set when the outflow pays an expense
	RecordedBy        uuid.UUID            `json:"recorded_by"`
	IsReconciled      bool                 `json:"is_reconciled"`
	ReconciledBy      *uuid.UUID           `json:"reconciled_by,omitempty"`
	ReconciledAt      *time.Time           `json:"reconciled_at,omitempty"`
}

// NewCashFlow creates a new ledger entry. The balance pair must be consistent
// with the type and amount; postings are computed by BankAccount.Post so a
// mismatch here indicates a programming error upstream.
func NewCashFlow(
	transactionNumber string,
	bankAccountID uuid.UUID,
	flowType CashFlowType,
	category CashFlowCategory,
	amount decimal.Decimal,
	currency valueobject.Currency,
	balanceBefore, balanceAfter decimal.Decimal,
	description string,
	flowDate time.Time,
	recordedBy uuid.UUID,
) (*CashFlow, error) {
	if transactionNumber == "" {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_NUMBER", "Transaction number cannot be empty")
	}
	if bankAccountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Bank account ID cannot be empty")
	}
	if !flowType.IsValid() {
		return nil, shared.NewDomainError("INVALID_FLOW_TYPE", "Cash flow type is not valid")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Cash flow category is not valid")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if recordedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Recorder user ID cannot be empty")
	}

	var expected decimal.Decimal
	if flowType == CashFlowTypeInflow {
		expected = balanceBefore.Add(amount)
	} else {
		expected = balanceBefore.Sub(amount)
	}
	if !expected.Equal(balanceAfter) {
		return nil, shared.NewDomainError("INVALID_BALANCE", "Balance after does not match balance before and amount")
	}

	return &CashFlow{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TransactionNumber: transactionNumber,
		BankAccountID:     bankAccountID,
		Type:              flowType,
		Category:          category,
		Amount:            amount,
		Currency:          currency,
		BalanceBefore:     balanceBefore,
		BalanceAfter:      balanceAfter,
		Description:       description,
		FlowDate:          flowDate,
		RecordedBy:        recordedBy,
	}, nil
}

// LinkExpense ties this entry to the expense it paid
func (f *CashFlow) LinkExpense(expenseID uuid.UUID) {
	f.ExpenseID = &expenseID
	f.UpdatedAt = time.Now()
}

// Reconcile marks the entry as verified against a bank statement.
// Reconciling an already reconciled entry is a no-op. Balances are never
// touched by reconciliation.
func (f *CashFlow) Reconcile(reconciledBy uuid.UUID, reconciledAt time.Time) error {
	if reconciledBy == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Reconciler user ID cannot be empty")
	}
	if f.IsReconciled {
		return nil
	}
	f.IsReconciled = true
	f.ReconciledBy = &reconciledBy
	f.ReconciledAt = &reconciledAt
	f.UpdatedAt = time.Now()
	return nil
}

// Unreconcile clears the reconciliation metadata
func (f *CashFlow) Unreconcile() {
	f.IsReconciled = false
	f.ReconciledBy = nil
	f.ReconciledAt = nil
	f.UpdatedAt = time.Now()
}

// SignedAmount returns the amount with inflow positive and outflow negative
func (f *CashFlow) SignedAmount() decimal.Decimal {
	if f.Type == CashFlowTypeOutflow {
		return f.Amount.Neg()
	}
	return f.Amount
}

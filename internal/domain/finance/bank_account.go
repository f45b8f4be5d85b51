package finance

import (
	"time"

	"github.com/amani/backend/internal/domain/shared"
	"github.com/amani/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// BankAccount is an organization bank account. Its balance never goes
// negative and is mutated only through cash flow ledger postings.
type BankAccount struct {
	shared.BaseAggregateRoot
	AccountNumber  string               `json:"account_number"`
	AccountName    string               `json:"account_name"`
	BankName       string               `json:"bank_name"`
	Currency       valueobject.Currency `json:"currency"`
	CurrentBalance decimal.Decimal      `json:"current_balance"`
	IsActive       bool                 `json:"is_active"`
}

// NewBankAccount creates a new active bank account with an opening balance
func NewBankAccount(accountNumber, accountName, bankName string, currency valueobject.Currency, openingBalance decimal.Decimal) (*BankAccount, error) {
	if accountNumber == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NUMBER", "Account number cannot be empty")
	}
	if accountName == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot be empty")
	}
	if bankName == "" {
		return nil, shared.NewDomainError("INVALID_BANK_NAME", "Bank name cannot be empty")
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency is not supported")
	}
	if openingBalance.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Opening balance cannot be negative")
	}

	return &BankAccount{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AccountNumber:     accountNumber,
		AccountName:       accountName,
		BankName:          bankName,
		Currency:          currency,
		CurrentBalance:    openingBalance,
		IsActive:          true,
	}, nil
}

// Post applies a ledger posting to the account balance and returns the
// balance before and after. An outflow that would drive the balance
// negative is rejected without mutating the account.
func (a *BankAccount) Post(flowType CashFlowType, amount decimal.Decimal) (before, after decimal.Decimal, err error) {
	if !a.IsActive {
		return decimal.Zero, decimal.Zero, shared.NewDomainError("INVALID_STATE", "Bank account is inactive")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, decimal.Zero, shared.NewDomainError("INVALID_AMOUNT", "Posting amount must be positive")
	}

	before = a.CurrentBalance
	switch flowType {
	case CashFlowTypeInflow:
		after = before.Add(amount)
	case CashFlowTypeOutflow:
		after = before.Sub(amount)
		if after.IsNegative() {
			return decimal.Zero, decimal.Zero, shared.ErrInsufficientBalance
		}
	default:
		return decimal.Zero, decimal.Zero, shared.NewDomainError("INVALID_FLOW_TYPE", "Cash flow type is not valid")
	}

	a.CurrentBalance = after
	a.UpdatedAt = time.Now()
	return before, after, nil
}

// Deactivate closes the account for further postings
func (a *BankAccount) Deactivate() error {
	if !a.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Bank account is already inactive")
	}
	a.IsActive = false
	a.UpdatedAt = time.Now()
	return nil
}

// Activate re-enables a deactivated account
func (a *BankAccount) Activate() error {
	if a.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Bank account is already active")
	}
	a.IsActive = true
	a.UpdatedAt = time.Now()
	return nil
}

// GetBalanceMoney returns the current balance as Money
func (a *BankAccount) GetBalanceMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(a.CurrentBalance, a.Currency)
	return m
}

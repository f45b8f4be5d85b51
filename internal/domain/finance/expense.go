package finance

import (
	"fmt"
	"time"

	"github.com/amani/backend/internal/domain/shared"
	"github.com/amani/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseStatus represents the status of an expense in the approval workflow
type ExpenseStatus string

const (
	ExpenseStatusDraft       ExpenseStatus = "DRAFT"        // Not yet submitted
	ExpenseStatusSubmitted   ExpenseStatus = "SUBMITTED"    // Awaiting finance review
	ExpenseStatusUnderReview ExpenseStatus = "UNDER_REVIEW" // Picked up by a finance officer
	ExpenseStatusApproved    ExpenseStatus = "APPROVED"     // Approved, budget consumed
	ExpenseStatusRejected    ExpenseStatus = "REJECTED"     // Rejected, may be resubmitted
	ExpenseStatusPaid        ExpenseStatus = "PAID"         // Paid out through a bank account
)

// IsValid checks if the status is a valid ExpenseStatus
func (s ExpenseStatus) IsValid() bool {
	switch s {
	case ExpenseStatusDraft, ExpenseStatusSubmitted, ExpenseStatusUnderReview,
		ExpenseStatusApproved, ExpenseStatusRejected, ExpenseStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of ExpenseStatus
func (s ExpenseStatus) String() string {
	return string(s)
}

// CanSubmit returns true if the expense can be submitted for review
func (s ExpenseStatus) CanSubmit() bool {
	return s == ExpenseStatusDraft
}

// CanStartReview returns true if a finance officer can pick the expense up
func (s ExpenseStatus) CanStartReview() bool {
	return s == ExpenseStatusSubmitted
}

// CanApprove returns true if the expense can be approved
func (s ExpenseStatus) CanApprove() bool {
	return s == ExpenseStatusUnderReview
}

// CanReject returns true if the expense can be rejected.
// An already approved but unpaid expense may still be rejected; the budget
// consumption is reversed by the application layer.
func (s ExpenseStatus) CanReject() bool {
	return s == ExpenseStatusSubmitted || s == ExpenseStatusUnderReview || s == ExpenseStatusApproved
}

// CanResubmit returns true if a rejected expense can be submitted again
func (s ExpenseStatus) CanResubmit() bool {
	return s == ExpenseStatusRejected
}

// CanPay returns true if the expense can be paid out
func (s ExpenseStatus) CanPay() bool {
	return s == ExpenseStatusApproved
}

// IsTerminal returns true if no further workflow transition is possible
func (s ExpenseStatus) IsTerminal() bool {
	return s == ExpenseStatusPaid
}

// Expense represents an expense aggregate root. It moves through the
// approval workflow DRAFT -> SUBMITTED -> UNDER_REVIEW -> APPROVED -> PAID,
// with REJECTED reachable from SUBMITTED, UNDER_REVIEW and APPROVED, and
// REJECTED -> SUBMITTED on resubmission.
type Expense struct {
	shared.BaseAggregateRoot
	ExpenseNumber   string               `json:"expense_number"`
	ProjectID       uuid.UUID            `json:"project_id"`
	BudgetItemID    *uuid.UUID           `json:"budget_item_id,omitempty"`
	Amount          decimal.Decimal      `json:"amount"`
	Currency        valueobject.Currency `json:"currency"`
	Description     string               `json:"description"`
	IncurredAt      time.Time            `json:"incurred_at"`
	Status          ExpenseStatus        `json:"status"`
	ReceiptKey      string               `json:"receipt_key,omitempty"` // object storage key of the uploaded receipt
	SubmittedBy     uuid.UUID            `json:"submitted_by"`
	SubmittedAt     *time.Time           `json:"submitted_at,omitempty"`
	ReviewedBy      *uuid.UUID           `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time           `json:"reviewed_at,omitempty"`
	ApprovedBy      *uuid.UUID           `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time           `json:"approved_at,omitempty"`
	PaidBy          *uuid.UUID           `json:"paid_by,omitempty"`
	PaidAt          *time.Time           `json:"paid_at,omitempty"`
	BankAccountID   *uuid.UUID           `json:"bank_account_id,omitempty"` // account the payment was drawn from
	RejectedBy      *uuid.UUID           `json:"rejected_by,omitempty"`
	RejectedAt      *time.Time           `json:"rejected_at,omitempty"`
	RejectionReason string               `json:"rejection_reason,omitempty"`
	// BudgetApplied records whether this expense has consumed its linked
	// budget item, so a reversal happens exactly once.
	BudgetApplied bool `json:"budget_applied"`
}

// NewExpense creates a new expense in draft status
func NewExpense(
	expenseNumber string,
	projectID uuid.UUID,
	budgetItemID *uuid.UUID,
	amount valueobject.Money,
	description string,
	incurredAt time.Time,
	submittedBy uuid.UUID,
) (*Expense, error) {
	if expenseNumber == "" {
		return nil, shared.NewDomainError("INVALID_EXPENSE_NUMBER", "Expense number cannot be empty")
	}
	if projectID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROJECT", "Project ID cannot be empty")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if !amount.Currency().IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency is not supported")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if len(description) > 500 {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 500 characters")
	}
	if submittedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Submitter user ID cannot be empty")
	}

	return &Expense{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ExpenseNumber:     expenseNumber,
		ProjectID:         projectID,
		BudgetItemID:      budgetItemID,
		Amount:            amount.Amount(),
		Currency:          amount.Currency(),
		Description:       description,
		IncurredAt:        incurredAt,
		Status:            ExpenseStatusDraft,
		SubmittedBy:       submittedBy,
	}, nil
}

// invalidTransition builds the error for a disallowed workflow transition,
// naming the current and requested states.
func invalidTransition(from, to ExpenseStatus) error {
	return shared.NewDomainError("INVALID_STATE",
		fmt.Sprintf("Cannot transition expense from %s to %s", from, to))
}

// Submit submits the expense for finance review
func (e *Expense) Submit(submittedBy uuid.UUID) error {
	if !e.Status.CanSubmit() {
		return invalidTransition(e.Status, ExpenseStatusSubmitted)
	}
	if submittedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Submitter user ID cannot be empty")
	}

	now := time.Now()
	e.Status = ExpenseStatusSubmitted
	e.SubmittedBy = submittedBy
	e.SubmittedAt = &now
	e.UpdatedAt = now
	return nil
}

// StartReview moves a submitted expense under review
func (e *Expense) StartReview(reviewedBy uuid.UUID) error {
	if !e.Status.CanStartReview() {
		return invalidTransition(e.Status, ExpenseStatusUnderReview)
	}
	if reviewedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Reviewer user ID cannot be empty")
	}

	now := time.Now()
	e.Status = ExpenseStatusUnderReview
	e.ReviewedBy = &reviewedBy
	e.ReviewedAt = &now
	e.UpdatedAt = now
	return nil
}

// Approve approves an expense under review
func (e *Expense) Approve(approvedBy uuid.UUID) error {
	if !e.Status.CanApprove() {
		return invalidTransition(e.Status, ExpenseStatusApproved)
	}
	if approvedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Approver user ID cannot be empty")
	}

	now := time.Now()
	e.Status = ExpenseStatusApproved
	e.ApprovedBy = &approvedBy
	e.ApprovedAt = &now
	e.UpdatedAt = now
	return nil
}

// Reject rejects the expense with a reason
func (e *Expense) Reject(rejectedBy uuid.UUID, reason string) error {
	if !e.Status.CanReject() {
		return invalidTransition(e.Status, ExpenseStatusRejected)
	}
	if rejectedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Rejector user ID cannot be empty")
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Rejection reason is required")
	}

	now := time.Now()
	e.Status = ExpenseStatusRejected
	e.RejectedBy = &rejectedBy
	e.RejectedAt = &now
	e.RejectionReason = reason
	e.UpdatedAt = now
	return nil
}

// Resubmit moves a rejected expense back to submitted and clears the
// rejection reason
func (e *Expense) Resubmit(submittedBy uuid.UUID) error {
	if !e.Status.CanResubmit() {
		return invalidTransition(e.Status, ExpenseStatusSubmitted)
	}
	if submittedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Submitter user ID cannot be empty")
	}
	if submittedBy != e.SubmittedBy {
		return shared.NewDomainError("FORBIDDEN", "Only the original submitter can resubmit an expense")
	}

	now := time.Now()
	e.Status = ExpenseStatusSubmitted
	e.SubmittedAt = &now
	e.RejectedBy = nil
	e.RejectedAt = nil
	e.RejectionReason = ""
	e.ReviewedBy = nil
	e.ReviewedAt = nil
	e.UpdatedAt = now
	return nil
}

// MarkPaid marks an approved expense as paid out of the given bank account
func (e *Expense) MarkPaid(paidBy, bankAccountID uuid.UUID) error {
	if !e.Status.CanPay() {
		return invalidTransition(e.Status, ExpenseStatusPaid)
	}
	if paidBy == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Payer user ID cannot be empty")
	}
	if bankAccountID == uuid.Nil {
		return shared.NewDomainError("INVALID_ACCOUNT", "Bank account ID cannot be empty")
	}

	now := time.Now()
	e.Status = ExpenseStatusPaid
	e.PaidBy = &paidBy
	e.PaidAt = &now
	e.BankAccountID = &bankAccountID
	e.UpdatedAt = now
	return nil
}

// Update updates the expense details (draft and rejected only)
func (e *Expense) Update(budgetItemID *uuid.UUID, amount valueobject.Money, description string, incurredAt time.Time) error {
	if e.Status != ExpenseStatusDraft && e.Status != ExpenseStatusRejected {
		return shared.NewDomainError("INVALID_STATE", "Can only update an expense in draft or rejected status")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if !amount.Currency().IsValid() {
		return shared.NewDomainError("INVALID_CURRENCY", "Currency is not supported")
	}
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if len(description) > 500 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 500 characters")
	}

	e.BudgetItemID = budgetItemID
	e.Amount = amount.Amount()
	e.Currency = amount.Currency()
	e.Description = description
	e.IncurredAt = incurredAt
	e.UpdatedAt = time.Now()
	return nil
}

// SetReceiptKey attaches an uploaded receipt to the expense
func (e *Expense) SetReceiptKey(key string) {
	e.ReceiptKey = key
	e.UpdatedAt = time.Now()
}

// MarkBudgetApplied records that the linked budget item was consumed
func (e *Expense) MarkBudgetApplied() {
	e.BudgetApplied = true
	e.UpdatedAt = time.Now()
}

// MarkBudgetReleased records that the budget consumption was reversed
func (e *Expense) MarkBudgetReleased() {
	e.BudgetApplied = false
	e.UpdatedAt = time.Now()
}

// GetAmountMoney returns the amount as Money
func (e *Expense) GetAmountMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(e.Amount, e.Currency)
	return m
}

// IsPaid returns true if the expense has been paid
func (e *Expense) IsPaid() bool {
	return e.Status == ExpenseStatusPaid
}

// IsApproved returns true if the expense is approved
func (e *Expense) IsApproved() bool {
	return e.Status == ExpenseStatusApproved
}

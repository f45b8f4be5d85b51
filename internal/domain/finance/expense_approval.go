package finance

import (
	"time"

	"github.com/amani/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ApprovalAction represents a single decision in the expense workflow
type ApprovalAction string

const (
	ApprovalActionApproved ApprovalAction = "APPROVED"
	ApprovalActionRejected ApprovalAction = "REJECTED"
	ApprovalActionReturned ApprovalAction = "RETURNED"
)

// IsValid checks if the action is a valid ApprovalAction
func (a ApprovalAction) IsValid() bool {
	switch a {
	case ApprovalActionApproved, ApprovalActionRejected, ApprovalActionReturned:
		return true
	}
	return false
}

// Approval levels in the expense workflow
const (
	ApprovalLevelFinanceReview = 1 // finance officer review
	ApprovalLevelManagement    = 2 // programs manager decision
)

// ExpenseApproval is one append-only audit record of an approve/reject/return
// decision. Rows are written once per transition and never mutated.
type ExpenseApproval struct {
	shared.BaseEntity
	ExpenseID     uuid.UUID      `json:"expense_id"`
	ApprovalLevel int            `json:"approval_level"`
	Action        ApprovalAction `json:"action"`
	ActorID       uuid.UUID      `json:"actor_id"`
	Comments      string         `json:"comments,omitempty"`
	ActionDate    time.Time      `json:"action_date"`
}

// NewExpenseApproval creates a new approval audit record
func NewExpenseApproval(expenseID uuid.UUID, level int, action ApprovalAction, actorID uuid.UUID, comments string) (*ExpenseApproval, error) {
	if expenseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EXPENSE", "Expense ID cannot be empty")
	}
	if level != ApprovalLevelFinanceReview && level != ApprovalLevelManagement {
		return nil, shared.NewDomainError("INVALID_LEVEL", "Approval level is not valid")
	}
	if !action.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACTION", "Approval action is not valid")
	}
	if actorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Actor user ID cannot be empty")
	}

	return &ExpenseApproval{
		BaseEntity:    shared.NewBaseEntity(),
		ExpenseID:     expenseID,
		ApprovalLevel: level,
		Action:        action,
		ActorID:       actorID,
		Comments:      comments,
		ActionDate:    time.Now(),
	}, nil
}

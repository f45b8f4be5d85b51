package models

import (
	"time"

	"github.com/amani/backend/internal/domain/finance"
	"github.com/amani/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseModel is the persistence model for the Expense aggregate root.
type ExpenseModel struct {
	AggregateModel
	ExpenseNumber   string                `gorm:"type:varchar(50);not null;uniqueIndex"`
	ProjectID       uuid.UUID             `gorm:"type:uuid;not null;index"`
	BudgetItemID    *uuid.UUID            `gorm:"type:uuid;index"`
	Amount          decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	Currency        valueobject.Currency  `gorm:"type:varchar(3);not null"`
	Description     string                `gorm:"type:varchar(500);not null"`
	IncurredAt      time.Time             `gorm:"not null;index"`
	Status          finance.ExpenseStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	ReceiptKey      string                `gorm:"type:varchar(500)"`
	SubmittedBy     uuid.UUID             `gorm:"type:uuid;not null;index"`
	SubmittedAt     *time.Time
	ReviewedBy      *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt      *time.Time
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt      *time.Time
	PaidBy          *uuid.UUID `gorm:"type:uuid"`
	PaidAt          *time.Time
	BankAccountID   *uuid.UUID `gorm:"type:uuid;index"`
	RejectedBy      *uuid.UUID `gorm:"type:uuid"`
	RejectedAt      *time.Time
	RejectionReason string `gorm:"type:varchar(500)"`
	BudgetApplied   bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense.
func (m *ExpenseModel) ToDomain() *finance.Expense {
	return &finance.Expense{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ExpenseNumber:     m.ExpenseNumber,
		ProjectID:         m.ProjectID,
		BudgetItemID:      m.BudgetItemID,
		Amount:            m.Amount,
		Currency:          m.Currency,
		Description:       m.Description,
		IncurredAt:        m.IncurredAt,
		Status:            m.Status,
		ReceiptKey:        m.ReceiptKey,
		SubmittedBy:       m.SubmittedBy,
		SubmittedAt:       m.SubmittedAt,
		ReviewedBy:        m.ReviewedBy,
		ReviewedAt:        m.ReviewedAt,
		ApprovedBy:        m.ApprovedBy,
		ApprovedAt:        m.ApprovedAt,
		PaidBy:            m.PaidBy,
		PaidAt:            m.PaidAt,
		BankAccountID:     m.BankAccountID,
		RejectedBy:        m.RejectedBy,
		RejectedAt:        m.RejectedAt,
		RejectionReason:   m.RejectionReason,
		BudgetApplied:     m.BudgetApplied,
	}
}

// FromDomain populates the persistence model from a domain Expense.
func (m *ExpenseModel) FromDomain(e *finance.Expense) {
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	m.ExpenseNumber = e.ExpenseNumber
	m.ProjectID = e.ProjectID
	m.BudgetItemID = e.BudgetItemID
	m.Amount = e.Amount
	m.Currency = e.Currency
	m.Description = e.Description
	m.IncurredAt = e.IncurredAt
	m.Status = e.Status
	m.ReceiptKey = e.ReceiptKey
	m.SubmittedBy = e.SubmittedBy
	m.SubmittedAt = e.SubmittedAt
	m.ReviewedBy = e.ReviewedBy
	m.ReviewedAt = e.ReviewedAt
	m.ApprovedBy = e.ApprovedBy
	m.ApprovedAt = e.ApprovedAt
	m.PaidBy = e.PaidBy
	m.PaidAt = e.PaidAt
	m.BankAccountID = e.BankAccountID
	m.RejectedBy = e.RejectedBy
	m.RejectedAt = e.RejectedAt
	m.RejectionReason = e.RejectionReason
	m.BudgetApplied = e.BudgetApplied
}

// ExpenseModelFromDomain creates a new persistence model from a domain Expense.
func ExpenseModelFromDomain(e *finance.Expense) *ExpenseModel {
	m := &ExpenseModel{}
	m.FromDomain(e)
	return m
}

// ExpenseApprovalModel is the persistence model for approval trail records.
// Rows are append-only.
type ExpenseApprovalModel struct {
	BaseModel
	ExpenseID     uuid.UUID              `gorm:"type:uuid;not null;index"`
	ApprovalLevel int                    `gorm:"not null"`
	Action        finance.ApprovalAction `gorm:"type:varchar(20);not null"`
	ActorID       uuid.UUID              `gorm:"type:uuid;not null"`
	Comments      string                 `gorm:"type:varchar(500)"`
	ActionDate    time.Time              `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ExpenseApprovalModel) TableName() string {
	return "expense_approvals"
}

// ToDomain converts the persistence model to a domain ExpenseApproval.
func (m *ExpenseApprovalModel) ToDomain() *finance.ExpenseApproval {
	return &finance.ExpenseApproval{
		BaseEntity:    m.BaseModel.ToDomain(),
		ExpenseID:     m.ExpenseID,
		ApprovalLevel: m.ApprovalLevel,
		Action:        m.Action,
		ActorID:       m.ActorID,
		Comments:      m.Comments,
		ActionDate:    m.ActionDate,
	}
}

// FromDomain populates the persistence model from a domain ExpenseApproval.
func (m *ExpenseApprovalModel) FromDomain(a *finance.ExpenseApproval) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.ExpenseID = a.ExpenseID
	m.ApprovalLevel = a.ApprovalLevel
	m.Action = a.Action
	m.ActorID = a.ActorID
	m.Comments = a.Comments
	m.ActionDate = a.ActionDate
}

// ExpenseApprovalModelFromDomain creates a new persistence model from a domain ExpenseApproval.
func ExpenseApprovalModelFromDomain(a *finance.ExpenseApproval) *ExpenseApprovalModel {
	m := &ExpenseApprovalModel{}
	m.FromDomain(a)
	return m
}

// BudgetModel is the persistence model for the Budget aggregate root.
type BudgetModel struct {
	AggregateModel
	ProjectID  uuid.UUID            `gorm:"type:uuid;not null;index"`
	Name       string               `gorm:"type:varchar(200);not null"`
	FiscalYear int                  `gorm:"not null;index"`
	Currency   valueobject.Currency `gorm:"type:varchar(3);not null"`
	Status     finance.BudgetStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	Notes      string               `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToDomain converts the persistence model to a domain Budget.
func (m *BudgetModel) ToDomain() *finance.Budget {
	return &finance.Budget{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ProjectID:         m.ProjectID,
		Name:              m.Name,
		FiscalYear:        m.FiscalYear,
		Currency:          m.Currency,
		Status:            m.Status,
		Notes:             m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Budget.
func (m *BudgetModel) FromDomain(b *finance.Budget) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.ProjectID = b.ProjectID
	m.Name = b.Name
	m.FiscalYear = b.FiscalYear
	m.Currency = b.Currency
	m.Status = b.Status
	m.Notes = b.Notes
}

// BudgetModelFromDomain creates a new persistence model from a domain Budget.
func BudgetModelFromDomain(b *finance.Budget) *BudgetModel {
	m := &BudgetModel{}
	m.FromDomain(b)
	return m
}

// BudgetItemModel is the persistence model for budget line items.
type BudgetItemModel struct {
	AggregateModel
	BudgetID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Category        string          `gorm:"type:varchar(100);not null"`
	Description     string          `gorm:"type:varchar(500)"`
	AllocatedAmount decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	SpentAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	RemainingAmount decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (BudgetItemModel) TableName() string {
	return "budget_items"
}

// ToDomain converts the persistence model to a domain BudgetItem.
func (m *BudgetItemModel) ToDomain() *finance.BudgetItem {
	return &finance.BudgetItem{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		BudgetID:          m.BudgetID,
		Category:          m.Category,
		Description:       m.Description,
		AllocatedAmount:   m.AllocatedAmount,
		SpentAmount:       m.SpentAmount,
		RemainingAmount:   m.RemainingAmount,
	}
}

// FromDomain populates the persistence model from a domain BudgetItem.
func (m *BudgetItemModel) FromDomain(i *finance.BudgetItem) {
	m.FromDomainAggregateRoot(i.BaseAggregateRoot)
	m.BudgetID = i.BudgetID
	m.Category = i.Category
	m.Description = i.Description
	m.AllocatedAmount = i.AllocatedAmount
	m.SpentAmount = i.SpentAmount
	m.RemainingAmount = i.RemainingAmount
}

// BudgetItemModelFromDomain creates a new persistence model from a domain BudgetItem.
func BudgetItemModelFromDomain(i *finance.BudgetItem) *BudgetItemModel {
	m := &BudgetItemModel{}
	m.FromDomain(i)
	return m
}

// BankAccountModel is the persistence model for the BankAccount aggregate root.
type BankAccountModel struct {
	AggregateModel
	AccountNumber  string               `gorm:"type:varchar(50);not null;uniqueIndex"`
	AccountName    string               `gorm:"type:varchar(200);not null"`
	BankName       string               `gorm:"type:varchar(200);not null"`
	Currency       valueobject.Currency `gorm:"type:varchar(3);not null"`
	CurrentBalance decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	IsActive       bool                 `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (BankAccountModel) TableName() string {
	return "bank_accounts"
}

// ToDomain converts the persistence model to a domain BankAccount.
func (m *BankAccountModel) ToDomain() *finance.BankAccount {
	return &finance.BankAccount{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		AccountNumber:     m.AccountNumber,
		AccountName:       m.AccountName,
		BankName:          m.BankName,
		Currency:          m.Currency,
		CurrentBalance:    m.CurrentBalance,
		IsActive:          m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain BankAccount.
func (m *BankAccountModel) FromDomain(a *finance.BankAccount) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.AccountNumber = a.AccountNumber
	m.AccountName = a.AccountName
	m.BankName = a.BankName
	m.Currency = a.Currency
	m.CurrentBalance = a.CurrentBalance
	m.IsActive = a.IsActive
}

// BankAccountModelFromDomain creates a new persistence model from a domain BankAccount.
func BankAccountModelFromDomain(a *finance.BankAccount) *BankAccountModel {
	m := &BankAccountModel{}
	m.FromDomain(a)
	return m
}

// CashFlowModel is the persistence model for ledger entries. The ledger is
// append-only; only reconciliation metadata is ever updated.
type CashFlowModel struct {
	AggregateModel
	TransactionNumber string                   `gorm:"type:varchar(50);not null;uniqueIndex"`
	BankAccountID     uuid.UUID                `gorm:"type:uuid;not null;index"`
	Type              finance.CashFlowType     `gorm:"type:varchar(10);not null;index"`
	Category          finance.CashFlowCategory `gorm:"type:varchar(30);not null;index"`
	Amount            decimal.Decimal          `gorm:"type:decimal(18,2);not null"`
	Currency          valueobject.Currency     `gorm:"type:varchar(3);not null"`
	BalanceBefore     decimal.Decimal          `gorm:"type:decimal(18,2);not null"`
	BalanceAfter      decimal.Decimal          `gorm:"type:decimal(18,2);not null"`
	Description       string                   `gorm:"type:varchar(500)"`
	FlowDate          time.Time                `gorm:"not null;index"`
	ExpenseID         *uuid.UUID               `gorm:"type:uuid;index"`
	RecordedBy        uuid.UUID                `gorm:"type:uuid;not null"`
	IsReconciled      bool                     `gorm:"not null;default:false;index"`
	ReconciledBy      *uuid.UUID               `gorm:"type:uuid"`
	ReconciledAt      *time.Time
}

// TableName returns the table name for GORM
func (CashFlowModel) TableName() string {
	return "cash_flows"
}

// ToDomain converts the persistence model to a domain CashFlow.
func (m *CashFlowModel) ToDomain() *finance.CashFlow {
	return &finance.CashFlow{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		TransactionNumber: m.TransactionNumber,
		BankAccountID:     m.BankAccountID,
		Type:              m.Type,
		Category:          m.Category,
		Amount:            m.Amount,
		Currency:          m.Currency,
		BalanceBefore:     m.BalanceBefore,
		BalanceAfter:      m.BalanceAfter,
		Description:       m.Description,
		FlowDate:          m.FlowDate,
		ExpenseID:         m.ExpenseID,
		RecordedBy:        m.RecordedBy,
		IsReconciled:      m.IsReconciled,
		ReconciledBy:      m.ReconciledBy,
		ReconciledAt:      m.ReconciledAt,
	}
}

// FromDomain populates the persistence model from a domain CashFlow.
func (m *CashFlowModel) FromDomain(f *finance.CashFlow) {
	m.FromDomainAggregateRoot(f.BaseAggregateRoot)
	m.TransactionNumber = f.TransactionNumber
	m.BankAccountID = f.BankAccountID
	m.Type = f.Type
	m.Category = f.Category
	m.Amount = f.Amount
	m.Currency = f.Currency
	m.BalanceBefore = f.BalanceBefore
	m.BalanceAfter = f.BalanceAfter
	m.Description = f.Description
	m.FlowDate = f.FlowDate
	m.ExpenseID = f.ExpenseID
	m.RecordedBy = f.RecordedBy
	m.IsReconciled = f.IsReconciled
	m.ReconciledBy = f.ReconciledBy
	m.ReconciledAt = f.ReconciledAt
}

// CashFlowModelFromDomain creates a new persistence model from a domain CashFlow.
func CashFlowModelFromDomain(f *finance.CashFlow) *CashFlowModel {
	m := &CashFlowModel{}
	m.FromDomain(f)
	return m
}

// PurchaseOrderModel is the persistence model for the PurchaseOrder aggregate root.
type PurchaseOrderModel struct {
	AggregateModel
	PONumber        string                      `gorm:"type:varchar(50);not null;uniqueIndex"`
	ProjectID       uuid.UUID                   `gorm:"type:uuid;not null;index"`
	SupplierName    string                      `gorm:"type:varchar(200);not null"`
	SupplierContact string                      `gorm:"type:varchar(200)"`
	Lines           finance.PurchaseOrderLines  `gorm:"type:jsonb;not null;default:'[]'"`
	TotalAmount     decimal.Decimal             `gorm:"type:decimal(18,2);not null"`
	Currency        valueobject.Currency        `gorm:"type:varchar(3);not null"`
	Status          finance.PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	RequestedBy     uuid.UUID                   `gorm:"type:uuid;not null;index"`
	ApprovedBy      *uuid.UUID                  `gorm:"type:uuid"`
	ApprovedAt      *time.Time
	RejectedBy      *uuid.UUID `gorm:"type:uuid"`
	RejectionReason string     `gorm:"type:varchar(500)"`
	OrderedAt       *time.Time
	ReceivedAt      *time.Time
	CancelledAt     *time.Time
	CancelReason    string `gorm:"type:varchar(500)"`
	Notes           string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PurchaseOrderModel) TableName() string {
	return "purchase_orders"
}

// ToDomain converts the persistence model to a domain PurchaseOrder.
func (m *PurchaseOrderModel) ToDomain() *finance.PurchaseOrder {
	return &finance.PurchaseOrder{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		PONumber:          m.PONumber,
		ProjectID:         m.ProjectID,
		SupplierName:      m.SupplierName,
		SupplierContact:   m.SupplierContact,
		Lines:             m.Lines,
		TotalAmount:       m.TotalAmount,
		Currency:          m.Currency,
		Status:            m.Status,
		RequestedBy:       m.RequestedBy,
		ApprovedBy:        m.ApprovedBy,
		ApprovedAt:        m.ApprovedAt,
		RejectedBy:        m.RejectedBy,
		RejectionReason:   m.RejectionReason,
		OrderedAt:         m.OrderedAt,
		ReceivedAt:        m.ReceivedAt,
		CancelledAt:       m.CancelledAt,
		CancelReason:      m.CancelReason,
		Notes:             m.Notes,
	}
}

// FromDomain populates the persistence model from a domain PurchaseOrder.
func (m *PurchaseOrderModel) FromDomain(po *finance.PurchaseOrder) {
	m.FromDomainAggregateRoot(po.BaseAggregateRoot)
	m.PONumber = po.PONumber
	m.ProjectID = po.ProjectID
	m.SupplierName = po.SupplierName
	m.SupplierContact = po.SupplierContact
	m.Lines = po.Lines
	m.TotalAmount = po.TotalAmount
	m.Currency = po.Currency
	m.Status = po.Status
	m.RequestedBy = po.RequestedBy
	m.ApprovedBy = po.ApprovedBy
	m.ApprovedAt = po.ApprovedAt
	m.RejectedBy = po.RejectedBy
	m.RejectionReason = po.RejectionReason
	m.OrderedAt = po.OrderedAt
	m.ReceivedAt = po.ReceivedAt
	m.CancelledAt = po.CancelledAt
	m.CancelReason = po.CancelReason
	m.Notes = po.Notes
}

// PurchaseOrderModelFromDomain creates a new persistence model from a domain PurchaseOrder.
func PurchaseOrderModelFromDomain(po *finance.PurchaseOrder) *PurchaseOrderModel {
	m := &PurchaseOrderModel{}
	m.FromDomain(po)
	return m
}

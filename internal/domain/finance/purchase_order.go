package finance

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/amani/backend/internal/domain/shared"
	"github.com/amani/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus represents the status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft     PurchaseOrderStatus = "DRAFT"
	PurchaseOrderStatusSubmitted PurchaseOrderStatus = "SUBMITTED"
	PurchaseOrderStatusApproved  PurchaseOrderStatus = "APPROVED"
	PurchaseOrderStatusOrdered   PurchaseOrderStatus = "ORDERED"
	PurchaseOrderStatusReceived  PurchaseOrderStatus = "RECEIVED"
	PurchaseOrderStatusRejected  PurchaseOrderStatus = "REJECTED"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusDraft, PurchaseOrderStatusSubmitted, PurchaseOrderStatusApproved,
		PurchaseOrderStatusOrdered, PurchaseOrderStatusReceived, PurchaseOrderStatusRejected,
		PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// PurchaseOrderLine is one ordered item on a purchase order
type PurchaseOrderLine struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// PurchaseOrderLines is a jsonb-persisted collection of order lines
type PurchaseOrderLines []PurchaseOrderLine

// Value implements driver.Valuer for jsonb storage
func (l PurchaseOrderLines) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for jsonb retrieval
func (l *PurchaseOrderLines) Scan(value any) error {
	if value == nil {
		*l = PurchaseOrderLines{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into PurchaseOrderLines", value)
	}
	return json.Unmarshal(data, l)
}

// PurchaseOrder is a procurement request that moves DRAFT -> SUBMITTED ->
// APPROVED -> ORDERED -> RECEIVED, with REJECTED reachable from SUBMITTED
// and CANCELLED from any non-terminal state.
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	PONumber        string               `json:"po_number"`
	ProjectID       uuid.UUID            `json:"project_id"`
	SupplierName    string               `json:"supplier_name"`
	SupplierContact string               `json:"supplier_contact,omitempty"`
	Lines           PurchaseOrderLines   `json:"lines"`
	TotalAmount     decimal.Decimal      `json:"total_amount"`
	Currency        valueobject.Currency `json:"currency"`
	Status          PurchaseOrderStatus  `json:"status"`
	RequestedBy     uuid.UUID            `json:"requested_by"`
	ApprovedBy      *uuid.UUID           `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time           `json:"approved_at,omitempty"`
	RejectedBy      *uuid.UUID           `json:"rejected_by,omitempty"`
	RejectionReason string               `json:"rejection_reason,omitempty"`
	OrderedAt       *time.Time           `json:"ordered_at,omitempty"`
	ReceivedAt      *time.Time           `json:"received_at,omitempty"`
	CancelledAt     *time.Time           `json:"cancelled_at,omitempty"`
	CancelReason    string               `json:"cancel_reason,omitempty"`
	Notes           string               `json:"notes,omitempty"`
}

// NewPurchaseOrder creates a new purchase order in draft status
func NewPurchaseOrder(
	poNumber string,
	projectID uuid.UUID,
	supplierName string,
	lines []PurchaseOrderLine,
	currency valueobject.Currency,
	requestedBy uuid.UUID,
) (*PurchaseOrder, error) {
	if poNumber == "" {
		return nil, shared.NewDomainError("INVALID_PO_NUMBER", "PO number cannot be empty")
	}
	if projectID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROJECT", "Project ID cannot be empty")
	}
	if supplierName == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier name cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("INVALID_LINES", "Purchase order must have at least one line")
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency is not supported")
	}
	if requestedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Requester user ID cannot be empty")
	}

	total := decimal.Zero
	normalized := make(PurchaseOrderLines, len(lines))
	for i, line := range lines {
		if line.Description == "" {
			return nil, shared.NewDomainError("INVALID_LINES", "Line description cannot be empty")
		}
		if line.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewDomainError("INVALID_LINES", "Line quantity must be positive")
		}
		if line.UnitPrice.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewDomainError("INVALID_LINES", "Line unit price must be positive")
		}
		line.LineTotal = line.Quantity.Mul(line.UnitPrice)
		normalized[i] = line
		total = total.Add(line.LineTotal)
	}

	return &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PONumber:          poNumber,
		ProjectID:         projectID,
		SupplierName:      supplierName,
		Lines:             normalized,
		TotalAmount:       total,
		Currency:          currency,
		Status:            PurchaseOrderStatusDraft,
		RequestedBy:       requestedBy,
	}, nil
}

func invalidPOTransition(from, to PurchaseOrderStatus) error {
	return shared.NewDomainError("INVALID_STATE",
		fmt.Sprintf("Cannot transition purchase order from %s to %s", from, to))
}

// Submit submits the purchase order for approval
func (p *PurchaseOrder) Submit() error {
	if p.Status != PurchaseOrderStatusDraft {
		return invalidPOTransition(p.Status, PurchaseOrderStatusSubmitted)
	}
	p.Status = PurchaseOrderStatusSubmitted
	p.UpdatedAt = time.Now()
	return nil
}

// Approve approves a submitted purchase order
func (p *PurchaseOrder) Approve(approvedBy uuid.UUID) error {
	if p.Status != PurchaseOrderStatusSubmitted {
		return invalidPOTransition(p.Status, PurchaseOrderStatusApproved)
	}
	if approvedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Approver user ID cannot be empty")
	}
	now := time.Now()
	p.Status = PurchaseOrderStatusApproved
	p.ApprovedBy = &approvedBy
	p.ApprovedAt = &now
	p.UpdatedAt = now
	return nil
}

// Reject rejects a submitted purchase order
func (p *PurchaseOrder) Reject(rejectedBy uuid.UUID, reason string) error {
	if p.Status != PurchaseOrderStatusSubmitted {
		return invalidPOTransition(p.Status, PurchaseOrderStatusRejected)
	}
	if rejectedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Rejector user ID cannot be empty")
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Rejection reason is required")
	}
	p.Status = PurchaseOrderStatusRejected
	p.RejectedBy = &rejectedBy
	p.RejectionReason = reason
	p.UpdatedAt = time.Now()
	return nil
}

// MarkOrdered records that the order was placed with the supplier
func (p *PurchaseOrder) MarkOrdered() error {
	if p.Status != PurchaseOrderStatusApproved {
		return invalidPOTransition(p.Status, PurchaseOrderStatusOrdered)
	}
	now := time.Now()
	p.Status = PurchaseOrderStatusOrdered
	p.OrderedAt = &now
	p.UpdatedAt = now
	return nil
}

// MarkReceived records delivery of the ordered goods
func (p *PurchaseOrder) MarkReceived() error {
	if p.Status != PurchaseOrderStatusOrdered {
		return invalidPOTransition(p.Status, PurchaseOrderStatusReceived)
	}
	now := time.Now()
	p.Status = PurchaseOrderStatusReceived
	p.ReceivedAt = &now
	p.UpdatedAt = now
	return nil
}

// Cancel cancels the purchase order before receipt
func (p *PurchaseOrder) Cancel(reason string) error {
	switch p.Status {
	case PurchaseOrderStatusReceived, PurchaseOrderStatusRejected, PurchaseOrderStatusCancelled:
		return invalidPOTransition(p.Status, PurchaseOrderStatusCancelled)
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}
	now := time.Now()
	p.Status = PurchaseOrderStatusCancelled
	p.CancelledAt = &now
	p.CancelReason = reason
	p.UpdatedAt = now
	return nil
}

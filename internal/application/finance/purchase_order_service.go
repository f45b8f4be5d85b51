package finance

import (
	"context"
	"fmt"

	"github.com/amani/backend/internal/domain/audit"
	"github.com/amani/backend/internal/domain/finance"
	"github.com/amani/backend/internal/domain/program"
	"github.com/amani/backend/internal/domain/shared"
	"github.com/amani/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreatePurchaseOrderCommand carries the input for creating a purchase order
type CreatePurchaseOrderCommand struct {
	ProjectID       uuid.UUID
	SupplierName    string
	SupplierContact string
	Lines           []finance.PurchaseOrderLine
	Currency        valueobject.Currency
	RequestedBy     uuid.UUID
	Notes           string
}

// PurchaseOrderService manages the procurement workflow
type PurchaseOrderService struct {
	poRepo       finance.PurchaseOrderRepository
	projectRepo  program.ProjectRepository
	activityRepo audit.ActivityLogRepository
	logger       *zap.Logger
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(
	poRepo finance.PurchaseOrderRepository,
	projectRepo program.ProjectRepository,
	activityRepo audit.ActivityLogRepository,
	logger *zap.Logger,
) *PurchaseOrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PurchaseOrderService{
		poRepo:       poRepo,
		projectRepo:  projectRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

func (s *PurchaseOrderService) logActivity(ctx context.Context, actorID uuid.UUID, action audit.Action, entityID uuid.UUID, detail string) {
	if s.activityRepo == nil {
		return
	}
	entry, err := audit.NewActivityLog(actorID, action, "PURCHASE_ORDER", entityID, detail)
	if err != nil {
		return
	}
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		s.logger.Warn("failed to write activity log", zap.Error(err))
	}
}

// CreatePurchaseOrder creates a draft purchase order
func (s *PurchaseOrderService) CreatePurchaseOrder(ctx context.Context, cmd CreatePurchaseOrderCommand) (*finance.PurchaseOrder, error) {
	project, err := s.projectRepo.FindByID(ctx, cmd.ProjectID)
	if err != nil {
		return nil, err
	}
	if !project.AcceptsSpending() {
		return nil, shared.NewDomainError("INVALID_STATE", "Purchase orders can only be raised against active projects")
	}

	number, err := s.poRepo.GeneratePONumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate PO number: %w", err)
	}

	po, err := finance.NewPurchaseOrder(number, cmd.ProjectID, cmd.SupplierName, cmd.Lines, cmd.Currency, cmd.RequestedBy)
	if err != nil {
		return nil, err
	}
	po.SupplierContact = cmd.SupplierContact
	po.Notes = cmd.Notes

	if err := s.poRepo.Save(ctx, po); err != nil {
		return nil, err
	}
	s.logActivity(ctx, cmd.RequestedBy, audit.ActionCreate, po.ID, po.PONumber)
	return po, nil
}

// GetPurchaseOrder returns one purchase order
func (s *PurchaseOrderService) GetPurchaseOrder(ctx context.Context, id uuid.UUID) (*finance.PurchaseOrder, error) {
	return s.poRepo.FindByID(ctx, id)
}

// ListPurchaseOrders returns a filtered page of purchase orders
func (s *PurchaseOrderService) ListPurchaseOrders(ctx context.Context, filter finance.PurchaseOrderFilter) (shared.Paginated[finance.PurchaseOrder], error) {
	items, err := s.poRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[finance.PurchaseOrder]{}, err
	}
	total, err := s.poRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[finance.PurchaseOrder]{}, err
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

type poTransition func(po *finance.PurchaseOrder) error

func (s *PurchaseOrderService) transition(ctx context.Context, id, actorID uuid.UUID, action audit.Action, detail string, fn poTransition) (*finance.PurchaseOrder, error) {
	po, err := s.poRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(po); err != nil {
		return nil, err
	}
	if err := s.poRepo.Save(ctx, po); err != nil {
		return nil, err
	}
	s.logActivity(ctx, actorID, action, id, detail)
	return po, nil
}

// SubmitPurchaseOrder submits a draft for approval
func (s *PurchaseOrderService) SubmitPurchaseOrder(ctx context.Context, id, actorID uuid.UUID) (*finance.PurchaseOrder, error) {
	return s.transition(ctx, id, actorID, audit.ActionSubmit, "", func(po *finance.PurchaseOrder) error {
		if po.RequestedBy != actorID {
			return shared.ErrForbidden
		}
		return po.Submit()
	})
}

// ApprovePurchaseOrder approves a submitted order
func (s *PurchaseOrderService) ApprovePurchaseOrder(ctx context.Context, id, actorID uuid.UUID) (*finance.PurchaseOrder, error) {
	return s.transition(ctx, id, actorID, audit.ActionApprove, "", func(po *finance.PurchaseOrder) error {
		return po.Approve(actorID)
	})
}

// RejectPurchaseOrder rejects a submitted order
func (s *PurchaseOrderService) RejectPurchaseOrder(ctx context.Context, id, actorID uuid.UUID, reason string) (*finance.PurchaseOrder, error) {
	return s.transition(ctx, id, actorID, audit.ActionReject, reason, func(po *finance.PurchaseOrder) error {
		return po.Reject(actorID, reason)
	})
}

// MarkOrdered records that the order was placed with the supplier
func (s *PurchaseOrderService) MarkOrdered(ctx context.Context, id, actorID uuid.UUID) (*finance.PurchaseOrder, error) {
	return s.transition(ctx, id, actorID, audit.ActionUpdate, "ordered", func(po *finance.PurchaseOrder) error {
		return po.MarkOrdered()
	})
}

// MarkReceived records delivery of the ordered goods
func (s *PurchaseOrderService) MarkReceived(ctx context.Context, id, actorID uuid.UUID) (*finance.PurchaseOrder, error) {
	return s.transition(ctx, id, actorID, audit.ActionUpdate, "received", func(po *finance.PurchaseOrder) error {
		return po.MarkReceived()
	})
}

// CancelPurchaseOrder cancels an order before receipt
func (s *PurchaseOrderService) CancelPurchaseOrder(ctx context.Context, id, actorID uuid.UUID, reason string) (*finance.PurchaseOrder, error) {
	return s.transition(ctx, id, actorID, audit.ActionUpdate, "cancelled: "+reason, func(po *finance.PurchaseOrder) error {
		return po.Cancel(reason)
	})
}

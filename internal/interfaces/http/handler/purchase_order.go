package handler

import (
	financeapp "github.com/amani/backend/internal/application/finance"
	"github.com/amani/backend/internal/domain/finance"
	"github.com/amani/backend/internal/domain/shared/valueobject"
	"github.com/amani/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderHandler handles procurement endpoints
type PurchaseOrderHandler struct {
	BaseHandler
	poService *financeapp.PurchaseOrderService
}

func NewPurchaseOrderHandler(poService *financeapp.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{poService: poService}
}

type PurchaseOrderLineRequest struct {
	Description string `json:"description" binding:"required,max=500"`
	Quantity    string `json:"quantity" binding:"required,decimal"`
	UnitPrice   string `json:"unit_price" binding:"required,decimal"`
}

type CreatePurchaseOrderRequest struct {
	ProjectID       string                     `json:"project_id" binding:"required,uuid"`
	SupplierName    string                     `json:"supplier_name" binding:"required,max=255"`
	SupplierContact string                     `json:"supplier_contact" binding:"max=255"`
	Currency        string                     `json:"currency" binding:"required,oneof=USD EUR GBP KES TZS UGX"`
	Lines           []PurchaseOrderLineRequest `json:"lines" binding:"required,min=1,dive"`
	Notes           string                     `json:"notes"`
}

type RejectPurchaseOrderRequest struct {
	Reason string `json:"reason" binding:"required,max=1000"`
}

type listPurchaseOrdersQuery struct {
	dto.ListRequest
	ProjectID *string `form:"project_id" binding:"omitempty,uuid"`
	Status    *string `form:"status" binding:"omitempty,oneof=DRAFT SUBMITTED APPROVED ORDERED RECEIVED REJECTED CANCELLED"`
	FromDate  string  `form:"from_date"`
	ToDate    string  `form:"to_date"`
}

func purchaseOrderLines(reqs []PurchaseOrderLineRequest) ([]finance.PurchaseOrderLine, error) {
	lines := make([]finance.PurchaseOrderLine, 0, len(reqs))
	for _, r := range reqs {
		quantity, err := decimal.NewFromString(r.Quantity)
		if err != nil {
			return nil, err
		}
		unitPrice, err := decimal.NewFromString(r.UnitPrice)
		if err != nil {
			return nil, err
		}
		lines = append(lines, finance.PurchaseOrderLine{
			Description: r.Description,
			Quantity:    quantity,
			UnitPrice:   unitPrice,
		})
	}
	return lines, nil
}

func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid purchase order request: "+err.Error())
		return
	}

	lines, err := purchaseOrderLines(req.Lines)
	if err != nil {
		h.BadRequest(c, "Invalid line amount: "+err.Error())
		return
	}
	projectID, _ := uuid.Parse(req.ProjectID)

	po, err := h.poService.CreatePurchaseOrder(c.Request.Context(), financeapp.CreatePurchaseOrderCommand{
		ProjectID:       projectID,
		SupplierName:    req.SupplierName,
		SupplierContact: req.SupplierContact,
		Lines:           lines,
		Currency:        valueobject.Currency(req.Currency),
		RequestedBy:     actorID,
		Notes:           req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, po)
}

func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	po, err := h.poService.GetPurchaseOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, po)
}

func (h *PurchaseOrderHandler) List(c *gin.Context) {
	var q listPurchaseOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid query: "+err.Error())
		return
	}

	filter := finance.PurchaseOrderFilter{Filter: q.ToFilter()}
	filter.ProjectID = parseUUIDPtr(q.ProjectID)
	if q.Status != nil {
		status := finance.PurchaseOrderStatus(*q.Status)
		filter.Status = &status
	}
	fromDate, err := parseOptionalDate(q.FromDate)
	if err != nil {
		h.BadRequest(c, "Invalid from_date format")
		return
	}
	toDate, err := parseOptionalDate(q.ToDate)
	if err != nil {
		h.BadRequest(c, "Invalid to_date format")
		return
	}
	filter.FromDate = fromDate
	filter.ToDate = toDate

	page, err := h.poService.ListPurchaseOrders(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

func (h *PurchaseOrderHandler) transition(c *gin.Context, fn func(ctx *gin.Context, id, actorID uuid.UUID) (*finance.PurchaseOrder, error)) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	po, err := fn(c, id, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, po)
}

func (h *PurchaseOrderHandler) Submit(c *gin.Context) {
	h.transition(c, func(ctx *gin.Context, id, actorID uuid.UUID) (*finance.PurchaseOrder, error) {
		return h.poService.SubmitPurchaseOrder(ctx.Request.Context(), id, actorID)
	})
}

func (h *PurchaseOrderHandler) Approve(c *gin.Context) {
	h.transition(c, func(ctx *gin.Context, id, actorID uuid.UUID) (*finance.PurchaseOrder, error) {
		return h.poService.ApprovePurchaseOrder(ctx.Request.Context(), id, actorID)
	})
}

func (h *PurchaseOrderHandler) MarkOrdered(c *gin.Context) {
	h.transition(c, func(ctx *gin.Context, id, actorID uuid.UUID) (*finance.PurchaseOrder, error) {
		return h.poService.MarkOrdered(ctx.Request.Context(), id, actorID)
	})
}

func (h *PurchaseOrderHandler) MarkReceived(c *gin.Context) {
	h.transition(c, func(ctx *gin.Context, id, actorID uuid.UUID) (*finance.PurchaseOrder, error) {
		return h.poService.MarkReceived(ctx.Request.Context(), id, actorID)
	})
}

func (h *PurchaseOrderHandler) Reject(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	var req RejectPurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid reject request: "+err.Error())
		return
	}

	po, err := h.poService.RejectPurchaseOrder(c.Request.Context(), id, actorID, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, po)
}

func (h *PurchaseOrderHandler) Cancel(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	var req RejectPurchaseOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, "Invalid cancel request: "+err.Error())
			return
		}
	}

	po, err := h.poService.CancelPurchaseOrder(c.Request.Context(), id, actorID, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, po)
}

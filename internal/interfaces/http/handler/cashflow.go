package handler

import (
	"strconv"
	"time"

	financeapp "github.com/amani/backend/internal/application/finance"
	"github.com/amani/backend/internal/domain/finance"
	"github.com/amani/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashFlowHandler handles cash flow ledger endpoints
type CashFlowHandler struct {
	BaseHandler
	cashFlowService *financeapp.CashFlowService
}

func NewCashFlowHandler(cashFlowService *financeapp.CashFlowService) *CashFlowHandler {
	return &CashFlowHandler{cashFlowService: cashFlowService}
}

type RecordTransactionRequest struct {
	BankAccountID string `json:"bank_account_id" binding:"required,uuid"`
	Type          string `json:"type" binding:"required,oneof=INFLOW OUTFLOW"`
	Category      string `json:"category" binding:"required,oneof=DONATION GRANT EXPENSE_PAYMENT TRANSFER BANK_CHARGE OTHER"`
	Amount        string `json:"amount" binding:"required,decimal"`
	Description   string `json:"description" binding:"required,max=1000"`
	FlowDate      string `json:"flow_date" binding:"required"`
}

type ReconcileRequest struct {
	ReconciledAt string `json:"reconciled_at"`
}

type listCashFlowsQuery struct {
	dto.ListRequest
	BankAccountID *string `form:"bank_account_id" binding:"omitempty,uuid"`
	Type          *string `form:"type" binding:"omitempty,oneof=INFLOW OUTFLOW"`
	Category      *string `form:"category" binding:"omitempty,oneof=DONATION GRANT EXPENSE_PAYMENT TRANSFER BANK_CHARGE OTHER"`
	IsReconciled  *bool   `form:"is_reconciled"`
	FromDate      string  `form:"from_date"`
	ToDate        string  `form:"to_date"`
}

// Record registers a manual ledger transaction
func (h *CashFlowHandler) Record(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid transaction request: "+err.Error())
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		h.BadRequest(c, "Invalid amount")
		return
	}
	flowDate, err := parseDate(req.FlowDate)
	if err != nil {
		h.BadRequest(c, "Invalid flow_date format")
		return
	}
	bankAccountID, _ := uuid.Parse(req.BankAccountID)

	flow, err := h.cashFlowService.RecordTransaction(c.Request.Context(), financeapp.RecordTransactionCommand{
		BankAccountID: bankAccountID,
		Type:          finance.CashFlowType(req.Type),
		Category:      finance.CashFlowCategory(req.Category),
		Amount:        amount,
		Description:   req.Description,
		FlowDate:      flowDate,
		RecordedBy:    actorID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, flow)
}

func (h *CashFlowHandler) Get(c *gin.Context) {
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	flow, err := h.cashFlowService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, flow)
}

func (h *CashFlowHandler) List(c *gin.Context) {
	var q listCashFlowsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid query: "+err.Error())
		return
	}

	filter := finance.CashFlowFilter{Filter: q.ToFilter(), IsReconciled: q.IsReconciled}
	filter.BankAccountID = parseUUIDPtr(q.BankAccountID)
	if q.Type != nil {
		flowType := finance.CashFlowType(*q.Type)
		filter.Type = &flowType
	}
	if q.Category != nil {
		category := finance.CashFlowCategory(*q.Category)
		filter.Category = &category
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

	page, err := h.cashFlowService.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// Reconcile marks a transaction as matched against a bank statement
func (h *CashFlowHandler) Reconcile(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	// Body is optional, absent means reconciled now
	var req ReconcileRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, "Invalid reconcile request: "+err.Error())
			return
		}
	}
	reconciledAt := time.Now()
	if req.ReconciledAt != "" {
		parsed, err := parseDate(req.ReconciledAt)
		if err != nil {
			h.BadRequest(c, "Invalid reconciled_at format")
			return
		}
		reconciledAt = parsed
	}

	flow, err := h.cashFlowService.Reconcile(c.Request.Context(), id, actorID, reconciledAt)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, flow)
}

// Unreconcile reverts a reconciliation mark
func (h *CashFlowHandler) Unreconcile(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	flow, err := h.cashFlowService.Unreconcile(c.Request.Context(), id, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, flow)
}

// Projection extrapolates the account balance over the coming months
func (h *CashFlowHandler) Projection(c *gin.Context) {
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	months := 6
	if raw := c.Query("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 3 || parsed > 12 {
			h.BadRequest(c, "months must be between 3 and 12")
			return
		}
		months = parsed
	}

	projection, err := h.cashFlowService.Project(c.Request.Context(), id, months)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, projection)
}

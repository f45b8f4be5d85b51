package handler

import (
	"io"

	documentapp "github.com/amani/backend/internal/application/document"
	financeapp "github.com/amani/backend/internal/application/finance"
	"github.com/amani/backend/internal/domain/document"
	"github.com/amani/backend/internal/domain/finance"
	"github.com/amani/backend/internal/domain/identity"
	"github.com/amani/backend/internal/domain/shared/valueobject"
	"github.com/amani/backend/internal/interfaces/http/dto"
	"github.com/amani/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseHandler handles expense workflow endpoints
type ExpenseHandler struct {
	BaseHandler
	expenseService  *financeapp.ExpenseService
	documentService *documentapp.DocumentService
}

func NewExpenseHandler(expenseService *financeapp.ExpenseService, documentService *documentapp.DocumentService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, documentService: documentService}
}

// canApproveExpenses reports whether the caller may act at the management
// approval level, not just the finance review
func canApproveExpenses(c *gin.Context) bool {
	return middleware.Allowed(identity.Role(middleware.GetJWTRole(c)), middleware.ResourceExpenses, middleware.ActionApprove)
}

type CreateExpenseRequest struct {
	ProjectID    string `json:"project_id" binding:"required,uuid"`
	BudgetItemID string `json:"budget_item_id" binding:"omitempty,uuid"`
	Amount       string `json:"amount" binding:"required,decimal"`
	Currency     string `json:"currency" binding:"required,oneof=USD EUR GBP KES TZS UGX"`
	Description  string `json:"description" binding:"required,max=500"`
	IncurredAt   string `json:"incurred_at" binding:"required"`
}

type UpdateExpenseRequest struct {
	BudgetItemID string `json:"budget_item_id" binding:"omitempty,uuid"`
	Amount       string `json:"amount" binding:"required,decimal"`
	Currency     string `json:"currency" binding:"required,oneof=USD EUR GBP KES TZS UGX"`
	Description  string `json:"description" binding:"required,max=500"`
	IncurredAt   string `json:"incurred_at" binding:"required"`
}

type RejectExpenseRequest struct {
	Reason string `json:"reason" binding:"required,max=1000"`
}

type PayExpenseRequest struct {
	BankAccountID string `json:"bank_account_id" binding:"required,uuid"`
}

type listExpensesQuery struct {
	dto.ListRequest
	ProjectID    *string `form:"project_id" binding:"omitempty,uuid"`
	BudgetItemID *string `form:"budget_item_id" binding:"omitempty,uuid"`
	Status       *string `form:"status" binding:"omitempty,oneof=DRAFT SUBMITTED UNDER_REVIEW APPROVED REJECTED PAID"`
	SubmittedBy  *string `form:"submitted_by" binding:"omitempty,uuid"`
	FromDate     string  `form:"from_date"`
	ToDate       string  `form:"to_date"`
	MinAmount    *string `form:"min_amount"`
	MaxAmount    *string `form:"max_amount"`
}

func parseUUIDPtr(s *string) *uuid.UUID {
	if s == nil {
		return nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil
	}
	return &id
}

func (h *ExpenseHandler) Create(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid expense request: "+err.Error())
		return
	}

	amount, err := valueobject.NewMoneyFromString(req.Amount, valueobject.Currency(req.Currency))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	incurredAt, err := parseDate(req.IncurredAt)
	if err != nil {
		h.BadRequest(c, "Invalid incurred_at format")
		return
	}
	projectID, _ := uuid.Parse(req.ProjectID)

	cmd := financeapp.CreateExpenseCommand{
		ProjectID:   projectID,
		Amount:      amount,
		Description: req.Description,
		IncurredAt:  incurredAt,
		SubmittedBy: actorID,
	}
	if req.BudgetItemID != "" {
		cmd.BudgetItemID = parseUUIDPtr(&req.BudgetItemID)
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, expense)
}

func (h *ExpenseHandler) Get(c *gin.Context) {
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	expense, approvals, err := h.expenseService.GetExpense(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"expense": expense, "approvals": approvals})
}

func (h *ExpenseHandler) List(c *gin.Context) {
	var q listExpensesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid query: "+err.Error())
		return
	}

	filter := finance.ExpenseFilter{Filter: q.ToFilter()}
	filter.ProjectID = parseUUIDPtr(q.ProjectID)
	filter.BudgetItemID = parseUUIDPtr(q.BudgetItemID)
	filter.SubmittedBy = parseUUIDPtr(q.SubmittedBy)
	if q.Status != nil {
		status := finance.ExpenseStatus(*q.Status)
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
	if q.MinAmount != nil {
		min, err := decimal.NewFromString(*q.MinAmount)
		if err != nil {
			h.BadRequest(c, "Invalid min_amount")
			return
		}
		filter.MinAmount = &min
	}
	if q.MaxAmount != nil {
		max, err := decimal.NewFromString(*q.MaxAmount)
		if err != nil {
			h.BadRequest(c, "Invalid max_amount")
			return
		}
		filter.MaxAmount = &max
	}

	page, err := h.expenseService.ListExpenses(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

func (h *ExpenseHandler) Update(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid expense request: "+err.Error())
		return
	}

	amount, err := valueobject.NewMoneyFromString(req.Amount, valueobject.Currency(req.Currency))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	incurredAt, err := parseDate(req.IncurredAt)
	if err != nil {
		h.BadRequest(c, "Invalid incurred_at format")
		return
	}

	cmd := financeapp.UpdateExpenseCommand{
		Amount:      amount,
		Description: req.Description,
		IncurredAt:  incurredAt,
	}
	if req.BudgetItemID != "" {
		cmd.BudgetItemID = parseUUIDPtr(&req.BudgetItemID)
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), id, actorID, cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expense)
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), id, actorID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *ExpenseHandler) transition(c *gin.Context, fn func(ctx *gin.Context, id, actorID uuid.UUID) (*finance.Expense, error)) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	expense, err := fn(c, id, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expense)
}

// Submit moves a draft expense into the approval queue
func (h *ExpenseHandler) Submit(c *gin.Context) {
	h.transition(c, func(ctx *gin.Context, id, actorID uuid.UUID) (*finance.Expense, error) {
		return h.expenseService.SubmitExpense(ctx.Request.Context(), id, actorID)
	})
}

// StartReview claims a submitted expense for review
func (h *ExpenseHandler) StartReview(c *gin.Context) {
	h.transition(c, func(ctx *gin.Context, id, actorID uuid.UUID) (*finance.Expense, error) {
		return h.expenseService.StartReview(ctx.Request.Context(), id, actorID)
	})
}

// Approve approves an expense under review and consumes its budget line
func (h *ExpenseHandler) Approve(c *gin.Context) {
	h.transition(c, func(ctx *gin.Context, id, actorID uuid.UUID) (*finance.Expense, error) {
		return h.expenseService.ApproveExpense(ctx.Request.Context(), id, actorID)
	})
}

// Resubmit returns a rejected expense to the approval queue
func (h *ExpenseHandler) Resubmit(c *gin.Context) {
	h.transition(c, func(ctx *gin.Context, id, actorID uuid.UUID) (*finance.Expense, error) {
		return h.expenseService.ResubmitExpense(ctx.Request.Context(), id, actorID)
	})
}

// Reject rejects an expense with a mandatory reason
func (h *ExpenseHandler) Reject(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	var req RejectExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid reject request: "+err.Error())
		return
	}

	expense, err := h.expenseService.RejectExpense(c.Request.Context(), id, actorID, req.Reason, canApproveExpenses(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expense)
}

// UploadReceipt stores a receipt file for the expense and links it
func (h *ExpenseHandler) UploadReceipt(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing receipt file")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Cannot read receipt file")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		h.InternalError(c, "Failed to read receipt file")
		return
	}

	ref, err := document.NewEntityRef(document.EntityKindExpense, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	doc, err := h.documentService.Upload(c.Request.Context(), documentapp.UploadDocumentCommand{
		FileName:   fileHeader.Filename,
		MIMEType:   fileHeader.Header.Get("Content-Type"),
		Data:       data,
		Category:   document.DocumentCategoryReceipt,
		Ref:        ref,
		UploadedBy: actorID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	expense, err := h.expenseService.AttachReceipt(c.Request.Context(), id, doc.StorageKey)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"expense": expense, "document": doc})
}

// Pay marks an approved expense as paid out of a bank account
func (h *ExpenseHandler) Pay(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	var req PayExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid pay request: "+err.Error())
		return
	}
	bankAccountID, _ := uuid.Parse(req.BankAccountID)

	expense, err := h.expenseService.PayExpense(c.Request.Context(), id, actorID, bankAccountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expense)
}

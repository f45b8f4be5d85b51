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

// BudgetHandler handles budget endpoints
type BudgetHandler struct {
	BaseHandler
	budgetService *financeapp.BudgetService
}

func NewBudgetHandler(budgetService *financeapp.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

type BudgetItemRequest struct {
	Category    string `json:"category" binding:"required,max=128"`
	Description string `json:"description" binding:"max=500"`
	Allocated   string `json:"allocated" binding:"required,decimal"`
}

type CreateBudgetRequest struct {
	ProjectID  string              `json:"project_id" binding:"required,uuid"`
	Name       string              `json:"name" binding:"required,max=255"`
	FiscalYear int                 `json:"fiscal_year" binding:"required,min=2000,max=2100"`
	Currency   string              `json:"currency" binding:"required,oneof=USD EUR GBP KES TZS UGX"`
	Items      []BudgetItemRequest `json:"items" binding:"required,min=1,dive"`
}

type ReallocateBudgetRequest struct {
	FromItemID string `json:"from_item_id" binding:"required,uuid"`
	ToItemID   string `json:"to_item_id" binding:"required,uuid"`
	Amount     string `json:"amount" binding:"required,decimal"`
}

type listBudgetsQuery struct {
	dto.ListRequest
	ProjectID  *string `form:"project_id" binding:"omitempty,uuid"`
	Status     *string `form:"status" binding:"omitempty,oneof=DRAFT ACTIVE CLOSED"`
	FiscalYear *int    `form:"fiscal_year"`
}

func budgetItemInputs(reqs []BudgetItemRequest) ([]financeapp.BudgetItemInput, error) {
	items := make([]financeapp.BudgetItemInput, 0, len(reqs))
	for _, r := range reqs {
		allocated, err := decimal.NewFromString(r.Allocated)
		if err != nil {
			return nil, err
		}
		items = append(items, financeapp.BudgetItemInput{
			Category:    r.Category,
			Description: r.Description,
			Allocated:   allocated,
		})
	}
	return items, nil
}

func (h *BudgetHandler) Create(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid budget request: "+err.Error())
		return
	}

	items, err := budgetItemInputs(req.Items)
	if err != nil {
		h.BadRequest(c, "Invalid allocation amount: "+err.Error())
		return
	}
	projectID, _ := uuid.Parse(req.ProjectID)

	budget, budgetItems, err := h.budgetService.CreateBudget(c.Request.Context(), financeapp.CreateBudgetCommand{
		ProjectID:  projectID,
		Name:       req.Name,
		FiscalYear: req.FiscalYear,
		Currency:   valueobject.Currency(req.Currency),
	}, items, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, gin.H{"budget": budget, "items": budgetItems})
}

func (h *BudgetHandler) Get(c *gin.Context) {
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	budget, items, err := h.budgetService.GetBudget(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"budget": budget, "items": items})
}

func (h *BudgetHandler) List(c *gin.Context) {
	var q listBudgetsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid query: "+err.Error())
		return
	}

	filter := finance.BudgetFilter{Filter: q.ToFilter(), FiscalYear: q.FiscalYear}
	filter.ProjectID = parseUUIDPtr(q.ProjectID)
	if q.Status != nil {
		status := finance.BudgetStatus(*q.Status)
		filter.Status = &status
	}

	page, err := h.budgetService.ListBudgets(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

func (h *BudgetHandler) Activate(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	budget, err := h.budgetService.ActivateBudget(c.Request.Context(), id, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, budget)
}

func (h *BudgetHandler) Close(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	budget, err := h.budgetService.CloseBudget(c.Request.Context(), id, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, budget)
}

// AddItem appends a new allocation line to a draft budget
func (h *BudgetHandler) AddItem(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	var req BudgetItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid budget item request: "+err.Error())
		return
	}
	allocated, err := decimal.NewFromString(req.Allocated)
	if err != nil {
		h.BadRequest(c, "Invalid allocation amount")
		return
	}

	item, err := h.budgetService.AddBudgetItem(c.Request.Context(), id, financeapp.BudgetItemInput{
		Category:    req.Category,
		Description: req.Description,
		Allocated:   allocated,
	}, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// Reallocate moves allocation between two lines of the same budget
func (h *BudgetHandler) Reallocate(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req ReallocateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid reallocation request: "+err.Error())
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		h.BadRequest(c, "Invalid reallocation amount")
		return
	}
	fromItemID, _ := uuid.Parse(req.FromItemID)
	toItemID, _ := uuid.Parse(req.ToItemID)

	if err := h.budgetService.ReallocateBudget(c.Request.Context(), fromItemID, toItemID, amount, actorID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *BudgetHandler) Delete(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	if err := h.budgetService.DeleteBudget(c.Request.Context(), id, actorID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

package handler

import (
	financeapp "github.com/amani/backend/internal/application/finance"
	"github.com/amani/backend/internal/domain/finance"
	"github.com/amani/backend/internal/domain/shared/valueobject"
	"github.com/amani/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// BankAccountHandler handles bank account endpoints
type BankAccountHandler struct {
	BaseHandler
	accountService *financeapp.BankAccountService
}

func NewBankAccountHandler(accountService *financeapp.BankAccountService) *BankAccountHandler {
	return &BankAccountHandler{accountService: accountService}
}

type CreateBankAccountRequest struct {
	AccountNumber  string `json:"account_number" binding:"required,max=64"`
	AccountName    string `json:"account_name" binding:"required,max=255"`
	BankName       string `json:"bank_name" binding:"required,max=255"`
	Currency       string `json:"currency" binding:"required,oneof=USD EUR GBP KES TZS UGX"`
	OpeningBalance string `json:"opening_balance" binding:"omitempty,decimal"`
}

type listBankAccountsQuery struct {
	dto.ListRequest
	IsActive *bool   `form:"is_active"`
	Currency *string `form:"currency" binding:"omitempty,oneof=USD EUR GBP KES TZS UGX"`
}

func (h *BankAccountHandler) Create(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid account request: "+err.Error())
		return
	}

	openingBalance := decimal.Zero
	if req.OpeningBalance != "" {
		var err error
		openingBalance, err = decimal.NewFromString(req.OpeningBalance)
		if err != nil {
			h.BadRequest(c, "Invalid opening_balance")
			return
		}
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), financeapp.CreateBankAccountCommand{
		AccountNumber:  req.AccountNumber,
		AccountName:    req.AccountName,
		BankName:       req.BankName,
		Currency:       valueobject.Currency(req.Currency),
		OpeningBalance: openingBalance,
	}, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, account)
}

func (h *BankAccountHandler) Get(c *gin.Context) {
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccount(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

func (h *BankAccountHandler) List(c *gin.Context) {
	var q listBankAccountsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid query: "+err.Error())
		return
	}

	filter := finance.BankAccountFilter{
		Filter:   q.ToFilter(),
		IsActive: q.IsActive,
		Currency: q.Currency,
	}

	page, err := h.accountService.ListAccounts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

func (h *BankAccountHandler) Deactivate(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	account, err := h.accountService.DeactivateAccount(c.Request.Context(), id, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

func (h *BankAccountHandler) Activate(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	account, err := h.accountService.ActivateAccount(c.Request.Context(), id, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

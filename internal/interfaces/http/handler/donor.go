package handler

import (
	programapp "github.com/amani/backend/internal/application/program"
	"github.com/amani/backend/internal/domain/program"
	"github.com/amani/backend/internal/domain/shared/valueobject"
	"github.com/amani/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DonorHandler handles donor and funding endpoints
type DonorHandler struct {
	BaseHandler
	donorService *programapp.DonorService
}

func NewDonorHandler(donorService *programapp.DonorService) *DonorHandler {
	return &DonorHandler{donorService: donorService}
}

type CreateDonorRequest struct {
	Name          string `json:"name" binding:"required,max=255"`
	Type          string `json:"type" binding:"required,oneof=INDIVIDUAL CORPORATE FOUNDATION GOVERNMENT"`
	Email         string `json:"email" binding:"omitempty,email"`
	Phone         string `json:"phone" binding:"max=32"`
	Address       string `json:"address" binding:"max=500"`
	ContactPerson string `json:"contact_person" binding:"max=255"`
}

type UpdateDonorRequest struct {
	Name          string `json:"name" binding:"required,max=255"`
	Phone         string `json:"phone" binding:"max=32"`
	Address       string `json:"address" binding:"max=500"`
	ContactPerson string `json:"contact_person" binding:"max=255"`
	Notes         string `json:"notes"`
}

type RecordFundingRequest struct {
	ProjectID    string `json:"project_id" binding:"required,uuid"`
	Amount       string `json:"amount" binding:"required,decimal"`
	Currency     string `json:"currency" binding:"required,oneof=USD EUR GBP KES TZS UGX"`
	IsRestricted bool   `json:"is_restricted"`
	FundingDate  string `json:"funding_date" binding:"required"`
	Reference    string `json:"reference" binding:"max=64"`
	Notes        string `json:"notes"`
}

type listDonorsQuery struct {
	dto.ListRequest
	Type     *string `form:"type" binding:"omitempty,oneof=INDIVIDUAL CORPORATE FOUNDATION GOVERNMENT"`
	IsActive *bool   `form:"is_active"`
}

func (h *DonorHandler) Create(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req CreateDonorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid donor request: "+err.Error())
		return
	}

	donor, err := h.donorService.CreateDonor(c.Request.Context(), programapp.CreateDonorCommand{
		Name:          req.Name,
		Type:          program.DonorType(req.Type),
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		ContactPerson: req.ContactPerson,
	}, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, donor)
}

func (h *DonorHandler) Get(c *gin.Context) {
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	donor, err := h.donorService.GetDonor(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, donor)
}

func (h *DonorHandler) List(c *gin.Context) {
	var q listDonorsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid query: "+err.Error())
		return
	}

	filter := program.DonorFilter{Filter: q.ToFilter(), IsActive: q.IsActive}
	if q.Type != nil {
		donorType := program.DonorType(*q.Type)
		filter.Type = &donorType
	}

	page, err := h.donorService.ListDonors(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

func (h *DonorHandler) Update(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	var req UpdateDonorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid donor request: "+err.Error())
		return
	}

	donor, err := h.donorService.UpdateDonor(c.Request.Context(), id, programapp.UpdateDonorCommand{
		Name:          req.Name,
		Phone:         req.Phone,
		Address:       req.Address,
		ContactPerson: req.ContactPerson,
		Notes:         req.Notes,
	}, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, donor)
}

func (h *DonorHandler) Deactivate(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	donor, err := h.donorService.DeactivateDonor(c.Request.Context(), id, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, donor)
}

func (h *DonorHandler) Activate(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	donor, err := h.donorService.ActivateDonor(c.Request.Context(), id, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, donor)
}

// RecordFunding records a funding commitment for the donor in the path
func (h *DonorHandler) RecordFunding(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	donorID, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	var req RecordFundingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid funding request: "+err.Error())
		return
	}

	amount, err := valueobject.NewMoneyFromString(req.Amount, valueobject.Currency(req.Currency))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	fundingDate, err := parseDate(req.FundingDate)
	if err != nil {
		h.BadRequest(c, "Invalid funding_date format")
		return
	}
	projectID, _ := uuid.Parse(req.ProjectID)

	funding, err := h.donorService.RecordFunding(c.Request.Context(), programapp.RecordFundingCommand{
		DonorID:      donorID,
		ProjectID:    projectID,
		Amount:       amount,
		IsRestricted: req.IsRestricted,
		FundingDate:  fundingDate,
		Reference:    req.Reference,
		Notes:        req.Notes,
	}, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, funding)
}

// ListFundings lists the funding commitments of the donor in the path
func (h *DonorHandler) ListFundings(c *gin.Context) {
	donorID, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	fundings, err := h.donorService.ListFundingsByDonor(c.Request.Context(), donorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, fundings)
}

// ListProjectFundings lists the funding commitments received by the project in the path
func (h *DonorHandler) ListProjectFundings(c *gin.Context) {
	projectID, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	fundings, err := h.donorService.ListFundingsByProject(c.Request.Context(), projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, fundings)
}

// ProjectFundingTotal returns the total funding committed to the project in the path
func (h *DonorHandler) ProjectFundingTotal(c *gin.Context) {
	projectID, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	total, err := h.donorService.ProjectFundingTotal(c.Request.Context(), projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"project_id": projectID, "total_funding": total})
}

// DeleteFunding removes a funding record
func (h *DonorHandler) DeleteFunding(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	fundingID, err := uuid.Parse(c.Param("fundingId"))
	if err != nil {
		h.BadRequest(c, "Invalid funding ID")
		return
	}

	if err := h.donorService.DeleteFunding(c.Request.Context(), fundingID, actorID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

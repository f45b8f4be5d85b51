package handler

import (
	programapp "github.com/amani/backend/internal/application/program"
	"github.com/amani/backend/internal/domain/program"
	"github.com/amani/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProjectHandler handles project endpoints
type ProjectHandler struct {
	BaseHandler
	projectService *programapp.ProjectService
}

func NewProjectHandler(projectService *programapp.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

type CreateProjectRequest struct {
	Code        string `json:"code" binding:"required,max=32"`
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
	Location    string `json:"location" binding:"max=255"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date"`
	ManagerID   string `json:"manager_id" binding:"required,uuid"`
}

type UpdateProjectRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
	Location    string `json:"location" binding:"max=255"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date"`
}

type AssignManagerRequest struct {
	ManagerID string `json:"manager_id" binding:"required,uuid"`
}

type listProjectsQuery struct {
	dto.ListRequest
	Status    *string `form:"status" binding:"omitempty,oneof=PLANNED ACTIVE ON_HOLD COMPLETED CANCELLED"`
	ManagerID *string `form:"manager_id" binding:"omitempty,uuid"`
}

func (h *ProjectHandler) Create(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid project request: "+err.Error())
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		h.BadRequest(c, "Invalid start_date format")
		return
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		h.BadRequest(c, "Invalid end_date format")
		return
	}
	managerID, _ := uuid.Parse(req.ManagerID)

	project, err := h.projectService.CreateProject(c.Request.Context(), programapp.CreateProjectCommand{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		StartDate:   startDate,
		EndDate:     endDate,
		ManagerID:   managerID,
	}, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, project)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, project)
}

func (h *ProjectHandler) List(c *gin.Context) {
	var q listProjectsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid query: "+err.Error())
		return
	}

	filter := program.ProjectFilter{Filter: q.ToFilter()}
	if q.Status != nil {
		status := program.ProjectStatus(*q.Status)
		filter.Status = &status
	}
	if q.ManagerID != nil {
		managerID, _ := uuid.Parse(*q.ManagerID)
		filter.ManagerID = &managerID
	}

	page, err := h.projectService.ListProjects(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid project request: "+err.Error())
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		h.BadRequest(c, "Invalid start_date format")
		return
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		h.BadRequest(c, "Invalid end_date format")
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), id, programapp.UpdateProjectCommand{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		StartDate:   startDate,
		EndDate:     endDate,
	}, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, project)
}

func (h *ProjectHandler) AssignManager(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	var req AssignManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid manager request: "+err.Error())
		return
	}
	managerID, _ := uuid.Parse(req.ManagerID)

	project, err := h.projectService.AssignManager(c.Request.Context(), id, managerID, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, project)
}

func (h *ProjectHandler) transition(c *gin.Context, fn func(ctx *gin.Context, id, actorID uuid.UUID) (*program.Project, error)) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	project, err := fn(c, id, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, project)
}

func (h *ProjectHandler) Activate(c *gin.Context) {
	h.transition(c, func(ctx *gin.Context, id, actorID uuid.UUID) (*program.Project, error) {
		return h.projectService.ActivateProject(ctx.Request.Context(), id, actorID)
	})
}

func (h *ProjectHandler) Hold(c *gin.Context) {
	h.transition(c, func(ctx *gin.Context, id, actorID uuid.UUID) (*program.Project, error) {
		return h.projectService.HoldProject(ctx.Request.Context(), id, actorID)
	})
}

func (h *ProjectHandler) Complete(c *gin.Context) {
	h.transition(c, func(ctx *gin.Context, id, actorID uuid.UUID) (*program.Project, error) {
		return h.projectService.CompleteProject(ctx.Request.Context(), id, actorID)
	})
}

func (h *ProjectHandler) Cancel(c *gin.Context) {
	h.transition(c, func(ctx *gin.Context, id, actorID uuid.UUID) (*program.Project, error) {
		return h.projectService.CancelProject(ctx.Request.Context(), id, actorID)
	})
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(c.Request.Context(), id, actorID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

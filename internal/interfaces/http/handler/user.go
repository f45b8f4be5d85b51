package handler

import (
	appidentity "github.com/amani/backend/internal/application/identity"
	"github.com/amani/backend/internal/domain/identity"
	"github.com/amani/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// UserHandler handles user administration endpoints
type UserHandler struct {
	BaseHandler
	userService *appidentity.UserService
}

func NewUserHandler(userService *appidentity.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	FullName string `json:"full_name" binding:"required,max=255"`
	Role     string `json:"role" binding:"required,oneof=PROGRAMS_MANAGER FINANCE_OFFICER PROJECT_OFFICER"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name" binding:"required,max=255"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=PROGRAMS_MANAGER FINANCE_OFFICER PROJECT_OFFICER"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

type listUsersQuery struct {
	dto.ListRequest
	Role     *string `form:"role" binding:"omitempty,oneof=PROGRAMS_MANAGER FINANCE_OFFICER PROJECT_OFFICER"`
	IsActive *bool   `form:"is_active"`
}

func (h *UserHandler) Create(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid user request: "+err.Error())
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), appidentity.CreateUserCommand{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     identity.Role(req.Role),
	}, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

func (h *UserHandler) List(c *gin.Context) {
	var q listUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid query: "+err.Error())
		return
	}

	filter := identity.UserFilter{Filter: q.ToFilter(), IsActive: q.IsActive}
	if q.Role != nil {
		role := identity.Role(*q.Role)
		filter.Role = &role
	}

	page, err := h.userService.ListUsers(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid profile request: "+err.Error())
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), id, req.FullName, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

func (h *UserHandler) ChangeRole(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid role request: "+err.Error())
		return
	}

	user, err := h.userService.ChangeRole(c.Request.Context(), id, identity.Role(req.Role), actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid password request: "+err.Error())
		return
	}

	if err := h.userService.ResetPassword(c.Request.Context(), id, req.NewPassword, actorID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *UserHandler) Deactivate(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	user, err := h.userService.DeactivateUser(c.Request.Context(), id, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

func (h *UserHandler) Activate(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	user, err := h.userService.ActivateUser(c.Request.Context(), id, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

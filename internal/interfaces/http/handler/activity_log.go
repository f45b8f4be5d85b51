package handler

import (
	auditapp "github.com/amani/backend/internal/application/audit"
	"github.com/amani/backend/internal/domain/audit"
	"github.com/amani/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ActivityLogHandler serves the append-only audit trail
type ActivityLogHandler struct {
	BaseHandler
	activityService *auditapp.ActivityService
}

func NewActivityLogHandler(activityService *auditapp.ActivityService) *ActivityLogHandler {
	return &ActivityLogHandler{activityService: activityService}
}

type listActivityQuery struct {
	dto.ListRequest
	ActorID    *string `form:"actor_id" binding:"omitempty,uuid"`
	Action     *string `form:"action"`
	EntityKind *string `form:"entity_kind"`
	EntityID   *string `form:"entity_id" binding:"omitempty,uuid"`
	From       string  `form:"from"`
	To         string  `form:"to"`
}

func (q *listActivityQuery) toFilter() (audit.ActivityLogFilter, error) {
	filter := audit.ActivityLogFilter{Filter: q.ToFilter()}
	filter.ActorID = parseUUIDPtr(q.ActorID)
	filter.EntityID = parseUUIDPtr(q.EntityID)
	filter.EntityKind = q.EntityKind
	if q.Action != nil {
		action := audit.Action(*q.Action)
		filter.Action = &action
	}
	from, err := parseOptionalDate(q.From)
	if err != nil {
		return filter, err
	}
	to, err := parseOptionalDate(q.To)
	if err != nil {
		return filter, err
	}
	filter.From = from
	filter.To = to
	return filter, nil
}

func (h *ActivityLogHandler) List(c *gin.Context) {
	var q listActivityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid query: "+err.Error())
		return
	}

	filter, err := q.toFilter()
	if err != nil {
		h.BadRequest(c, "Invalid date filter")
		return
	}

	page, err := h.activityService.ListActivity(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// EntityHistory lists the audit entries for one entity, oldest first
func (h *ActivityLogHandler) EntityHistory(c *gin.Context) {
	entityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid entity ID")
		return
	}
	entityKind := c.Param("kind")
	if entityKind == "" {
		h.BadRequest(c, "Missing entity kind")
		return
	}

	var q listActivityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid query: "+err.Error())
		return
	}
	filter, err := q.toFilter()
	if err != nil {
		h.BadRequest(c, "Invalid date filter")
		return
	}

	page, err := h.activityService.EntityHistory(c.Request.Context(), entityKind, entityID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

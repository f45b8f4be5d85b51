package handler

import (
	"io"

	documentapp "github.com/amani/backend/internal/application/document"
	"github.com/amani/backend/internal/domain/identity"
	"github.com/amani/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// CommentHandler handles comment thread endpoints
type CommentHandler struct {
	BaseHandler
	commentService *documentapp.CommentService
}

func NewCommentHandler(commentService *documentapp.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateCommentForm is the multipart form for posting a comment. The
// attachment file part is optional.
type CreateCommentForm struct {
	EntityKind string `form:"entity_kind" binding:"required,oneof=PROJECT BUDGET EXPENSE PURCHASE_ORDER DONOR"`
	EntityID   string `form:"entity_id" binding:"required,uuid"`
	Body       string `form:"body" binding:"required,max=4000"`
}

type ReplyCommentForm struct {
	Body string `form:"body" binding:"required,max=4000"`
}

type EditCommentRequest struct {
	Body string `json:"body" binding:"required,max=4000"`
}

type listThreadsQuery struct {
	EntityKind string `form:"entity_kind" binding:"required,oneof=PROJECT BUDGET EXPENSE PURCHASE_ORDER DONOR"`
	EntityID   string `form:"entity_id" binding:"required,uuid"`
}

// optionalAttachment reads the multipart file part when present
func optionalAttachment(c *gin.Context) (*documentapp.CommentAttachment, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, nil
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return &documentapp.CommentAttachment{
		FileName: fileHeader.Filename,
		MIMEType: fileHeader.Header.Get("Content-Type"),
		Data:     data,
	}, nil
}

// isModerator reports whether the caller may remove other users' comments
func isModerator(c *gin.Context) bool {
	return middleware.GetJWTRole(c) == string(identity.RoleProgramsManager)
}

func (h *CommentHandler) Create(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var form CreateCommentForm
	if err := c.ShouldBind(&form); err != nil {
		h.BadRequest(c, "Invalid comment form: "+err.Error())
		return
	}

	ref, err := entityRefFromStrings(form.EntityKind, form.EntityID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	attachment, err := optionalAttachment(c)
	if err != nil {
		h.BadRequest(c, "Cannot read attachment")
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), documentapp.CreateCommentCommand{
		Ref:        ref,
		Body:       form.Body,
		AuthorID:   actorID,
		Attachment: attachment,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, comment)
}

// Reply posts a reply to the top-level comment in the path
func (h *CommentHandler) Reply(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	parentID, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	var form ReplyCommentForm
	if err := c.ShouldBind(&form); err != nil {
		h.BadRequest(c, "Invalid reply form: "+err.Error())
		return
	}
	attachment, err := optionalAttachment(c)
	if err != nil {
		h.BadRequest(c, "Cannot read attachment")
		return
	}

	reply, err := h.commentService.ReplyToComment(c.Request.Context(), parentID, form.Body, actorID, attachment)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, reply)
}

func (h *CommentHandler) Get(c *gin.Context) {
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	comment, err := h.commentService.GetComment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, comment)
}

// ListThreads returns the comment threads attached to an entity
func (h *CommentHandler) ListThreads(c *gin.Context) {
	var q listThreadsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid query: "+err.Error())
		return
	}

	ref, err := entityRefFromStrings(q.EntityKind, q.EntityID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	threads, err := h.commentService.ListThreads(c.Request.Context(), ref)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, threads)
}

func (h *CommentHandler) Edit(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	var req EditCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid edit request: "+err.Error())
		return
	}

	comment, err := h.commentService.EditComment(c.Request.Context(), id, req.Body, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), id, actorID, isModerator(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

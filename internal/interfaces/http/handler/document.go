package handler

import (
	"fmt"
	"io"
	"time"

	documentapp "github.com/amani/backend/internal/application/document"
	"github.com/amani/backend/internal/domain/document"
	"github.com/amani/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DocumentHandler handles document storage endpoints
type DocumentHandler struct {
	BaseHandler
	documentService *documentapp.DocumentService
}

func NewDocumentHandler(documentService *documentapp.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// UploadDocumentForm is the multipart form accompanying an upload
type UploadDocumentForm struct {
	EntityKind string `form:"entity_kind" binding:"required,oneof=PROJECT BUDGET EXPENSE PURCHASE_ORDER DONOR"`
	EntityID   string `form:"entity_id" binding:"required,uuid"`
	Category   string `form:"category" binding:"omitempty,oneof=GENERAL RECEIPT ATTACHMENT"`
	Notes      string `form:"notes"`
}

type RenameDocumentRequest struct {
	FileName string `json:"file_name" binding:"required,max=255"`
}

type listDocumentsQuery struct {
	dto.ListRequest
	EntityKind *string `form:"entity_kind" binding:"omitempty,oneof=PROJECT BUDGET EXPENSE PURCHASE_ORDER DONOR"`
	EntityID   *string `form:"entity_id" binding:"omitempty,uuid"`
	Category   *string `form:"category" binding:"omitempty,oneof=GENERAL RECEIPT ATTACHMENT COMMENT_ATTACHMENT"`
}

func entityRefFromStrings(kind, id string) (document.EntityRef, error) {
	entityID, err := uuid.Parse(id)
	if err != nil {
		return document.EntityRef{}, err
	}
	return document.NewEntityRef(document.EntityKind(kind), entityID)
}

// Upload stores a file attached to a project, budget, expense,
// purchase order or donor.
func (h *DocumentHandler) Upload(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var form UploadDocumentForm
	if err := c.ShouldBind(&form); err != nil {
		h.BadRequest(c, "Invalid upload form: "+err.Error())
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing file")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Cannot read file")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		h.InternalError(c, "Failed to read file")
		return
	}

	ref, err := entityRefFromStrings(form.EntityKind, form.EntityID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	category := document.DocumentCategoryGeneral
	if form.Category != "" {
		category = document.DocumentCategory(form.Category)
	}

	doc, err := h.documentService.Upload(c.Request.Context(), documentapp.UploadDocumentCommand{
		FileName:   fileHeader.Filename,
		MIMEType:   fileHeader.Header.Get("Content-Type"),
		Data:       data,
		Category:   category,
		Ref:        ref,
		Notes:      form.Notes,
		UploadedBy: actorID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, doc)
}

func (h *DocumentHandler) Get(c *gin.Context) {
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	doc, err := h.documentService.GetDocument(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

func (h *DocumentHandler) List(c *gin.Context) {
	var q listDocumentsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid query: "+err.Error())
		return
	}

	filter := document.DocumentFilter{Filter: q.ToFilter()}
	if q.EntityKind != nil && q.EntityID != nil {
		ref, err := entityRefFromStrings(*q.EntityKind, *q.EntityID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		filter.Ref = &ref
	}
	if q.Category != nil {
		category := document.DocumentCategory(*q.Category)
		filter.Category = &category
	}

	page, err := h.documentService.ListDocuments(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// Download streams the document's bytes with its original file name
func (h *DocumentHandler) Download(c *gin.Context) {
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	doc, data, err := h.documentService.Download(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	c.Data(200, doc.MIMEType, data)
}

// DownloadURL returns a presigned URL for direct object storage access
func (h *DocumentHandler) DownloadURL(c *gin.Context) {
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	url, expiresAt, err := h.documentService.DownloadURL(c.Request.Context(), id, 15*time.Minute)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"url": url, "expires_at": expiresAt})
}

func (h *DocumentHandler) Rename(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	var req RenameDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid rename request: "+err.Error())
		return
	}

	doc, err := h.documentService.Rename(c.Request.Context(), id, req.FileName, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	if err := h.documentService.DeleteDocument(c.Request.Context(), id, actorID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

package handler

import (
	"fmt"
	"path"

	reportapp "github.com/amani/backend/internal/application/report"
	"github.com/amani/backend/internal/domain/report"
	"github.com/amani/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles report generation and retrieval endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

type GenerateReportRequest struct {
	Type        string              `json:"type" binding:"required,oneof=BUDGET_VS_ACTUAL CASH_FLOW_STATEMENT EXPENSE_SUMMARY DONOR_CONTRIBUTIONS PROJECT_STATUS CUSTOM"`
	Title       string              `json:"title" binding:"required,max=255"`
	PeriodStart string              `json:"period_start" binding:"required"`
	PeriodEnd   string              `json:"period_end" binding:"required"`
	Format      string              `json:"format" binding:"required,oneof=pdf xlsx"`
	Filters     map[string][]string `json:"filters"`
}

type listReportsQuery struct {
	dto.ListRequest
	Type        *string `form:"type" binding:"omitempty,oneof=BUDGET_VS_ACTUAL CASH_FLOW_STATEMENT EXPENSE_SUMMARY DONOR_CONTRIBUTIONS PROJECT_STATUS CUSTOM"`
	Status      *string `form:"status" binding:"omitempty,oneof=PENDING COMPLETED FAILED"`
	GeneratedBy *string `form:"generated_by" binding:"omitempty,uuid"`
}

// Generate renders a report synchronously and returns its record
func (h *ReportHandler) Generate(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid report request: "+err.Error())
		return
	}

	periodStart, err := parseDate(req.PeriodStart)
	if err != nil {
		h.BadRequest(c, "Invalid period_start format")
		return
	}
	periodEnd, err := parseDate(req.PeriodEnd)
	if err != nil {
		h.BadRequest(c, "Invalid period_end format")
		return
	}

	rep, err := h.reportService.Generate(c.Request.Context(), reportapp.GenerateReportCommand{
		Type:        report.ReportType(req.Type),
		Title:       req.Title,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Filters:     report.Filters(req.Filters),
		Format:      reportapp.ReportFormat(req.Format),
	}, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, rep)
}

func (h *ReportHandler) Get(c *gin.Context) {
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	rep, err := h.reportService.GetReport(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rep)
}

func (h *ReportHandler) List(c *gin.Context) {
	var q listReportsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid query: "+err.Error())
		return
	}

	filter := report.ReportFilter{Filter: q.ToFilter()}
	filter.GeneratedBy = parseUUIDPtr(q.GeneratedBy)
	if q.Type != nil {
		reportType := report.ReportType(*q.Type)
		filter.Type = &reportType
	}
	if q.Status != nil {
		status := report.ReportStatus(*q.Status)
		filter.Status = &status
	}

	page, err := h.reportService.ListReports(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// Download streams the rendered artifact
func (h *ReportHandler) Download(c *gin.Context) {
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	rep, data, contentType, err := h.reportService.DownloadReport(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", path.Base(rep.FilePath)))
	c.Data(200, contentType, data)
}

func (h *ReportHandler) Delete(c *gin.Context) {
	actorID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	if err := h.reportService.DeleteReport(c.Request.Context(), id, actorID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

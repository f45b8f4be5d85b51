package report

import (
	"context"
	"fmt"
	"time"

	"github.com/amani/backend/internal/domain/audit"
	"github.com/amani/backend/internal/domain/report"
	"github.com/amani/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GenerateReportCommand carries the input for generating a report
type GenerateReportCommand struct {
	Type        report.ReportType
	Title       string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Filters     report.Filters
	Format      ReportFormat
}

// ReportService generates, lists, and serves reports. Generation is fully
// synchronous: the caller's request blocks until the artifact is rendered
// and stored, and the Report row records the outcome either way.
type ReportService struct {
	reportRepo   report.ReportRepository
	aggregation  *AggregationService
	renderer     ReportRenderer
	store        ObjectStore
	activityRepo audit.ActivityLogRepository
	logger       *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	reportRepo report.ReportRepository,
	aggregation *AggregationService,
	renderer ReportRenderer,
	store ObjectStore,
	activityRepo audit.ActivityLogRepository,
	logger *zap.Logger,
) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		reportRepo:   reportRepo,
		aggregation:  aggregation,
		renderer:     renderer,
		store:        store,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

func (s *ReportService) logActivity(ctx context.Context, actorID uuid.UUID, action audit.Action, entityID uuid.UUID, detail string) {
	if s.activityRepo == nil {
		return
	}
	entry, err := audit.NewActivityLog(actorID, action, "REPORT", entityID, detail)
	if err != nil {
		return
	}
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		s.logger.Warn("failed to write activity log", zap.Error(err))
	}
}

// firstFilterValue returns the first value for a filter field, if present
func firstFilterValue(filters report.Filters, field string) (string, bool) {
	values, ok := filters[field]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func filterUUID(filters report.Filters, field string) (*uuid.UUID, error) {
	raw, ok := firstFilterValue(filters, field)
	if !ok {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_FILTERS", fmt.Sprintf("Filter %q is not a valid ID", field))
	}
	return &id, nil
}

// aggregate runs the query set for the report type
func (s *ReportService) aggregate(ctx context.Context, cmd GenerateReportCommand) (any, error) {
	switch cmd.Type {
	case report.ReportTypeBudgetVsActual:
		budgetID, err := filterUUID(cmd.Filters, "budget_id")
		if err != nil {
			return nil, err
		}
		if budgetID == nil {
			return nil, shared.NewDomainError("INVALID_FILTERS", "Budget-vs-actual reports require a budget_id filter")
		}
		return s.aggregation.BudgetVsActual(ctx, *budgetID, cmd.PeriodStart, cmd.PeriodEnd)
	case report.ReportTypeCashFlowStatement:
		accountID, err := filterUUID(cmd.Filters, "bank_account_id")
		if err != nil {
			return nil, err
		}
		return s.aggregation.CashFlowStatement(ctx, accountID, cmd.PeriodStart, cmd.PeriodEnd)
	case report.ReportTypeExpenseSummary, report.ReportTypeCustom:
		projectID, err := filterUUID(cmd.Filters, "project_id")
		if err != nil {
			return nil, err
		}
		return s.aggregation.ExpenseSummary(ctx, projectID, cmd.PeriodStart, cmd.PeriodEnd)
	case report.ReportTypeDonorContributions:
		return s.aggregation.DonorContributions(ctx, cmd.PeriodStart, cmd.PeriodEnd)
	case report.ReportTypeProjectStatus:
		return s.aggregation.ProjectStatus(ctx, cmd.PeriodStart, cmd.PeriodEnd)
	default:
		return nil, shared.NewDomainError("INVALID_REPORT_TYPE", "Report type is not valid")
	}
}

// Generate creates a Report row, runs the aggregation, renders the artifact,
// and stores it. A failed render leaves the row in FAILED status with no file.
func (s *ReportService) Generate(ctx context.Context, cmd GenerateReportCommand, actorID uuid.UUID) (*report.Report, error) {
	format := cmd.Format
	if format == "" {
		format = FormatPDF
	}
	if !format.IsValid() {
		return nil, shared.NewDomainError("INVALID_FORMAT", "Report format must be pdf or xlsx")
	}

	rep, err := report.NewReport(cmd.Type, cmd.Title, cmd.PeriodStart, cmd.PeriodEnd, cmd.Filters, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.reportRepo.Create(ctx, rep); err != nil {
		return nil, err
	}

	artifact, renderErr := s.render(ctx, cmd, format)
	if renderErr != nil {
		s.logger.Error("report generation failed",
			zap.String("report_id", rep.ID.String()),
			zap.String("type", string(cmd.Type)),
			zap.Error(renderErr))
		if err := rep.MarkFailed(renderErr.Error()); err == nil {
			if err := s.reportRepo.Save(ctx, rep); err != nil {
				s.logger.Error("failed to persist report failure", zap.Error(err))
			}
		}
		return rep, renderErr
	}

	storageKey := fmt.Sprintf("reports/%s/%s.%s", rep.CreatedAt.Format("2006/01"), rep.ID, format)
	if err := s.store.Upload(ctx, storageKey, artifact, format.ContentType()); err != nil {
		if markErr := rep.MarkFailed("failed to store report file"); markErr == nil {
			if saveErr := s.reportRepo.Save(ctx, rep); saveErr != nil {
				s.logger.Error("failed to persist report failure", zap.Error(saveErr))
			}
		}
		return rep, err
	}

	if err := rep.MarkCompleted(storageKey, int64(len(artifact))); err != nil {
		return nil, err
	}
	if err := s.reportRepo.Save(ctx, rep); err != nil {
		return nil, err
	}

	s.logActivity(ctx, actorID, audit.ActionGenerate, rep.ID,
		fmt.Sprintf("Generated %s report %q", cmd.Type, cmd.Title))
	s.logger.Info("report generated",
		zap.String("report_id", rep.ID.String()),
		zap.String("type", string(cmd.Type)),
		zap.Int("bytes", len(artifact)))
	return rep, nil
}

func (s *ReportService) render(ctx context.Context, cmd GenerateReportCommand, format ReportFormat) ([]byte, error) {
	data, err := s.aggregate(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if format == FormatExcel {
		return s.renderer.RenderExcel(ctx, cmd.Type, cmd.Title, data)
	}
	return s.renderer.RenderPDF(ctx, cmd.Type, cmd.Title, data)
}

// GetReport returns one report row
func (s *ReportService) GetReport(ctx context.Context, id uuid.UUID) (*report.Report, error) {
	return s.reportRepo.FindByID(ctx, id)
}

// ListReports returns reports matching the filter
func (s *ReportService) ListReports(ctx context.Context, filter report.ReportFilter) (shared.Paginated[*report.Report], error) {
	reports, err := s.reportRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[*report.Report]{}, err
	}
	total, err := s.reportRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[*report.Report]{}, err
	}
	return shared.NewPaginated(reports, total, filter.Page, filter.PageSize), nil
}

// DownloadReport returns the stored artifact bytes and its content type
func (s *ReportService) DownloadReport(ctx context.Context, id uuid.UUID) (*report.Report, []byte, string, error) {
	rep, err := s.reportRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, "", err
	}
	if !rep.IsDownloadable() {
		return nil, nil, "", shared.NewDomainError("INVALID_STATE", "Report has no rendered file")
	}
	data, err := s.store.Download(ctx, rep.FilePath)
	if err != nil {
		return nil, nil, "", err
	}
	contentType := FormatPDF.ContentType()
	if len(rep.FilePath) > 5 && rep.FilePath[len(rep.FilePath)-5:] == ".xlsx" {
		contentType = FormatExcel.ContentType()
	}
	return rep, data, contentType, nil
}

// DeleteReport removes the report row and its stored artifact
func (s *ReportService) DeleteReport(ctx context.Context, id, actorID uuid.UUID) error {
	rep, err := s.reportRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if rep.FilePath != "" {
		if err := s.store.DeleteObject(ctx, rep.FilePath); err != nil {
			s.logger.Warn("failed to delete report file",
				zap.String("storage_key", rep.FilePath), zap.Error(err))
		}
	}
	if err := s.reportRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logActivity(ctx, actorID, audit.ActionDelete, id, fmt.Sprintf("Deleted report %q", rep.Title))
	return nil
}

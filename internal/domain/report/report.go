package report

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/amani/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ReportType selects the aggregation and template used for a report
type ReportType string

const (
	ReportTypeBudgetVsActual     ReportType = "BUDGET_VS_ACTUAL"
	ReportTypeCashFlowStatement  ReportType = "CASH_FLOW_STATEMENT"
	ReportTypeExpenseSummary     ReportType = "EXPENSE_SUMMARY"
	ReportTypeDonorContributions ReportType = "DONOR_CONTRIBUTIONS"
	ReportTypeProjectStatus      ReportType = "PROJECT_STATUS"
	ReportTypeCustom             ReportType = "CUSTOM"
)

// IsValid checks if the type is a valid ReportType
func (t ReportType) IsValid() bool {
	switch t {
	case ReportTypeBudgetVsActual, ReportTypeCashFlowStatement, ReportTypeExpenseSummary,
		ReportTypeDonorContributions, ReportTypeProjectStatus, ReportTypeCustom:
		return true
	}
	return false
}

// ReportStatus tracks generation progress
type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "PENDING"
	ReportStatusCompleted ReportStatus = "COMPLETED"
	ReportStatusFailed    ReportStatus = "FAILED"
)

// MaxFilterValues caps the number of values per filterable field
const MaxFilterValues = 5

// Filters maps filterable field names to value lists, persisted as jsonb
type Filters map[string][]string

// Validate enforces the per-field value cap
func (f Filters) Validate() error {
	for field, values := range f {
		if len(values) > MaxFilterValues {
			return shared.NewDomainError("INVALID_FILTERS",
				fmt.Sprintf("Filter %q has %d values; at most %d are allowed", field, len(values), MaxFilterValues))
		}
	}
	return nil
}

// Value implements driver.Valuer for jsonb storage
func (f Filters) Value() (driver.Value, error) {
	if f == nil {
		return "{}", nil
	}
	data, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for jsonb retrieval
func (f *Filters) Scan(value any) error {
	if value == nil {
		*f = Filters{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Filters", value)
	}
	return json.Unmarshal(data, f)
}

// Report records one generated report: the parameters that produced it and
// where the rendered file is stored. Failed generation leaves the row in
// FAILED status with no file.
type Report struct {
	shared.BaseAggregateRoot
	Type        ReportType   `json:"type"`
	Title       string       `json:"title"`
	PeriodStart time.Time    `json:"period_start"`
	PeriodEnd   time.Time    `json:"period_end"`
	Filters     Filters      `json:"filters,omitempty"`
	Status      ReportStatus `json:"status"`
	FilePath    string       `json:"file_path,omitempty"`
	FileSize    int64        `json:"file_size,omitempty"`
	GeneratedBy uuid.UUID    `json:"generated_by"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
	FailReason  string       `json:"fail_reason,omitempty"`
}

// NewReport creates a pending report request
func NewReport(reportType ReportType, title string, periodStart, periodEnd time.Time, filters Filters, generatedBy uuid.UUID) (*Report, error) {
	if !reportType.IsValid() {
		return nil, shared.NewDomainError("INVALID_REPORT_TYPE", "Report type is not valid")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Report title cannot be empty")
	}
	if periodEnd.Before(periodStart) {
		return nil, shared.NewDomainError("INVALID_DATE_RANGE", "Period end cannot be before period start")
	}
	if err := filters.Validate(); err != nil {
		return nil, err
	}
	if generatedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Generator user ID cannot be empty")
	}

	return &Report{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Type:              reportType,
		Title:             title,
		PeriodStart:       periodStart,
		PeriodEnd:         periodEnd,
		Filters:           filters,
		Status:            ReportStatusPending,
		GeneratedBy:       generatedBy,
	}, nil
}

// MarkCompleted records the rendered file location
func (r *Report) MarkCompleted(filePath string, fileSize int64) error {
	if r.Status != ReportStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending reports can complete")
	}
	if filePath == "" {
		return shared.NewDomainError("INVALID_FILE_PATH", "File path cannot be empty")
	}
	now := time.Now()
	r.Status = ReportStatusCompleted
	r.FilePath = filePath
	r.FileSize = fileSize
	r.CompletedAt = &now
	r.UpdatedAt = now
	return nil
}

// MarkFailed records a render failure. No file path is kept.
func (r *Report) MarkFailed(reason string) error {
	if r.Status != ReportStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending reports can fail")
	}
	r.Status = ReportStatusFailed
	r.FailReason = reason
	r.FilePath = ""
	r.FileSize = 0
	r.UpdatedAt = time.Now()
	return nil
}

// IsDownloadable returns true when a rendered file exists
func (r *Report) IsDownloadable() bool {
	return r.Status == ReportStatusCompleted && r.FilePath != ""
}

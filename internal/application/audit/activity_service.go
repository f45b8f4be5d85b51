package audit

import (
	"context"

	"github.com/amani/backend/internal/domain/audit"
	"github.com/amani/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ActivityService exposes the append-only audit trail. Rows are written
// by the other services as side effects of their operations; this service
// only reads them back.
type ActivityService struct {
	activityRepo audit.ActivityLogRepository
	logger       *zap.Logger
}

// NewActivityService creates a new ActivityService
func NewActivityService(activityRepo audit.ActivityLogRepository, logger *zap.Logger) *ActivityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityService{activityRepo: activityRepo, logger: logger}
}

// Record writes one audit row directly. Used for events that happen
// outside any other service, such as failed permission checks.
func (s *ActivityService) Record(ctx context.Context, actorID uuid.UUID, action audit.Action, entityKind string, entityID uuid.UUID, detail string) error {
	entry, err := audit.NewActivityLog(actorID, action, entityKind, entityID, detail)
	if err != nil {
		return err
	}
	return s.activityRepo.Create(ctx, entry)
}

// ListActivity returns a filtered page of audit rows, newest first
func (s *ActivityService) ListActivity(ctx context.Context, filter audit.ActivityLogFilter) (shared.Paginated[*audit.ActivityLog], error) {
	items, err := s.activityRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[*audit.ActivityLog]{}, err
	}
	total, err := s.activityRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[*audit.ActivityLog]{}, err
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// EntityHistory returns every audit row recorded against one entity
func (s *ActivityService) EntityHistory(ctx context.Context, entityKind string, entityID uuid.UUID, filter audit.ActivityLogFilter) (shared.Paginated[*audit.ActivityLog], error) {
	filter.EntityKind = &entityKind
	filter.EntityID = &entityID
	return s.ListActivity(ctx, filter)
}

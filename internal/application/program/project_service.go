package program

import (
	"context"
	"errors"
	"time"

	"github.com/amani/backend/internal/domain/audit"
	"github.com/amani/backend/internal/domain/program"
	"github.com/amani/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateProjectCommand carries the input for creating a project
type CreateProjectCommand struct {
	Code        string
	Name        string
	Description string
	Location    string
	StartDate   time.Time
	EndDate     *time.Time
	ManagerID   uuid.UUID
}

// UpdateProjectCommand carries the input for editing a project
type UpdateProjectCommand struct {
	Name        string
	Description string
	Location    string
	StartDate   time.Time
	EndDate     *time.Time
}

// ProjectService manages the project lifecycle
type ProjectService struct {
	projectRepo  program.ProjectRepository
	userRepo     identityUserChecker
	activityRepo audit.ActivityLogRepository
	logger       *zap.Logger
}

// identityUserChecker is the slice of the user repository the project
// service needs to validate manager assignments.
type identityUserChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projectRepo program.ProjectRepository,
	userRepo identityUserChecker,
	activityRepo audit.ActivityLogRepository,
	logger *zap.Logger,
) *ProjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectService{
		projectRepo:  projectRepo,
		userRepo:     userRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

func (s *ProjectService) logActivity(ctx context.Context, actorID uuid.UUID, action audit.Action, entityID uuid.UUID, detail string) {
	if s.activityRepo == nil {
		return
	}
	entry, err := audit.NewActivityLog(actorID, action, "PROJECT", entityID, detail)
	if err != nil {
		return
	}
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		s.logger.Warn("failed to write activity log",
			zap.String("project_id", entityID.String()),
			zap.Error(err))
	}
}

func (s *ProjectService) checkManager(ctx context.Context, managerID uuid.UUID) error {
	if s.userRepo == nil {
		return nil
	}
	exists, err := s.userRepo.Exists(ctx, managerID)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NewDomainError("INVALID_MANAGER", "Manager user does not exist")
	}
	return nil
}

// CreateProject creates a new planned project. Project codes are unique.
func (s *ProjectService) CreateProject(ctx context.Context, cmd CreateProjectCommand, actorID uuid.UUID) (*program.Project, error) {
	if err := s.checkManager(ctx, cmd.ManagerID); err != nil {
		return nil, err
	}

	existing, err := s.projectRepo.FindByCode(ctx, cmd.Code)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A project with this code already exists")
	}

	project, err := program.NewProject(cmd.Code, cmd.Name, cmd.Description,
		cmd.StartDate, cmd.EndDate, cmd.ManagerID)
	if err != nil {
		return nil, err
	}
	project.Location = cmd.Location

	if err := s.projectRepo.Save(ctx, project); err != nil {
		return nil, err
	}
	s.logActivity(ctx, actorID, audit.ActionCreate, project.ID, project.Code)
	return project, nil
}

// GetProject retrieves a project by ID
func (s *ProjectService) GetProject(ctx context.Context, id uuid.UUID) (*program.Project, error) {
	return s.projectRepo.FindByID(ctx, id)
}

// ListProjects returns a filtered page of projects
func (s *ProjectService) ListProjects(ctx context.Context, filter program.ProjectFilter) (shared.Paginated[*program.Project], error) {
	items, err := s.projectRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[*program.Project]{}, err
	}
	total, err := s.projectRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[*program.Project]{}, err
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// UpdateProject edits basic project fields
func (s *ProjectService) UpdateProject(ctx context.Context, id uuid.UUID, cmd UpdateProjectCommand, actorID uuid.UUID) (*program.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := project.Update(cmd.Name, cmd.Description, cmd.Location, cmd.StartDate, cmd.EndDate); err != nil {
		return nil, err
	}
	if err := s.projectRepo.Save(ctx, project); err != nil {
		return nil, err
	}
	s.logActivity(ctx, actorID, audit.ActionUpdate, project.ID, project.Code)
	return project, nil
}

// AssignManager reassigns the project's responsible manager
func (s *ProjectService) AssignManager(ctx context.Context, id, managerID, actorID uuid.UUID) (*program.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkManager(ctx, managerID); err != nil {
		return nil, err
	}
	if err := project.AssignManager(managerID); err != nil {
		return nil, err
	}
	if err := s.projectRepo.Save(ctx, project); err != nil {
		return nil, err
	}
	s.logActivity(ctx, actorID, audit.ActionUpdate, project.ID, "manager reassigned")
	return project, nil
}

func (s *ProjectService) transition(ctx context.Context, id, actorID uuid.UUID, detail string, fn func(*program.Project) error) (*program.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(project); err != nil {
		return nil, err
	}
	if err := s.projectRepo.Save(ctx, project); err != nil {
		return nil, err
	}
	s.logActivity(ctx, actorID, audit.ActionUpdate, project.ID, detail)
	return project, nil
}

// ActivateProject starts a planned or on-hold project
func (s *ProjectService) ActivateProject(ctx context.Context, id, actorID uuid.UUID) (*program.Project, error) {
	return s.transition(ctx, id, actorID, "activated", (*program.Project).Activate)
}

// HoldProject pauses an active project
func (s *ProjectService) HoldProject(ctx context.Context, id, actorID uuid.UUID) (*program.Project, error) {
	return s.transition(ctx, id, actorID, "put on hold", (*program.Project).Hold)
}

// CompleteProject closes out an active project
func (s *ProjectService) CompleteProject(ctx context.Context, id, actorID uuid.UUID) (*program.Project, error) {
	return s.transition(ctx, id, actorID, "completed", (*program.Project).Complete)
}

// CancelProject abandons a project that has not completed
func (s *ProjectService) CancelProject(ctx context.Context, id, actorID uuid.UUID) (*program.Project, error) {
	return s.transition(ctx, id, actorID, "cancelled", (*program.Project).Cancel)
}

// DeleteProject removes a project that never left planning
func (s *ProjectService) DeleteProject(ctx context.Context, id, actorID uuid.UUID) error {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if project.Status != program.ProjectStatusPlanned {
		return shared.NewDomainError("INVALID_STATE", "Only planned projects can be deleted")
	}
	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logActivity(ctx, actorID, audit.ActionDelete, id, project.Code)
	return nil
}

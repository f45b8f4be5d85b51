package program

import (
	"context"
	"testing"
	"time"

	"github.com/amani/backend/internal/domain/program"
	"github.com/amani/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type projectFixture struct {
	projectRepo *MockProjectRepository
	userRepo    *MockUserChecker
	service     *ProjectService
}

func newProjectFixture() *projectFixture {
	f := &projectFixture{
		projectRepo: new(MockProjectRepository),
		userRepo:    new(MockUserChecker),
	}
	f.service = NewProjectService(f.projectRepo, f.userRepo, nil, nil)
	return f
}

func plannedProject(t *testing.T) *program.Project {
	t.Helper()
	p, err := program.NewProject("WASH-2026", "Clean Water Initiative", "", time.Now(), nil, uuid.New())
	require.NoError(t, err)
	return p
}

func TestCreateProject_Success(t *testing.T) {
	f := newProjectFixture()
	managerID := uuid.New()

	f.userRepo.On("Exists", mock.Anything, managerID).Return(true, nil)
	f.projectRepo.On("FindByCode", mock.Anything, "WASH-2026").Return(nil, shared.ErrNotFound)
	f.projectRepo.On("Save", mock.Anything, mock.AnythingOfType("*program.Project")).Return(nil)

	project, err := f.service.CreateProject(context.Background(), CreateProjectCommand{
		Code:      "WASH-2026",
		Name:      "Clean Water Initiative",
		Location:  "Kakuma",
		StartDate: time.Now(),
		ManagerID: managerID,
	}, uuid.New())

	require.NoError(t, err)
	assert.Equal(t, program.ProjectStatusPlanned, project.Status)
	assert.Equal(t, "Kakuma", project.Location)
	f.projectRepo.AssertExpectations(t)
}

func TestCreateProject_DuplicateCode(t *testing.T) {
	f := newProjectFixture()
	managerID := uuid.New()
	existing := plannedProject(t)

	f.userRepo.On("Exists", mock.Anything, managerID).Return(true, nil)
	f.projectRepo.On("FindByCode", mock.Anything, "WASH-2026").Return(existing, nil)

	_, err := f.service.CreateProject(context.Background(), CreateProjectCommand{
		Code:      "WASH-2026",
		Name:      "Duplicate",
		StartDate: time.Now(),
		ManagerID: managerID,
	}, uuid.New())

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	f.projectRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreateProject_UnknownManager(t *testing.T) {
	f := newProjectFixture()
	managerID := uuid.New()

	f.userRepo.On("Exists", mock.Anything, managerID).Return(false, nil)

	_, err := f.service.CreateProject(context.Background(), CreateProjectCommand{
		Code:      "WASH-2026",
		Name:      "Clean Water Initiative",
		StartDate: time.Now(),
		ManagerID: managerID,
	}, uuid.New())

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_MANAGER", domainErr.Code)
}

func TestActivateProject(t *testing.T) {
	f := newProjectFixture()
	project := plannedProject(t)

	f.projectRepo.On("FindByID", mock.Anything, project.ID).Return(project, nil)
	f.projectRepo.On("Save", mock.Anything, project).Return(nil)

	updated, err := f.service.ActivateProject(context.Background(), project.ID, uuid.New())

	require.NoError(t, err)
	assert.Equal(t, program.ProjectStatusActive, updated.Status)
}

func TestCompleteProject_RequiresActive(t *testing.T) {
	f := newProjectFixture()
	project := plannedProject(t)

	f.projectRepo.On("FindByID", mock.Anything, project.ID).Return(project, nil)

	_, err := f.service.CompleteProject(context.Background(), project.ID, uuid.New())

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	f.projectRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDeleteProject_OnlyPlanned(t *testing.T) {
	f := newProjectFixture()
	project := plannedProject(t)
	require.NoError(t, project.Activate())

	f.projectRepo.On("FindByID", mock.Anything, project.ID).Return(project, nil)

	err := f.service.DeleteProject(context.Background(), project.ID, uuid.New())

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	f.projectRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestListProjects_Paginates(t *testing.T) {
	f := newProjectFixture()
	filter := program.ProjectFilter{Filter: shared.Filter{Page: 1, PageSize: 20}}

	f.projectRepo.On("FindAll", mock.Anything, filter).Return([]*program.Project{plannedProject(t)}, nil)
	f.projectRepo.On("Count", mock.Anything, filter).Return(int64(1), nil)

	page, err := f.service.ListProjects(context.Background(), filter)

	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 1, page.TotalPages)
}

package program

import (
	"fmt"
	"time"

	"github.com/amani/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProjectStatus represents the lifecycle of a project
type ProjectStatus string

const (
	ProjectStatusPlanned   ProjectStatus = "PLANNED"
	ProjectStatusActive    ProjectStatus = "ACTIVE"
	ProjectStatusOnHold    ProjectStatus = "ON_HOLD"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
	ProjectStatusCancelled ProjectStatus = "CANCELLED"
)

// IsValid checks if the status is a valid ProjectStatus
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusPlanned, ProjectStatusActive, ProjectStatusOnHold,
		ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	}
	return false
}

// IsTerminal returns true for statuses that accept no further transitions
func (s ProjectStatus) IsTerminal() bool {
	return s == ProjectStatusCompleted || s == ProjectStatusCancelled
}

// Project is a program activity that budgets, expenses, and purchase
// orders attach to.
type Project struct {
	shared.BaseAggregateRoot
	Code        string        `json:"code"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Status      ProjectStatus `json:"status"`
	StartDate   time.Time     `json:"start_date"`
	EndDate     *time.Time    `json:"end_date,omitempty"`
	ManagerID   uuid.UUID     `json:"manager_id"`
	Location    string        `json:"location,omitempty"`
}

// NewProject creates a new project in planned status
func NewProject(code, name, description string, startDate time.Time, endDate *time.Time, managerID uuid.UUID) (*Project, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Project code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Project name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Project name cannot exceed 200 characters")
	}
	if managerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MANAGER", "Manager user ID cannot be empty")
	}
	if endDate != nil && endDate.Before(startDate) {
		return nil, shared.NewDomainError("INVALID_DATE_RANGE", "End date cannot be before start date")
	}

	return &Project{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Description:       description,
		Status:            ProjectStatusPlanned,
		StartDate:         startDate,
		EndDate:           endDate,
		ManagerID:         managerID,
	}, nil
}

func invalidProjectTransition(from, to ProjectStatus) error {
	return shared.NewDomainError("INVALID_STATE",
		fmt.Sprintf("Cannot transition project from %s to %s", from, to))
}

// Activate starts a planned or on-hold project
func (p *Project) Activate() error {
	if p.Status != ProjectStatusPlanned && p.Status != ProjectStatusOnHold {
		return invalidProjectTransition(p.Status, ProjectStatusActive)
	}
	p.Status = ProjectStatusActive
	p.UpdatedAt = time.Now()
	return nil
}

// Hold pauses an active project
func (p *Project) Hold() error {
	if p.Status != ProjectStatusActive {
		return invalidProjectTransition(p.Status, ProjectStatusOnHold)
	}
	p.Status = ProjectStatusOnHold
	p.UpdatedAt = time.Now()
	return nil
}

// Complete closes out an active project
func (p *Project) Complete() error {
	if p.Status != ProjectStatusActive {
		return invalidProjectTransition(p.Status, ProjectStatusCompleted)
	}
	now := time.Now()
	p.Status = ProjectStatusCompleted
	if p.EndDate == nil {
		p.EndDate = &now
	}
	p.UpdatedAt = now
	return nil
}

// Cancel abandons a project that has not completed
func (p *Project) Cancel() error {
	if p.Status.IsTerminal() {
		return invalidProjectTransition(p.Status, ProjectStatusCancelled)
	}
	p.Status = ProjectStatusCancelled
	p.UpdatedAt = time.Now()
	return nil
}

// Update modifies basic project fields; terminal projects are read-only
func (p *Project) Update(name, description, location string, startDate time.Time, endDate *time.Time) error {
	if p.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Completed or cancelled projects cannot be modified")
	}
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Project name cannot be empty")
	}
	if endDate != nil && endDate.Before(startDate) {
		return shared.NewDomainError("INVALID_DATE_RANGE", "End date cannot be before start date")
	}
	p.Name = name
	p.Description = description
	p.Location = location
	p.StartDate = startDate
	p.EndDate = endDate
	p.UpdatedAt = time.Now()
	return nil
}

// AssignManager reassigns the responsible manager
func (p *Project) AssignManager(managerID uuid.UUID) error {
	if managerID == uuid.Nil {
		return shared.NewDomainError("INVALID_MANAGER", "Manager user ID cannot be empty")
	}
	p.ManagerID = managerID
	p.UpdatedAt = time.Now()
	return nil
}

// AcceptsSpending returns true when expenses may be recorded against the project
func (p *Project) AcceptsSpending() bool {
	return p.Status == ProjectStatusActive
}

package models

import (
	"time"

	"github.com/amani/backend/internal/domain/program"
	"github.com/amani/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProjectModel is the persistence model for the Project aggregate root.
type ProjectModel struct {
	AggregateModel
	Code        string                `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string                `gorm:"type:varchar(200);not null"`
	Description string                `gorm:"type:text"`
	Status      program.ProjectStatus `gorm:"type:varchar(20);not null;default:'PLANNED';index"`
	StartDate   time.Time             `gorm:"not null"`
	EndDate     *time.Time
	ManagerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Location    string    `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (ProjectModel) TableName() string {
	return "projects"
}

// ToDomain converts the persistence model to a domain Project.
func (m *ProjectModel) ToDomain() *program.Project {
	return &program.Project{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Code:              m.Code,
		Name:              m.Name,
		Description:       m.Description,
		Status:            m.Status,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		ManagerID:         m.ManagerID,
		Location:          m.Location,
	}
}

// FromDomain populates the persistence model from a domain Project.
func (m *ProjectModel) FromDomain(p *program.Project) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Code = p.Code
	m.Name = p.Name
	m.Description = p.Description
	m.Status = p.Status
	m.StartDate = p.StartDate
	m.EndDate = p.EndDate
	m.ManagerID = p.ManagerID
	m.Location = p.Location
}

// ProjectModelFromDomain creates a new persistence model from a domain Project.
func ProjectModelFromDomain(p *program.Project) *ProjectModel {
	m := &ProjectModel{}
	m.FromDomain(p)
	return m
}

// DonorModel is the persistence model for the Donor aggregate root.
type DonorModel struct {
	AggregateModel
	Name          string            `gorm:"type:varchar(200);not null"`
	Type          program.DonorType `gorm:"type:varchar(20);not null;index"`
	Email         string            `gorm:"type:varchar(200);not null;uniqueIndex"`
	Phone         string            `gorm:"type:varchar(50)"`
	Address       string            `gorm:"type:varchar(500)"`
	ContactPerson string            `gorm:"type:varchar(200)"`
	Notes         string            `gorm:"type:text"`
	IsActive      bool              `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (DonorModel) TableName() string {
	return "donors"
}

// ToDomain converts the persistence model to a domain Donor.
func (m *DonorModel) ToDomain() *program.Donor {
	return &program.Donor{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Type:              m.Type,
		Email:             m.Email,
		Phone:             m.Phone,
		Address:           m.Address,
		ContactPerson:     m.ContactPerson,
		Notes:             m.Notes,
		IsActive:          m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Donor.
func (m *DonorModel) FromDomain(d *program.Donor) {
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	m.Name = d.Name
	m.Type = d.Type
	m.Email = d.Email
	m.Phone = d.Phone
	m.Address = d.Address
	m.ContactPerson = d.ContactPerson
	m.Notes = d.Notes
	m.IsActive = d.IsActive
}

// DonorModelFromDomain creates a new persistence model from a domain Donor.
func DonorModelFromDomain(d *program.Donor) *DonorModel {
	m := &DonorModel{}
	m.FromDomain(d)
	return m
}

// DonorFundingModel is the persistence model for donor funding records.
type DonorFundingModel struct {
	BaseModel
	DonorID      uuid.UUID            `gorm:"type:uuid;not null;index"`
	ProjectID    uuid.UUID            `gorm:"type:uuid;not null;index"`
	Amount       decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	Currency     valueobject.Currency `gorm:"type:varchar(3);not null"`
	IsRestricted bool                 `gorm:"not null;default:false"`
	FundingDate  time.Time            `gorm:"not null;index"`
	Reference    string               `gorm:"type:varchar(100)"`
	Notes        string               `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (DonorFundingModel) TableName() string {
	return "donor_fundings"
}

// ToDomain converts the persistence model to a domain DonorFunding.
func (m *DonorFundingModel) ToDomain() *program.DonorFunding {
	return &program.DonorFunding{
		BaseEntity:   m.BaseModel.ToDomain(),
		DonorID:      m.DonorID,
		ProjectID:    m.ProjectID,
		Amount:       m.Amount,
		Currency:     m.Currency,
		IsRestricted: m.IsRestricted,
		FundingDate:  m.FundingDate,
		Reference:    m.Reference,
		Notes:        m.Notes,
	}
}

// FromDomain populates the persistence model from a domain DonorFunding.
func (m *DonorFundingModel) FromDomain(f *program.DonorFunding) {
	m.FromDomainBaseEntity(f.BaseEntity)
	m.DonorID = f.DonorID
	m.ProjectID = f.ProjectID
	m.Amount = f.Amount
	m.Currency = f.Currency
	m.IsRestricted = f.IsRestricted
	m.FundingDate = f.FundingDate
	m.Reference = f.Reference
	m.Notes = f.Notes
}

// DonorFundingModelFromDomain creates a new persistence model from a domain DonorFunding.
func DonorFundingModelFromDomain(f *program.DonorFunding) *DonorFundingModel {
	m := &DonorFundingModel{}
	m.FromDomain(f)
	return m
}

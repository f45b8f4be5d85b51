package program

import (
	"strings"
	"time"

	"github.com/amani/backend/internal/domain/shared"
	"github.com/amani/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DonorType categorizes the source of donations
type DonorType string

const (
	DonorTypeIndividual DonorType = "INDIVIDUAL"
	DonorTypeCorporate  DonorType = "CORPORATE"
	DonorTypeFoundation DonorType = "FOUNDATION"
	DonorTypeGovernment DonorType = "GOVERNMENT"
)

// IsValid checks if the type is a valid DonorType
func (t DonorType) IsValid() bool {
	switch t {
	case DonorTypeIndividual, DonorTypeCorporate, DonorTypeFoundation, DonorTypeGovernment:
		return true
	}
	return false
}

// Donor is a funding source. Email is unique across donors.
type Donor struct {
	shared.BaseAggregateRoot
	Name          string    `json:"name"`
	Type          DonorType `json:"type"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	ContactPerson string    `json:"contact_person,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	IsActive      bool      `json:"is_active"`
}

// NewDonor creates a new active donor
func NewDonor(name string, donorType DonorType, email, phone, address, contactPerson string) (*Donor, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Donor name cannot be empty")
	}
	if !donorType.IsValid() {
		return nil, shared.NewDomainError("INVALID_DONOR_TYPE", "Donor type is not valid")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email address is required")
	}

	return &Donor{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Type:              donorType,
		Email:             email,
		Phone:             phone,
		Address:           address,
		ContactPerson:     contactPerson,
		IsActive:          true,
	}, nil
}

// Update modifies donor contact details
func (d *Donor) Update(name, phone, address, contactPerson, notes string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Donor name cannot be empty")
	}
	d.Name = name
	d.Phone = phone
	d.Address = address
	d.ContactPerson = contactPerson
	d.Notes = notes
	d.UpdatedAt = time.Now()
	return nil
}

// Deactivate retires the donor; fundings already committed are untouched
func (d *Donor) Deactivate() error {
	if !d.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Donor is already inactive")
	}
	d.IsActive = false
	d.UpdatedAt = time.Now()
	return nil
}

// Activate re-enables a deactivated donor
func (d *Donor) Activate() error {
	if d.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Donor is already active")
	}
	d.IsActive = true
	d.UpdatedAt = time.Now()
	return nil
}

// DonorFunding is a commitment of money from a donor to a project.
// Restricted funding is earmarked for the named project only; unrestricted
// funding may be pooled.
type DonorFunding struct {
	shared.BaseEntity
	DonorID      uuid.UUID            `json:"donor_id"`
	ProjectID    uuid.UUID            `json:"project_id"`
	Amount       decimal.Decimal      `json:"amount"`
	Currency     valueobject.Currency `json:"currency"`
	IsRestricted bool                 `json:"is_restricted"`
	FundingDate  time.Time            `json:"funding_date"`
	Reference    string               `json:"reference,omitempty"`
	Notes        string               `json:"notes,omitempty"`
}

// NewDonorFunding records a funding commitment
func NewDonorFunding(donorID, projectID uuid.UUID, amount valueobject.Money, isRestricted bool, fundingDate time.Time, reference string) (*DonorFunding, error) {
	if donorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DONOR", "Donor ID cannot be empty")
	}
	if projectID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROJECT", "Project ID cannot be empty")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Funding amount must be positive")
	}
	if !amount.Currency().IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency is not supported")
	}

	return &DonorFunding{
		BaseEntity:   shared.NewBaseEntity(),
		DonorID:      donorID,
		ProjectID:    projectID,
		Amount:       amount.Amount(),
		Currency:     amount.Currency(),
		IsRestricted: isRestricted,
		FundingDate:  fundingDate,
		Reference:    reference,
	}, nil
}

// GetAmountMoney returns the funding amount as Money
func (f *DonorFunding) GetAmountMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(f.Amount, f.Currency)
	return m
}

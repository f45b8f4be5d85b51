package document

import (
	"context"
	"fmt"

	"github.com/amani/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EntityKind names a type of entity that documents and comments can attach to
type EntityKind string

const (
	EntityKindProject       EntityKind = "PROJECT"
	EntityKindBudget        EntityKind = "BUDGET"
	EntityKindExpense       EntityKind = "EXPENSE"
	EntityKindPurchaseOrder EntityKind = "PURCHASE_ORDER"
	EntityKindDonor         EntityKind = "DONOR"
)

// IsValid checks if the kind is a valid EntityKind
func (k EntityKind) IsValid() bool {
	switch k {
	case EntityKindProject, EntityKindBudget, EntityKindExpense,
		EntityKindPurchaseOrder, EntityKindDonor:
		return true
	}
	return false
}

// EntityRef is a typed reference to one attachable entity. It replaces
// free-form polymorphic type+id pairs with an explicit tagged union.
type EntityRef struct {
	Kind EntityKind `json:"kind"`
	ID   uuid.UUID  `json:"id"`
}

// NewEntityRef builds a validated reference
func NewEntityRef(kind EntityKind, id uuid.UUID) (EntityRef, error) {
	if !kind.IsValid() {
		return EntityRef{}, shared.NewDomainError("INVALID_ENTITY_KIND",
			fmt.Sprintf("Entity kind %q is not attachable", string(kind)))
	}
	if id == uuid.Nil {
		return EntityRef{}, shared.NewDomainError("INVALID_ENTITY_ID", "Entity ID cannot be empty")
	}
	return EntityRef{Kind: kind, ID: id}, nil
}

// String renders the reference as KIND/id
func (r EntityRef) String() string {
	return string(r.Kind) + "/" + r.ID.String()
}

// ExistenceChecker answers whether a single entity row exists
type ExistenceChecker func(ctx context.Context, id uuid.UUID) (bool, error)

// RefResolver validates that an EntityRef points at a live entity. Each
// attachable kind registers one checker; unknown kinds fail fast.
type RefResolver struct {
	checkers map[EntityKind]ExistenceChecker
}

// NewRefResolver creates an empty resolver
func NewRefResolver() *RefResolver {
	return &RefResolver{checkers: make(map[EntityKind]ExistenceChecker)}
}

// Register binds an existence checker to a kind
func (r *RefResolver) Register(kind EntityKind, checker ExistenceChecker) {
	r.checkers[kind] = checker
}

// Resolve verifies the referenced entity exists
func (r *RefResolver) Resolve(ctx context.Context, ref EntityRef) error {
	if !ref.Kind.IsValid() {
		return shared.NewDomainError("INVALID_ENTITY_KIND",
			fmt.Sprintf("Entity kind %q is not attachable", string(ref.Kind)))
	}
	checker, ok := r.checkers[ref.Kind]
	if !ok {
		return shared.NewDomainError("INVALID_ENTITY_KIND",
			fmt.Sprintf("No resolver registered for entity kind %q", string(ref.Kind)))
	}
	exists, err := checker(ctx, ref.ID)
	if err != nil {
		return err
	}
	if !exists {
		return shared.ErrNotFound
	}
	return nil
}

package document

import (
	"context"

	"github.com/amani/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DocumentFilter narrows document listings
type DocumentFilter struct {
	shared.Filter
	Ref      *EntityRef
	Category *DocumentCategory
}

// DocumentRepository persists document metadata
type DocumentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Document, error)
	FindByRef(ctx context.Context, ref EntityRef) ([]*Document, error)
	FindAll(ctx context.Context, filter DocumentFilter) ([]*Document, error)
	Count(ctx context.Context, filter DocumentFilter) (int64, error)
	Create(ctx context.Context, doc *Document) error
	Save(ctx context.Context, doc *Document) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CommentRepository persists comments
type CommentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	FindByRef(ctx context.Context, ref EntityRef) ([]*Comment, error)
	FindReplies(ctx context.Context, parentID uuid.UUID) ([]*Comment, error)
	Create(ctx context.Context, comment *Comment) error
	Save(ctx context.Context, comment *Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

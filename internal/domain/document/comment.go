package document

import (
	"time"

	"github.com/amani/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Comment is a user note attached to an entity, optionally with one file
// attachment. Replies nest exactly one level: a reply's ParentID points at
// a top-level comment, never at another reply.
type Comment struct {
	shared.BaseAggregateRoot
	Ref          EntityRef  `json:"ref"`
	Body         string     `json:"body"`
	AuthorID     uuid.UUID  `json:"author_id"`
	ParentID     *uuid.UUID `json:"parent_id,omitempty"`
	AttachmentID *uuid.UUID `json:"attachment_id,omitempty"` // document of category COMMENT_ATTACHMENT
	IsEdited     bool       `json:"is_edited"`
}

// NewComment creates a top-level comment
func NewComment(ref EntityRef, body string, authorID uuid.UUID) (*Comment, error) {
	if err := validateCommentBody(body); err != nil {
		return nil, err
	}
	if !ref.Kind.IsValid() || ref.ID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ENTITY_REF", "Comment must reference a valid entity")
	}
	if authorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Author user ID cannot be empty")
	}

	return &Comment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Ref:               ref,
		Body:              body,
		AuthorID:          authorID,
	}, nil
}

// NewReply creates a reply to a top-level comment
func NewReply(parent *Comment, body string, authorID uuid.UUID) (*Comment, error) {
	if parent == nil {
		return nil, shared.NewDomainError("INVALID_PARENT", "Parent comment is required")
	}
	if parent.ParentID != nil {
		return nil, shared.NewDomainError("INVALID_PARENT", "Replies cannot be nested more than one level")
	}
	c, err := NewComment(parent.Ref, body, authorID)
	if err != nil {
		return nil, err
	}
	parentID := parent.ID
	c.ParentID = &parentID
	return c, nil
}

func validateCommentBody(body string) error {
	if body == "" {
		return shared.NewDomainError("INVALID_BODY", "Comment body cannot be empty")
	}
	if len(body) > 2000 {
		return shared.NewDomainError("INVALID_BODY", "Comment body cannot exceed 2000 characters")
	}
	return nil
}

// Edit replaces the comment body. Only the author may edit.
func (c *Comment) Edit(body string, editorID uuid.UUID) error {
	if editorID != c.AuthorID {
		return shared.ErrForbidden
	}
	if err := validateCommentBody(body); err != nil {
		return err
	}
	c.Body = body
	c.IsEdited = true
	c.UpdatedAt = time.Now()
	return nil
}

// Attach links a comment-attachment document
func (c *Comment) Attach(documentID uuid.UUID) error {
	if documentID == uuid.Nil {
		return shared.NewDomainError("INVALID_DOCUMENT", "Attachment document ID cannot be empty")
	}
	c.AttachmentID = &documentID
	c.UpdatedAt = time.Now()
	return nil
}

package models

import (
	"github.com/amani/backend/internal/domain/document"
	"github.com/google/uuid"
)

// DocumentModel is the persistence model for the Document aggregate root.
type DocumentModel struct {
	AggregateModel
	FileName   string                    `gorm:"type:varchar(255);not null"`
	StorageKey string                    `gorm:"type:varchar(500);not null;uniqueIndex"`
	MIMEType   string                    `gorm:"type:varchar(100);not null"`
	SizeBytes  int64                     `gorm:"not null"`
	Category   document.DocumentCategory `gorm:"type:varchar(30);not null;index"`
	EntityKind document.EntityKind       `gorm:"type:varchar(20);not null;index:idx_documents_ref"`
	EntityID   uuid.UUID                 `gorm:"type:uuid;not null;index:idx_documents_ref"`
	UploadedBy uuid.UUID                 `gorm:"type:uuid;not null;index"`
	Notes      string                    `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (DocumentModel) TableName() string {
	return "documents"
}

// ToDomain converts the persistence model to a domain Document.
func (m *DocumentModel) ToDomain() *document.Document {
	return &document.Document{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		FileName:          m.FileName,
		StorageKey:        m.StorageKey,
		MIMEType:          m.MIMEType,
		SizeBytes:         m.SizeBytes,
		Category:          m.Category,
		Ref: document.EntityRef{
			Kind: m.EntityKind,
			ID:   m.EntityID,
		},
		UploadedBy: m.UploadedBy,
		Notes:      m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Document.
func (m *DocumentModel) FromDomain(d *document.Document) {
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	m.FileName = d.FileName
	m.StorageKey = d.StorageKey
	m.MIMEType = d.MIMEType
	m.SizeBytes = d.SizeBytes
	m.Category = d.Category
	m.EntityKind = d.Ref.Kind
	m.EntityID = d.Ref.ID
	m.UploadedBy = d.UploadedBy
	m.Notes = d.Notes
}

// DocumentModelFromDomain creates a new persistence model from a domain Document.
func DocumentModelFromDomain(d *document.Document) *DocumentModel {
	m := &DocumentModel{}
	m.FromDomain(d)
	return m
}

// CommentModel is the persistence model for the Comment aggregate root.
type CommentModel struct {
	AggregateModel
	EntityKind   document.EntityKind `gorm:"type:varchar(20);not null;index:idx_comments_ref"`
	EntityID     uuid.UUID           `gorm:"type:uuid;not null;index:idx_comments_ref"`
	Body         string              `gorm:"type:varchar(2000);not null"`
	AuthorID     uuid.UUID           `gorm:"type:uuid;not null;index"`
	ParentID     *uuid.UUID          `gorm:"type:uuid;index"`
	AttachmentID *uuid.UUID          `gorm:"type:uuid"`
	IsEdited     bool                `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (CommentModel) TableName() string {
	return "comments"
}

// ToDomain converts the persistence model to a domain Comment.
func (m *CommentModel) ToDomain() *document.Comment {
	return &document.Comment{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Ref: document.EntityRef{
			Kind: m.EntityKind,
			ID:   m.EntityID,
		},
		Body:         m.Body,
		AuthorID:     m.AuthorID,
		ParentID:     m.ParentID,
		AttachmentID: m.AttachmentID,
		IsEdited:     m.IsEdited,
	}
}

// FromDomain populates the persistence model from a domain Comment.
func (m *CommentModel) FromDomain(c *document.Comment) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.EntityKind = c.Ref.Kind
	m.EntityID = c.Ref.ID
	m.Body = c.Body
	m.AuthorID = c.AuthorID
	m.ParentID = c.ParentID
	m.AttachmentID = c.AttachmentID
	m.IsEdited = c.IsEdited
}

// CommentModelFromDomain creates a new persistence model from a domain Comment.
func CommentModelFromDomain(c *document.Comment) *CommentModel {
	m := &CommentModel{}
	m.FromDomain(c)
	return m
}

package document

import (
	"fmt"
	"strings"
	"time"

	"github.com/amani/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DocumentCategory determines upload limits and intended use
type DocumentCategory string

const (
	DocumentCategoryGeneral           DocumentCategory = "GENERAL"
	DocumentCategoryReceipt           DocumentCategory = "RECEIPT"
	DocumentCategoryAttachment        DocumentCategory = "ATTACHMENT"
	DocumentCategoryCommentAttachment DocumentCategory = "COMMENT_ATTACHMENT"
)

// IsValid checks if the category is a valid DocumentCategory
func (c DocumentCategory) IsValid() bool {
	switch c {
	case DocumentCategoryGeneral, DocumentCategoryReceipt,
		DocumentCategoryAttachment, DocumentCategoryCommentAttachment:
		return true
	}
	return false
}

// MaxSizeBytes returns the upload size ceiling for the category
func (c DocumentCategory) MaxSizeBytes() int64 {
	switch c {
	case DocumentCategoryReceipt, DocumentCategoryAttachment:
		return 5 << 20
	case DocumentCategoryCommentAttachment:
		return 2 << 20
	default:
		return 10 << 20
	}
}

var allowedMIMETypes = map[string]struct{}{
	"application/pdf":    {},
	"image/jpeg":         {},
	"image/png":          {},
	"image/gif":          {},
	"text/plain":         {},
	"text/csv":           {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"application/vnd.ms-excel": {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": {},
}

// IsAllowedMIMEType reports whether uploads of the given content type are accepted
func IsAllowedMIMEType(mimeType string) bool {
	_, ok := allowedMIMETypes[strings.ToLower(mimeType)]
	return ok
}

// Document is stored file metadata attached to an entity. The bytes live
// in object storage under StorageKey.
type Document struct {
	shared.BaseAggregateRoot
	FileName   string           `json:"file_name"`
	StorageKey string           `json:"storage_key"`
	MIMEType   string           `json:"mime_type"`
	SizeBytes  int64            `json:"size_bytes"`
	Category   DocumentCategory `json:"category"`
	Ref        EntityRef        `json:"ref"`
	UploadedBy uuid.UUID        `json:"uploaded_by"`
	Notes      string           `json:"notes,omitempty"`
}

// NewDocument validates and creates document metadata
func NewDocument(fileName, storageKey, mimeType string, sizeBytes int64, category DocumentCategory, ref EntityRef, uploadedBy uuid.UUID) (*Document, error) {
	if fileName == "" {
		return nil, shared.NewDomainError("INVALID_FILE_NAME", "File name cannot be empty")
	}
	if storageKey == "" {
		return nil, shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot be empty")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Document category is not valid")
	}
	if !IsAllowedMIMEType(mimeType) {
		return nil, shared.NewDomainError("INVALID_MIME_TYPE",
			fmt.Sprintf("Content type %q is not accepted", mimeType))
	}
	if sizeBytes <= 0 {
		return nil, shared.NewDomainError("INVALID_FILE_SIZE", "File size must be positive")
	}
	if sizeBytes > category.MaxSizeBytes() {
		return nil, shared.NewDomainError("FILE_TOO_LARGE",
			fmt.Sprintf("File exceeds the %d MB limit for %s uploads",
				category.MaxSizeBytes()>>20, string(category)))
	}
	if !ref.Kind.IsValid() || ref.ID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ENTITY_REF", "Document must reference a valid entity")
	}
	if uploadedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Uploader user ID cannot be empty")
	}

	return &Document{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FileName:          fileName,
		StorageKey:        storageKey,
		MIMEType:          strings.ToLower(mimeType),
		SizeBytes:         sizeBytes,
		Category:          category,
		Ref:               ref,
		UploadedBy:        uploadedBy,
	}, nil
}

// Rename changes the display file name
func (d *Document) Rename(fileName string) error {
	if fileName == "" {
		return shared.NewDomainError("INVALID_FILE_NAME", "File name cannot be empty")
	}
	d.FileName = fileName
	d.UpdatedAt = time.Now()
	return nil
}

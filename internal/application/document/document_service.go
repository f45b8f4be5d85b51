package document

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/amani/backend/internal/domain/audit"
	"github.com/amani/backend/internal/domain/document"
	"github.com/amani/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UploadDocumentCommand carries the input for uploading a file
type UploadDocumentCommand struct {
	FileName   string
	MIMEType   string
	Data       []byte
	Category   document.DocumentCategory
	Ref        document.EntityRef
	Notes      string
	UploadedBy uuid.UUID
}

// DocumentService stores uploaded files in object storage and their
// metadata in the database. Uploads are validated before any bytes are
// written so a rejected file never reaches storage.
type DocumentService struct {
	docRepo      document.DocumentRepository
	storage      ObjectStorage
	resolver     *document.RefResolver
	activityRepo audit.ActivityLogRepository
	logger       *zap.Logger
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	docRepo document.DocumentRepository,
	storage ObjectStorage,
	resolver *document.RefResolver,
	activityRepo audit.ActivityLogRepository,
	logger *zap.Logger,
) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentService{
		docRepo:      docRepo,
		storage:      storage,
		resolver:     resolver,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

func (s *DocumentService) logActivity(ctx context.Context, actorID uuid.UUID, action audit.Action, entityID uuid.UUID, detail string) {
	if s.activityRepo == nil {
		return
	}
	entry, err := audit.NewActivityLog(actorID, action, "DOCUMENT", entityID, detail)
	if err != nil {
		return
	}
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		s.logger.Warn("failed to write activity log",
			zap.String("document_id", entityID.String()),
			zap.Error(err))
	}
}

// storageKeyFor builds the object key for an upload. The random UUID
// segment keeps same-named uploads from colliding.
func storageKeyFor(ref document.EntityRef, fileName string) string {
	base := filepath.Base(fileName)
	base = strings.ReplaceAll(base, " ", "_")
	return fmt.Sprintf("documents/%s/%s/%s-%s",
		strings.ToLower(string(ref.Kind)), ref.ID, uuid.New(), base)
}

// Upload validates, stores, and records a file against an entity
func (s *DocumentService) Upload(ctx context.Context, cmd UploadDocumentCommand) (*document.Document, error) {
	if err := s.resolver.Resolve(ctx, cmd.Ref); err != nil {
		return nil, err
	}

	key := storageKeyFor(cmd.Ref, cmd.FileName)
	doc, err := document.NewDocument(cmd.FileName, key, cmd.MIMEType,
		int64(len(cmd.Data)), cmd.Category, cmd.Ref, cmd.UploadedBy)
	if err != nil {
		return nil, err
	}
	doc.Notes = cmd.Notes

	if err := s.storage.Upload(ctx, key, cmd.Data, doc.MIMEType); err != nil {
		return nil, fmt.Errorf("upload document: %w", err)
	}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		// Metadata write failed; remove the orphaned object
		if delErr := s.storage.DeleteObject(ctx, key); delErr != nil {
			s.logger.Warn("failed to remove orphaned object",
				zap.String("storage_key", key),
				zap.Error(delErr))
		}
		return nil, err
	}

	s.logActivity(ctx, cmd.UploadedBy, audit.ActionUpload, doc.ID, doc.FileName)
	return doc, nil
}

// GetDocument retrieves document metadata by ID
func (s *DocumentService) GetDocument(ctx context.Context, id uuid.UUID) (*document.Document, error) {
	return s.docRepo.FindByID(ctx, id)
}

// ListByRef returns all documents attached to one entity, newest first
func (s *DocumentService) ListByRef(ctx context.Context, ref document.EntityRef) ([]*document.Document, error) {
	if err := s.resolver.Resolve(ctx, ref); err != nil {
		return nil, err
	}
	return s.docRepo.FindByRef(ctx, ref)
}

// ListDocuments returns a filtered page of documents
func (s *DocumentService) ListDocuments(ctx context.Context, filter document.DocumentFilter) (shared.Paginated[*document.Document], error) {
	items, err := s.docRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[*document.Document]{}, err
	}
	total, err := s.docRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[*document.Document]{}, err
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// Download returns the document metadata and its stored bytes
func (s *DocumentService) Download(ctx context.Context, id uuid.UUID) (*document.Document, []byte, error) {
	doc, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	data, err := s.storage.Download(ctx, doc.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("download document: %w", err)
	}
	return doc, data, nil
}

// DownloadURL returns a time-limited URL for fetching the document directly
func (s *DocumentService) DownloadURL(ctx context.Context, id uuid.UUID, expiresIn time.Duration) (string, time.Time, error) {
	doc, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		return "", time.Time{}, err
	}
	return s.storage.GenerateDownloadURL(ctx, doc.StorageKey, expiresIn)
}

// Rename changes a document's display file name; the stored object is untouched
func (s *DocumentService) Rename(ctx context.Context, id uuid.UUID, fileName string, actorID uuid.UUID) (*document.Document, error) {
	doc, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := doc.Rename(fileName); err != nil {
		return nil, err
	}
	if err := s.docRepo.Save(ctx, doc); err != nil {
		return nil, err
	}
	s.logActivity(ctx, actorID, audit.ActionUpdate, doc.ID, doc.FileName)
	return doc, nil
}

// DeleteDocument removes the metadata row and then the stored object.
// A stale object left behind by a failed storage delete is logged, not fatal.
func (s *DocumentService) DeleteDocument(ctx context.Context, id, actorID uuid.UUID) error {
	doc, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.docRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.storage.DeleteObject(ctx, doc.StorageKey); err != nil {
		s.logger.Warn("failed to delete stored object",
			zap.String("storage_key", doc.StorageKey),
			zap.Error(err))
	}
	s.logActivity(ctx, actorID, audit.ActionDelete, id, doc.FileName)
	return nil
}

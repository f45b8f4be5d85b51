package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/amani/backend/internal/domain/document"
	"github.com/amani/backend/internal/domain/shared"
	"github.com/amani/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDocumentRepository implements document.DocumentRepository using GORM
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// FindByID finds a document by its ID
func (r *GormDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.Document, error) {
	var model models.DocumentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByRef finds all documents attached to the given entity
func (r *GormDocumentRepository) FindByRef(ctx context.Context, ref document.EntityRef) ([]*document.Document, error) {
	var documentModels []models.DocumentModel
	if err := r.db.WithContext(ctx).
		Where("entity_kind = ? AND entity_id = ?", ref.Kind, ref.ID).
		Order("created_at DESC").
		Find(&documentModels).Error; err != nil {
		return nil, err
	}
	documents := make([]*document.Document, len(documentModels))
	for i := range documentModels {
		documents[i] = documentModels[i].ToDomain()
	}
	return documents, nil
}

// FindAll finds documents with filtering
func (r *GormDocumentRepository) FindAll(ctx context.Context, filter document.DocumentFilter) ([]*document.Document, error) {
	var documentModels []models.DocumentModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.DocumentModel{}), filter)

	if err := query.Find(&documentModels).Error; err != nil {
		return nil, err
	}
	documents := make([]*document.Document, len(documentModels))
	for i := range documentModels {
		documents[i] = documentModels[i].ToDomain()
	}
	return documents, nil
}

// Count counts documents with filtering
func (r *GormDocumentRepository) Count(ctx context.Context, filter document.DocumentFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.DocumentModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a new document row
func (r *GormDocumentRepository) Create(ctx context.Context, doc *document.Document) error {
	model := models.DocumentModelFromDomain(doc)
	return r.db.WithContext(ctx).Create(model).Error
}

// Save updates an existing document
func (r *GormDocumentRepository) Save(ctx context.Context, doc *document.Document) error {
	model := models.DocumentModelFromDomain(doc)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete soft deletes a document
func (r *GormDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.DocumentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormDocumentRepository) applyFilter(query *gorm.DB, filter document.DocumentFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, DocumentSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		offset := (filter.Page - 1) * filter.PageSize
		if offset > 0 {
			query = query.Offset(offset)
		}
	}
	return query
}

func (r *GormDocumentRepository) applyFilterWithoutPagination(query *gorm.DB, filter document.DocumentFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("(file_name ILIKE ? OR notes ILIKE ?)", searchPattern, searchPattern)
	}
	if filter.Ref != nil {
		query = query.Where("entity_kind = ? AND entity_id = ?", filter.Ref.Kind, filter.Ref.ID)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	return query
}

// GormCommentRepository implements document.CommentRepository using GORM
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// FindByID finds a comment by its ID
func (r *GormCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.Comment, error) {
	var model models.CommentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByRef finds top-level comments attached to the given entity, oldest first
func (r *GormCommentRepository) FindByRef(ctx context.Context, ref document.EntityRef) ([]*document.Comment, error) {
	return r.findWhere(ctx, "entity_kind = ? AND entity_id = ? AND parent_id IS NULL", ref.Kind, ref.ID)
}

// FindReplies finds replies to the given comment, oldest first
func (r *GormCommentRepository) FindReplies(ctx context.Context, parentID uuid.UUID) ([]*document.Comment, error) {
	return r.findWhere(ctx, "parent_id = ?", parentID)
}

func (r *GormCommentRepository) findWhere(ctx context.Context, cond string, args ...interface{}) ([]*document.Comment, error) {
	var commentModels []models.CommentModel
	if err := r.db.WithContext(ctx).
		Where(cond, args...).
		Order("created_at ASC").
		Find(&commentModels).Error; err != nil {
		return nil, err
	}
	comments := make([]*document.Comment, len(commentModels))
	for i := range commentModels {
		comments[i] = commentModels[i].ToDomain()
	}
	return comments, nil
}

// Create inserts a new comment row
func (r *GormCommentRepository) Create(ctx context.Context, comment *document.Comment) error {
	model := models.CommentModelFromDomain(comment)
	return r.db.WithContext(ctx).Create(model).Error
}

// Save updates an existing comment
func (r *GormCommentRepository) Save(ctx context.Context, comment *document.Comment) error {
	model := models.CommentModelFromDomain(comment)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete soft deletes a comment
func (r *GormCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CommentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ document.DocumentRepository = (*GormDocumentRepository)(nil)
var _ document.CommentRepository = (*GormCommentRepository)(nil)

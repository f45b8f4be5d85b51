package document

import (
	"context"
	"fmt"
	"time"

	"github.com/amani/backend/internal/domain/document"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockDocumentRepository is a mock implementation of document.DocumentRepository
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindByRef(ctx context.Context, ref document.EntityRef) ([]*document.Document, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).([]*document.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindAll(ctx context.Context, filter document.DocumentFilter) ([]*document.Document, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*document.Document), args.Error(1)
}

func (m *MockDocumentRepository) Count(ctx context.Context, filter document.DocumentFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDocumentRepository) Create(ctx context.Context, doc *document.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) Save(ctx context.Context, doc *document.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCommentRepository is a mock implementation of document.CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindByRef(ctx context.Context, ref document.EntityRef) ([]*document.Comment, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).([]*document.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindReplies(ctx context.Context, parentID uuid.UUID) ([]*document.Comment, error) {
	args := m.Called(ctx, parentID)
	return args.Get(0).([]*document.Comment), args.Error(1)
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *document.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Save(ctx context.Context, comment *document.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// memoryStorage is an in-memory ObjectStorage for tests
type memoryStorage struct {
	objects map[string][]byte
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: make(map[string][]byte)}
}

func (s *memoryStorage) Upload(_ context.Context, storageKey string, data []byte, _ string) error {
	s.objects[storageKey] = data
	return nil
}

func (s *memoryStorage) Download(_ context.Context, storageKey string) ([]byte, error) {
	data, ok := s.objects[storageKey]
	if !ok {
		return nil, fmt.Errorf("object not found: %s", storageKey)
	}
	return data, nil
}

func (s *memoryStorage) GenerateDownloadURL(_ context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	return "https://storage.test/" + storageKey, time.Now().Add(expiresIn), nil
}

func (s *memoryStorage) DeleteObject(_ context.Context, storageKey string) error {
	delete(s.objects, storageKey)
	return nil
}

func (s *memoryStorage) ObjectExists(_ context.Context, storageKey string) (bool, error) {
	_, ok := s.objects[storageKey]
	return ok, nil
}

var _ ObjectStorage = (*memoryStorage)(nil)

// alwaysExists registers checkers that accept every ID for the given kinds
func alwaysExists(kinds ...document.EntityKind) *document.RefResolver {
	resolver := document.NewRefResolver()
	for _, kind := range kinds {
		resolver.Register(kind, func(context.Context, uuid.UUID) (bool, error) {
			return true, nil
		})
	}
	return resolver
}

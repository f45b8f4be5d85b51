package document

import (
	"context"
	"strings"
	"testing"

	"github.com/amani/backend/internal/domain/document"
	"github.com/amani/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type documentFixture struct {
	docRepo *MockDocumentRepository
	storage *memoryStorage
	service *DocumentService
}

func newDocumentFixture() *documentFixture {
	f := &documentFixture{
		docRepo: new(MockDocumentRepository),
		storage: newMemoryStorage(),
	}
	resolver := alwaysExists(document.EntityKindProject, document.EntityKindExpense)
	f.service = NewDocumentService(f.docRepo, f.storage, resolver, nil, nil)
	return f
}

func expenseRef(t *testing.T) document.EntityRef {
	t.Helper()
	ref, err := document.NewEntityRef(document.EntityKindExpense, uuid.New())
	require.NoError(t, err)
	return ref
}

func TestUpload_Success(t *testing.T) {
	f := newDocumentFixture()
	ref := expenseRef(t)
	data := []byte("%PDF-1.7 receipt body")

	f.docRepo.On("Create", mock.Anything, mock.AnythingOfType("*document.Document")).Return(nil)

	doc, err := f.service.Upload(context.Background(), UploadDocumentCommand{
		FileName:   "taxi receipt.pdf",
		MIMEType:   "application/pdf",
		Data:       data,
		Category:   document.DocumentCategoryReceipt,
		Ref:        ref,
		UploadedBy: uuid.New(),
	})

	require.NoError(t, err)
	assert.Equal(t, "taxi receipt.pdf", doc.FileName)
	assert.Equal(t, int64(len(data)), doc.SizeBytes)
	assert.True(t, strings.HasPrefix(doc.StorageKey, "documents/expense/"+ref.ID.String()+"/"))
	assert.NotContains(t, doc.StorageKey, " ")

	stored, err := f.storage.Download(context.Background(), doc.StorageKey)
	require.NoError(t, err)
	assert.Equal(t, data, stored)
}

func TestUpload_RejectsBadContentType(t *testing.T) {
	f := newDocumentFixture()

	_, err := f.service.Upload(context.Background(), UploadDocumentCommand{
		FileName:   "virus.exe",
		MIMEType:   "application/x-msdownload",
		Data:       []byte("MZ"),
		Category:   document.DocumentCategoryGeneral,
		Ref:        expenseRef(t),
		UploadedBy: uuid.New(),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_MIME_TYPE", domainErr.Code)
	assert.Empty(t, f.storage.objects)
}

func TestUpload_UnknownEntity(t *testing.T) {
	f := newDocumentFixture()
	resolver := document.NewRefResolver()
	resolver.Register(document.EntityKindExpense, func(context.Context, uuid.UUID) (bool, error) {
		return false, nil
	})
	f.service = NewDocumentService(f.docRepo, f.storage, resolver, nil, nil)

	_, err := f.service.Upload(context.Background(), UploadDocumentCommand{
		FileName:   "a.pdf",
		MIMEType:   "application/pdf",
		Data:       []byte("x"),
		Category:   document.DocumentCategoryGeneral,
		Ref:        expenseRef(t),
		UploadedBy: uuid.New(),
	})

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestUpload_CleansUpOnMetadataFailure(t *testing.T) {
	f := newDocumentFixture()

	f.docRepo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

	_, err := f.service.Upload(context.Background(), UploadDocumentCommand{
		FileName:   "a.pdf",
		MIMEType:   "application/pdf",
		Data:       []byte("x"),
		Category:   document.DocumentCategoryGeneral,
		Ref:        expenseRef(t),
		UploadedBy: uuid.New(),
	})

	require.Error(t, err)
	assert.Empty(t, f.storage.objects, "orphaned object should be removed")
}

func TestDeleteDocument_RemovesObject(t *testing.T) {
	f := newDocumentFixture()
	ref := expenseRef(t)
	doc, err := document.NewDocument("a.pdf", "documents/expense/x/a.pdf",
		"application/pdf", 3, document.DocumentCategoryGeneral, ref, uuid.New())
	require.NoError(t, err)
	require.NoError(t, f.storage.Upload(context.Background(), doc.StorageKey, []byte("abc"), "application/pdf"))

	f.docRepo.On("FindByID", mock.Anything, doc.ID).Return(doc, nil)
	f.docRepo.On("Delete", mock.Anything, doc.ID).Return(nil)

	require.NoError(t, f.service.DeleteDocument(context.Background(), doc.ID, uuid.New()))
	assert.Empty(t, f.storage.objects)
}

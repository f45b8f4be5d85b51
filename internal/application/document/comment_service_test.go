package document

import (
	"context"
	"testing"

	"github.com/amani/backend/internal/domain/document"
	"github.com/amani/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type commentFixture struct {
	commentRepo *MockCommentRepository
	docRepo     *MockDocumentRepository
	storage     *memoryStorage
	service     *CommentService
}

func newCommentFixture() *commentFixture {
	f := &commentFixture{
		commentRepo: new(MockCommentRepository),
		docRepo:     new(MockDocumentRepository),
		storage:     newMemoryStorage(),
	}
	resolver := alwaysExists(document.EntityKindProject, document.EntityKindExpense)
	docService := NewDocumentService(f.docRepo, f.storage, resolver, nil, nil)
	f.service = NewCommentService(f.commentRepo, docService, resolver, nil, nil)
	return f
}

func TestCreateComment_Success(t *testing.T) {
	f := newCommentFixture()
	ref := expenseRef(t)
	authorID := uuid.New()

	f.commentRepo.On("Create", mock.Anything, mock.AnythingOfType("*document.Comment")).Return(nil)

	comment, err := f.service.CreateComment(context.Background(), CreateCommentCommand{
		Ref:      ref,
		Body:     "Receipt total does not match the invoice.",
		AuthorID: authorID,
	})

	require.NoError(t, err)
	assert.Equal(t, ref, comment.Ref)
	assert.Nil(t, comment.ParentID)
	assert.Nil(t, comment.AttachmentID)
}

func TestCreateComment_WithAttachment(t *testing.T) {
	f := newCommentFixture()
	ref := expenseRef(t)

	f.docRepo.On("Create", mock.Anything, mock.AnythingOfType("*document.Document")).Return(nil)
	f.commentRepo.On("Create", mock.Anything, mock.AnythingOfType("*document.Comment")).Return(nil)

	comment, err := f.service.CreateComment(context.Background(), CreateCommentCommand{
		Ref:      ref,
		Body:     "Corrected scan attached.",
		AuthorID: uuid.New(),
		Attachment: &CommentAttachment{
			FileName: "scan.png",
			MIMEType: "image/png",
			Data:     []byte("fake png bytes"),
		},
	})

	require.NoError(t, err)
	require.NotNil(t, comment.AttachmentID)
	assert.Len(t, f.storage.objects, 1)
}

func TestReplyToComment_NestingLimit(t *testing.T) {
	f := newCommentFixture()
	ref := expenseRef(t)
	authorID := uuid.New()

	parent, err := document.NewComment(ref, "top level", authorID)
	require.NoError(t, err)
	reply, err := document.NewReply(parent, "first reply", authorID)
	require.NoError(t, err)

	f.commentRepo.On("FindByID", mock.Anything, reply.ID).Return(reply, nil)

	_, err = f.service.ReplyToComment(context.Background(), reply.ID, "nested reply", authorID, nil)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PARENT", domainErr.Code)
}

func TestEditComment_OnlyAuthor(t *testing.T) {
	f := newCommentFixture()
	comment, err := document.NewComment(expenseRef(t), "original", uuid.New())
	require.NoError(t, err)

	f.commentRepo.On("FindByID", mock.Anything, comment.ID).Return(comment, nil)

	_, err = f.service.EditComment(context.Background(), comment.ID, "tampered", uuid.New())

	assert.ErrorIs(t, err, shared.ErrForbidden)
	f.commentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDeleteComment_ModeratorRemovesThread(t *testing.T) {
	f := newCommentFixture()
	authorID := uuid.New()
	comment, err := document.NewComment(expenseRef(t), "top level", authorID)
	require.NoError(t, err)
	reply, err := document.NewReply(comment, "a reply", uuid.New())
	require.NoError(t, err)

	f.commentRepo.On("FindByID", mock.Anything, comment.ID).Return(comment, nil)
	f.commentRepo.On("FindReplies", mock.Anything, comment.ID).Return([]*document.Comment{reply}, nil)
	f.commentRepo.On("Delete", mock.Anything, reply.ID).Return(nil)
	f.commentRepo.On("Delete", mock.Anything, comment.ID).Return(nil)

	err = f.service.DeleteComment(context.Background(), comment.ID, uuid.New(), true)

	require.NoError(t, err)
	f.commentRepo.AssertExpectations(t)
}

func TestDeleteComment_StrangerForbidden(t *testing.T) {
	f := newCommentFixture()
	comment, err := document.NewComment(expenseRef(t), "top level", uuid.New())
	require.NoError(t, err)

	f.commentRepo.On("FindByID", mock.Anything, comment.ID).Return(comment, nil)

	err = f.service.DeleteComment(context.Background(), comment.ID, uuid.New(), false)

	assert.ErrorIs(t, err, shared.ErrForbidden)
	f.commentRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

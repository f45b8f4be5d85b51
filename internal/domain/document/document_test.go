package document

import (
	"context"
	"testing"

	"github.com/amani/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestRef(t *testing.T, kind EntityKind) EntityRef {
	t.Helper()
	ref, err := NewEntityRef(kind, uuid.New())
	require.NoError(t, err)
	return ref
}

func createTestDocument(t *testing.T, category DocumentCategory, sizeBytes int64) (*Document, error) {
	t.Helper()
	return NewDocument("receipt.pdf", "documents/2026/08/receipt.pdf", "application/pdf",
		sizeBytes, category, createTestRef(t, EntityKindExpense), uuid.New())
}

func TestNewEntityRef(t *testing.T) {
	t.Run("accepts every attachable kind", func(t *testing.T) {
		for _, kind := range []EntityKind{EntityKindProject, EntityKindBudget,
			EntityKindExpense, EntityKindPurchaseOrder, EntityKindDonor} {
			_, err := NewEntityRef(kind, uuid.New())
			assert.NoError(t, err)
		}
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		_, err := NewEntityRef(EntityKind("INVOICE"), uuid.New())
		assert.Error(t, err)
	})

	t.Run("rejects nil id", func(t *testing.T) {
		_, err := NewEntityRef(EntityKindProject, uuid.Nil)
		assert.Error(t, err)
	})
}

func TestRefResolver(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves registered kinds", func(t *testing.T) {
		r := NewRefResolver()
		r.Register(EntityKindProject, func(ctx context.Context, id uuid.UUID) (bool, error) {
			return true, nil
		})
		err := r.Resolve(ctx, createTestRef(t, EntityKindProject))
		assert.NoError(t, err)
	})

	t.Run("missing entity returns not found", func(t *testing.T) {
		r := NewRefResolver()
		r.Register(EntityKindExpense, func(ctx context.Context, id uuid.UUID) (bool, error) {
			return false, nil
		})
		err := r.Resolve(ctx, createTestRef(t, EntityKindExpense))
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("unregistered kind is rejected", func(t *testing.T) {
		r := NewRefResolver()
		err := r.Resolve(ctx, createTestRef(t, EntityKindDonor))
		assert.Error(t, err)
	})
}

func TestNewDocument(t *testing.T) {
	t.Run("accepts a pdf within the limit", func(t *testing.T) {
		d, err := createTestDocument(t, DocumentCategoryReceipt, 1<<20)
		require.NoError(t, err)
		assert.Equal(t, "application/pdf", d.MIMEType)
	})

	t.Run("enforces per-category size limits", func(t *testing.T) {
		cases := []struct {
			category DocumentCategory
			size     int64
			ok       bool
		}{
			{DocumentCategoryGeneral, 10 << 20, true},
			{DocumentCategoryGeneral, 10<<20 + 1, false},
			{DocumentCategoryReceipt, 5 << 20, true},
			{DocumentCategoryReceipt, 5<<20 + 1, false},
			{DocumentCategoryAttachment, 5<<20 + 1, false},
			{DocumentCategoryCommentAttachment, 2 << 20, true},
			{DocumentCategoryCommentAttachment, 2<<20 + 1, false},
		}
		for _, tc := range cases {
			_, err := createTestDocument(t, tc.category, tc.size)
			if tc.ok {
				assert.NoError(t, err, "category %s size %d", tc.category, tc.size)
			} else {
				assert.Error(t, err, "category %s size %d", tc.category, tc.size)
			}
		}
	})

	t.Run("rejects disallowed content type", func(t *testing.T) {
		_, err := NewDocument("tool.exe", "documents/tool.exe", "application/x-msdownload",
			100, DocumentCategoryGeneral, createTestRef(t, EntityKindProject), uuid.New())
		assert.Error(t, err)
	})

	t.Run("rejects zero size", func(t *testing.T) {
		_, err := createTestDocument(t, DocumentCategoryGeneral, 0)
		assert.Error(t, err)
	})
}

func TestCommentReplies(t *testing.T) {
	author := uuid.New()
	ref := createTestRef(t, EntityKindExpense)

	t.Run("reply inherits the parent ref", func(t *testing.T) {
		parent, err := NewComment(ref, "Please attach the invoice", author)
		require.NoError(t, err)

		reply, err := NewReply(parent, "Uploaded now", uuid.New())
		require.NoError(t, err)
		assert.Equal(t, parent.ID, *reply.ParentID)
		assert.Equal(t, ref, reply.Ref)
	})

	t.Run("replies nest one level only", func(t *testing.T) {
		parent, err := NewComment(ref, "top", author)
		require.NoError(t, err)
		reply, err := NewReply(parent, "first level", author)
		require.NoError(t, err)

		_, err = NewReply(reply, "second level", author)
		assert.Error(t, err)
	})
}

func TestCommentEdit(t *testing.T) {
	author := uuid.New()
	c, err := NewComment(createTestRef(t, EntityKindProject), "original", author)
	require.NoError(t, err)

	t.Run("author can edit", func(t *testing.T) {
		require.NoError(t, c.Edit("revised", author))
		assert.Equal(t, "revised", c.Body)
		assert.True(t, c.IsEdited)
	})

	t.Run("others cannot edit", func(t *testing.T) {
		err := c.Edit("hijacked", uuid.New())
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

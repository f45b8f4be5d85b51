package document

import (
	"context"

	"github.com/amani/backend/internal/domain/audit"
	"github.com/amani/backend/internal/domain/document"
	"github.com/amani/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CommentAttachment is an optional file uploaded alongside a comment
type CommentAttachment struct {
	FileName string
	MIMEType string
	Data     []byte
}

// CreateCommentCommand carries the input for posting a comment
type CreateCommentCommand struct {
	Ref        document.EntityRef
	Body       string
	AuthorID   uuid.UUID
	Attachment *CommentAttachment
}

// CommentThread is a top-level comment with its replies in posting order
type CommentThread struct {
	Comment *document.Comment   `json:"comment"`
	Replies []*document.Comment `json:"replies"`
}

// CommentService manages comment threads on entities. Attachments are
// stored through the document service so they follow the same size and
// content-type rules as other uploads.
type CommentService struct {
	commentRepo  document.CommentRepository
	docService   *DocumentService
	resolver     *document.RefResolver
	activityRepo audit.ActivityLogRepository
	logger       *zap.Logger
}

// NewCommentService creates a new CommentService
func NewCommentService(
	commentRepo document.CommentRepository,
	docService *DocumentService,
	resolver *document.RefResolver,
	activityRepo audit.ActivityLogRepository,
	logger *zap.Logger,
) *CommentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommentService{
		commentRepo:  commentRepo,
		docService:   docService,
		resolver:     resolver,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

func (s *CommentService) logActivity(ctx context.Context, actorID uuid.UUID, action audit.Action, entityID uuid.UUID, detail string) {
	if s.activityRepo == nil {
		return
	}
	entry, err := audit.NewActivityLog(actorID, action, "COMMENT", entityID, detail)
	if err != nil {
		return
	}
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		s.logger.Warn("failed to write activity log",
			zap.String("comment_id", entityID.String()),
			zap.Error(err))
	}
}

func (s *CommentService) attach(ctx context.Context, comment *document.Comment, att *CommentAttachment) error {
	doc, err := s.docService.Upload(ctx, UploadDocumentCommand{
		FileName:   att.FileName,
		MIMEType:   att.MIMEType,
		Data:       att.Data,
		Category:   document.DocumentCategoryCommentAttachment,
		Ref:        comment.Ref,
		UploadedBy: comment.AuthorID,
	})
	if err != nil {
		return err
	}
	return comment.Attach(doc.ID)
}

// CreateComment posts a top-level comment on an entity
func (s *CommentService) CreateComment(ctx context.Context, cmd CreateCommentCommand) (*document.Comment, error) {
	if err := s.resolver.Resolve(ctx, cmd.Ref); err != nil {
		return nil, err
	}

	comment, err := document.NewComment(cmd.Ref, cmd.Body, cmd.AuthorID)
	if err != nil {
		return nil, err
	}
	if cmd.Attachment != nil {
		if err := s.attach(ctx, comment, cmd.Attachment); err != nil {
			return nil, err
		}
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	s.logActivity(ctx, cmd.AuthorID, audit.ActionCreate, comment.ID, comment.Ref.String())
	return comment, nil
}

// ReplyToComment posts a reply under a top-level comment
func (s *CommentService) ReplyToComment(ctx context.Context, parentID uuid.UUID, body string, authorID uuid.UUID, attachment *CommentAttachment) (*document.Comment, error) {
	parent, err := s.commentRepo.FindByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	reply, err := document.NewReply(parent, body, authorID)
	if err != nil {
		return nil, err
	}
	if attachment != nil {
		if err := s.attach(ctx, reply, attachment); err != nil {
			return nil, err
		}
	}
	if err := s.commentRepo.Create(ctx, reply); err != nil {
		return nil, err
	}
	s.logActivity(ctx, authorID, audit.ActionCreate, reply.ID, "reply")
	return reply, nil
}

// GetComment retrieves one comment by ID
func (s *CommentService) GetComment(ctx context.Context, id uuid.UUID) (*document.Comment, error) {
	return s.commentRepo.FindByID(ctx, id)
}

// ListThreads returns an entity's comment threads, oldest first
func (s *CommentService) ListThreads(ctx context.Context, ref document.EntityRef) ([]CommentThread, error) {
	if err := s.resolver.Resolve(ctx, ref); err != nil {
		return nil, err
	}
	tops, err := s.commentRepo.FindByRef(ctx, ref)
	if err != nil {
		return nil, err
	}
	threads := make([]CommentThread, 0, len(tops))
	for _, top := range tops {
		replies, err := s.commentRepo.FindReplies(ctx, top.ID)
		if err != nil {
			return nil, err
		}
		threads = append(threads, CommentThread{Comment: top, Replies: replies})
	}
	return threads, nil
}

// EditComment replaces a comment's body. Only the author may edit.
func (s *CommentService) EditComment(ctx context.Context, id uuid.UUID, body string, editorID uuid.UUID) (*document.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := comment.Edit(body, editorID); err != nil {
		return nil, err
	}
	if err := s.commentRepo.Save(ctx, comment); err != nil {
		return nil, err
	}
	s.logActivity(ctx, editorID, audit.ActionUpdate, comment.ID, "edited")
	return comment, nil
}

// DeleteComment removes a comment. The author may delete their own;
// isModerator allows removing any comment. Replies and the attachment
// go with it.
func (s *CommentService) DeleteComment(ctx context.Context, id, actorID uuid.UUID, isModerator bool) error {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if comment.AuthorID != actorID && !isModerator {
		return shared.ErrForbidden
	}

	if comment.ParentID == nil {
		replies, err := s.commentRepo.FindReplies(ctx, comment.ID)
		if err != nil {
			return err
		}
		for _, reply := range replies {
			if err := s.deleteOne(ctx, reply, actorID); err != nil {
				return err
			}
		}
	}
	if err := s.deleteOne(ctx, comment, actorID); err != nil {
		return err
	}
	s.logActivity(ctx, actorID, audit.ActionDelete, id, comment.Ref.String())
	return nil
}

func (s *CommentService) deleteOne(ctx context.Context, comment *document.Comment, actorID uuid.UUID) error {
	if comment.AttachmentID != nil {
		if err := s.docService.DeleteDocument(ctx, *comment.AttachmentID, actorID); err != nil {
			s.logger.Warn("failed to delete comment attachment",
				zap.String("document_id", comment.AttachmentID.String()),
				zap.Error(err))
		}
	}
	return s.commentRepo.Delete(ctx, comment.ID)
}

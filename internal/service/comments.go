package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stackmoneyup/backend/internal/models"
	"github.com/stackmoneyup/backend/internal/permissions"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CommentStore is the persistence surface the comment service needs. The
// Postgres implementation lives in internal/repositories. Lookups for rows
// that do not exist return gorm.ErrRecordNotFound.
type CommentStore interface {
	ListApprovedByPost(ctx context.Context, postID string) ([]models.Comment, error)
	ListAllByPost(ctx context.Context, postID string) ([]models.Comment, error)
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id string) error
	SetApproved(ctx context.Context, id string, approved bool) error
	CountApproved(ctx context.Context, postID string) (int64, error)
}

// CommentService implements comment reading, mutation and moderation on top
// of a CommentStore, adding the application-level ownership/role checks that
// sit in front of the database's own row-level rules.
type CommentService struct {
	store CommentStore
	log   *zap.Logger
}

// NewCommentService creates a new CommentService
func NewCommentService(store CommentStore, log *zap.Logger) *CommentService {
	return &CommentService{
		store: store,
		log:   log.Named("comments"),
	}
}

// Tree returns the public comment tree for a post: approved rows only,
// assembled into the two-level root/replies structure.
func (s *CommentService) Tree(ctx context.Context, postID string) ([]*models.Comment, error) {
	rows, err := s.store.ListApprovedByPost(ctx, postID)
	if err != nil {
		s.log.Error("failed to list approved comments", zap.String("post_id", postID), zap.Error(err))
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return BuildCommentTree(rows), nil
}

// ModerationQueue returns every comment on a post, approved or not, as a flat
// chronological list. Editor/admin only.
func (s *CommentService) ModerationQueue(ctx context.Context, actor *models.Actor, postID string) ([]models.Comment, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	if !permissions.Can(actor, permissions.ModerateComment, "") {
		return nil, ErrPermissionDenied
	}
	rows, err := s.store.ListAllByPost(ctx, postID)
	if err != nil {
		s.log.Error("failed to list comments for moderation", zap.String("post_id", postID), zap.Error(err))
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return rows, nil
}

// Count returns the number of approved comments on a post.
func (s *CommentService) Count(ctx context.Context, postID string) (int64, error) {
	n, err := s.store.CountApproved(ctx, postID)
	if err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return n, nil
}

// Create persists a new comment by the actor. Content must be non-empty
// after trimming. When parentID is set it must reference an existing comment
// on the same post; the new comment becomes a reply to that comment's root,
// keeping the stored structure one level deep. New comments are approved
// immediately (auto-publish).
func (s *CommentService) Create(ctx context.Context, actor *models.Actor, postID, content string, parentID *string) (*models.Comment, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is empty", ErrInvalidInput)
	}

	if parentID != nil {
		parent, err := s.getComment(ctx, *parentID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, fmt.Errorf("%w: parent comment", ErrNotFound)
			}
			return nil, err
		}
		if parent.PostID != postID {
			return nil, fmt.Errorf("%w: parent belongs to a different post", ErrInvalidInput)
		}
		// Replies to replies attach to the thread root.
		if parent.ParentID != nil {
			parentID = parent.ParentID
		}
	}

	comment := &models.Comment{
		PostID:   postID,
		ParentID: parentID,
		AuthorID: actor.ID,
		Content:  content,
		Approved: true,
	}
	if err := s.store.Create(ctx, comment); err != nil {
		s.log.Error("failed to create comment", zap.String("post_id", postID), zap.Error(err))
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// Update rewrites a comment's content. Author only; marks the comment edited.
func (s *CommentService) Update(ctx context.Context, actor *models.Actor, commentID, content string) (*models.Comment, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is empty", ErrInvalidInput)
	}

	comment, err := s.getComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if !permissions.Can(actor, permissions.EditComment, comment.AuthorID) {
		return nil, ErrPermissionDenied
	}

	comment.Content = content
	comment.Edited = true
	if err := s.store.Update(ctx, comment); err != nil {
		s.log.Error("failed to update comment", zap.String("comment_id", commentID), zap.Error(err))
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

// Delete removes a comment. Permitted for the author and for editor/admin.
// Replies are not cascade-deleted at the store layer; once their parent is
// gone the tree builder drops them from subsequent renders.
func (s *CommentService) Delete(ctx context.Context, actor *models.Actor, commentID string) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	comment, err := s.getComment(ctx, commentID)
	if err != nil {
		return err
	}
	if !permissions.Can(actor, permissions.DeleteComment, comment.AuthorID) {
		return ErrPermissionDenied
	}
	if err := s.store.Delete(ctx, commentID); err != nil {
		s.log.Error("failed to delete comment", zap.String("comment_id", commentID), zap.Error(err))
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

// Moderate sets a comment's approved flag. Editor/admin only. Rejection does
// not cascade: replies keep their flag and simply stop rendering because
// their parent drops out of the approved set.
func (s *CommentService) Moderate(ctx context.Context, actor *models.Actor, commentID string, approved bool) (*models.Comment, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	if !permissions.Can(actor, permissions.ModerateComment, "") {
		return nil, ErrPermissionDenied
	}
	comment, err := s.getComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetApproved(ctx, commentID, approved); err != nil {
		s.log.Error("failed to moderate comment", zap.String("comment_id", commentID), zap.Error(err))
		return nil, fmt.Errorf("moderate comment: %w", err)
	}
	comment.Approved = approved
	return comment, nil
}

// getComment loads a comment, translating a missing row into ErrNotFound.
// Any other store failure stays a backend error so it does not masquerade
// as a 404 upstream.
func (s *CommentService) getComment(ctx context.Context, id string) (*models.Comment, error) {
	comment, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("failed to load comment", zap.String("comment_id", id), zap.Error(err))
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return comment, nil
}

package repositories

import (
	"context"
	"time"

	"github.com/stackmoneyup/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations.
// It satisfies service.CommentStore.
type CommentRepository interface {
	ListApprovedByPost(ctx context.Context, postID string) ([]models.Comment, error)
	ListAllByPost(ctx context.Context, postID string) ([]models.Comment, error)
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id string) error
	SetApproved(ctx context.Context, id string, approved bool) error
	CountApproved(ctx context.Context, postID string) (int64, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

const authorNameSelect = "comments.*, COALESCE(profiles.name, 'Anonymous') AS author_name"

// ListApprovedByPost retrieves all approved comments for a post with author
// names resolved. Approval filtering happens here, before tree assembly.
func (r *PostgresCommentRepository) ListApprovedByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select(authorNameSelect).
		Joins("LEFT JOIN profiles ON profiles.id = comments.author_id").
		Where("comments.post_id = ? AND comments.approved = ?", postID, true).
		Order("comments.created_at ASC").
		Scan(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// ListAllByPost retrieves every comment for a post, approved or not, for the
// moderation view.
func (r *PostgresCommentRepository) ListAllByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select(authorNameSelect).
		Joins("LEFT JOIN profiles ON profiles.id = comments.author_id").
		Where("comments.post_id = ?", postID).
		Order("comments.created_at ASC").
		Scan(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// GetByID retrieves a comment by ID
func (r *PostgresCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select(authorNameSelect).
		Joins("LEFT JOIN profiles ON profiles.id = comments.author_id").
		Where("comments.id = ?", id).
		Take(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Create inserts a new comment
func (r *PostgresCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// Update saves an existing comment and refreshes its UpdatedAt in place, so
// callers can return the comment without re-reading the row.
func (r *PostgresCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	now := time.Now()
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", comment.ID).
		Updates(map[string]interface{}{
			"content":    comment.Content,
			"edited":     comment.Edited,
			"updated_at": now,
		}).Error
	if err != nil {
		return err
	}
	comment.UpdatedAt = now
	return nil
}

// Delete removes a comment by ID. Replies keep their parent_id; the tree
// builder hides them on the next render.
func (r *PostgresCommentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Comment{}, "id = ?", id).Error
}

// SetApproved flips the moderation flag on a comment
func (r *PostgresCommentRepository) SetApproved(ctx context.Context, id string, approved bool) error {
	res := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", id).
		Update("approved", approved)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountApproved returns the number of approved comments on a post
func (r *PostgresCommentRepository) CountApproved(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("post_id = ? AND approved = ?", postID, true).
		Count(&count).Error
	return count, err
}

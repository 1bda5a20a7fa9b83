package repositories

import (
	"errors"

	"github.com/stackmoneyup/backend/internal/models"
	"gorm.io/gorm"
)

// BookmarkRepository defines the interface for saved post operations
type BookmarkRepository interface {
	AddBookmark(bookmark *models.Bookmark) error
	RemoveBookmark(userID, postID string) error
	IsBookmarked(userID, postID string) (bool, error)
	GetBookmarksByUser(userID string) ([]models.Bookmark, error)
	CountByPost(postID string) (int64, error)
	CountsByPosts(postIDs []string) (map[string]int64, error)
}

// PostgresBookmarkRepository implements BookmarkRepository
type PostgresBookmarkRepository struct {
	db *gorm.DB
}

func NewPostgresBookmarkRepository(db *gorm.DB) *PostgresBookmarkRepository {
	return &PostgresBookmarkRepository{db: db}
}

// AddBookmark saves a bookmark. Adding one that already exists is a no-op.
func (r *PostgresBookmarkRepository) AddBookmark(bookmark *models.Bookmark) error {
	err := r.db.Create(bookmark).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil // already bookmarked
	}
	return err
}

func (r *PostgresBookmarkRepository) RemoveBookmark(userID, postID string) error {
	res := r.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Bookmark{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PostgresBookmarkRepository) IsBookmarked(userID, postID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Bookmark{}).Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error
	return count > 0, err
}

func (r *PostgresBookmarkRepository) GetBookmarksByUser(userID string) ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&bookmarks).Error
	return bookmarks, err
}

// CountByPost returns how many users saved the given post
func (r *PostgresBookmarkRepository) CountByPost(postID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Bookmark{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// CountsByPosts returns bookmark counts keyed by post id
func (r *PostgresBookmarkRepository) CountsByPosts(postIDs []string) (map[string]int64, error) {
	result := make(map[string]int64)
	if len(postIDs) == 0 {
		return result, nil
	}

	type postCount struct {
		PostID string
		Count  int64
	}
	var counts []postCount
	err := r.db.Model(&models.Bookmark{}).
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	for _, c := range counts {
		result[c.PostID] = c.Count
	}
	return result, nil
}

package repositories

import (
	"context"
	"time"

	"github.com/lib/pq"
	"github.com/stackmoneyup/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for blog post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*models.Post, error)
	GetPublishedPosts(ctx context.Context) ([]models.Post, error)
	GetPostsByAuthor(ctx context.Context, authorID string) ([]models.Post, error)
	GetAllPosts(ctx context.Context) ([]models.Post, error)
	SearchPosts(ctx context.Context, query, category string, tags []string, limit int) ([]models.Post, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, slug string) error
	IncrementReads(ctx context.Context, slug string) error
	RemoveTagFromPosts(ctx context.Context, tagSlug string) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post in PostgreSQL
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	if post.Published && post.PublishedAt == nil {
		now := time.Now()
		post.PublishedAt = &now
	}
	return r.db.WithContext(ctx).Create(post).Error
}

// GetPostByID retrieves a post by ID from PostgreSQL
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostBySlug retrieves a post by slug from PostgreSQL
func (r *PostgresPostRepository) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPublishedPosts retrieves all published posts, newest published first
func (r *PostgresPostRepository) GetPublishedPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("published = ?", true).
		Order("published_at DESC NULLS LAST").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostsByAuthor retrieves every post by one author, drafts included
func (r *PostgresPostRepository) GetPostsByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// GetAllPosts retrieves every post including drafts, for the editorial dashboard
func (r *PostgresPostRepository) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// SearchPosts filters published posts by free-text query, category and tags
// on the database side (case-insensitive match over localized title/excerpt,
// category and tag list).
func (r *PostgresPostRepository) SearchPosts(ctx context.Context, query, category string, tags []string, limit int) ([]models.Post, error) {
	q := r.db.WithContext(ctx).Where("published = ?", true)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			r.db.Where("title_en ILIKE ?", like).
				Or("title_it ILIKE ?", like).
				Or("excerpt_en ILIKE ?", like).
				Or("excerpt_it ILIKE ?", like).
				Or("category ILIKE ?", like).
				Or("ARRAY_TO_STRING(tags, ' ') ILIKE ?", like),
		)
	}
	if category != "" && category != "all" {
		q = q.Where("category = ?", category)
	}
	if len(tags) > 0 {
		q = q.Where("tags && ?", pq.StringArray(tags))
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	var posts []models.Post
	err := q.Order("published_at DESC NULLS LAST").Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePost saves an existing post in PostgreSQL
func (r *PostgresPostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	if post.Published && post.PublishedAt == nil {
		now := time.Now()
		post.PublishedAt = &now
	}
	return r.db.WithContext(ctx).Save(post).Error
}

// DeletePost deletes a post by ID from PostgreSQL
func (r *PostgresPostRepository) DeletePost(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Post{}, "id = ?", id).Error
}

// IncrementViews bumps the view counter on a post
func (r *PostgresPostRepository) IncrementViews(ctx context.Context, slug string) error {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("slug = ?", slug).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// IncrementReads bumps the read-completion counter on a post
func (r *PostgresPostRepository) IncrementReads(ctx context.Context, slug string) error {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("slug = ?", slug).
		UpdateColumn("reads", gorm.Expr("reads + 1")).Error
}

// RemoveTagFromPosts strips a tag slug from every post carrying it
func (r *PostgresPostRepository) RemoveTagFromPosts(ctx context.Context, tagSlug string) error {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("tags && ?", pq.StringArray{tagSlug}).
		UpdateColumn("tags", gorm.Expr("ARRAY_REMOVE(tags, ?)", tagSlug)).Error
}

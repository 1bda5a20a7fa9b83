package repositories

import (
	"context"
	"strings"

	"github.com/stackmoneyup/backend/internal/models"
	"gorm.io/gorm"
)

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	GetAllTags(ctx context.Context) ([]models.Tag, error)
	GetTagBySlug(ctx context.Context, slug string) (*models.Tag, error)
	EnsureTagsExist(ctx context.Context, slugs []string) error
	UpdateTag(ctx context.Context, tag *models.Tag) error
	DeleteTag(ctx context.Context, slug string) error
}

// PostgresTagRepository implements TagRepository for PostgreSQL
type PostgresTagRepository struct {
	db *gorm.DB
}

// NewPostgresTagRepository creates a new PostgresTagRepository
func NewPostgresTagRepository(db *gorm.DB) *PostgresTagRepository {
	return &PostgresTagRepository{db: db}
}

// GetAllTags retrieves all tags ordered by English name
func (r *PostgresTagRepository) GetAllTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.WithContext(ctx).Order("name_en ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// GetTagBySlug retrieves a single tag by slug
func (r *PostgresTagRepository) GetTagBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// EnsureTagsExist creates any tag slugs that are not yet in the tags table.
// Names default to the title-cased slug in both languages.
func (r *PostgresTagRepository) EnsureTagsExist(ctx context.Context, slugs []string) error {
	if len(slugs) == 0 {
		return nil
	}

	var existing []string
	err := r.db.WithContext(ctx).
		Model(&models.Tag{}).
		Where("slug IN ?", slugs).
		Pluck("slug", &existing).Error
	if err != nil {
		return err
	}

	known := make(map[string]bool, len(existing))
	for _, s := range existing {
		known[s] = true
	}

	var missing []models.Tag
	for _, slug := range slugs {
		if known[slug] {
			continue
		}
		known[slug] = true
		name := titleFromSlug(slug)
		missing = append(missing, models.Tag{Slug: slug, NameEN: name, NameIT: name})
	}
	if len(missing) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&missing).Error
}

// UpdateTag saves an existing tag
func (r *PostgresTagRepository) UpdateTag(ctx context.Context, tag *models.Tag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

// DeleteTag removes a tag by slug
func (r *PostgresTagRepository) DeleteTag(ctx context.Context, slug string) error {
	res := r.db.WithContext(ctx).Delete(&models.Tag{}, "slug = ?", slug)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// titleFromSlug turns "personal-finance" into "Personal Finance".
func titleFromSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Post represents a localized blog post. Title, excerpt and content carry one
// column per supported language (English and Italian).
type Post struct {
	ID          string         `json:"id" gorm:"type:uuid;primaryKey"`
	Slug        string         `json:"slug" gorm:"uniqueIndex;not null"`
	TitleEN     string         `json:"title_en" gorm:"not null"`
	TitleIT     string         `json:"title_it" gorm:"not null"`
	ExcerptEN   string         `json:"excerpt_en" gorm:"type:text"`
	ExcerptIT   string         `json:"excerpt_it" gorm:"type:text"`
	ContentEN   string         `json:"content_en" gorm:"type:text"`
	ContentIT   string         `json:"content_it" gorm:"type:text"`
	CoverImage  string         `json:"cover_image,omitempty"`
	Category    string         `json:"category" gorm:"index"`
	Tags        pq.StringArray `json:"tags" gorm:"type:text[]"`
	Published   bool           `json:"published" gorm:"default:false;index"`
	Featured    bool           `json:"featured" gorm:"default:false"`
	ReadTime    int            `json:"read_time,omitempty"`
	Views       int64          `json:"views" gorm:"default:0"`
	Reads       int64          `json:"reads" gorm:"default:0"`
	AuthorID    string         `json:"author_id" gorm:"type:uuid;not null;index"`
	PublishedAt *time.Time     `json:"published_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// BeforeCreate assigns the backend id before the row is inserted.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// HasTag reports whether the post carries the given tag slug.
func (p *Post) HasTag(slug string) bool {
	for _, t := range p.Tags {
		if t == slug {
			return true
		}
	}
	return false
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Slug       string   `json:"slug" validate:"required,min=3,max=120"`
	TitleEN    string   `json:"title_en" validate:"required,max=200"`
	TitleIT    string   `json:"title_it" validate:"required,max=200"`
	ExcerptEN  string   `json:"excerpt_en,omitempty" validate:"max=500"`
	ExcerptIT  string   `json:"excerpt_it,omitempty" validate:"max=500"`
	ContentEN  string   `json:"content_en" validate:"required"`
	ContentIT  string   `json:"content_it" validate:"required"`
	CoverImage string   `json:"cover_image,omitempty" validate:"omitempty,url"`
	Category   string   `json:"category" validate:"required,max=50"`
	Tags       []string `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=50"`
	Published  bool     `json:"published,omitempty"`
	Featured   bool     `json:"featured,omitempty"`
	ReadTime   int      `json:"read_time,omitempty" validate:"min=0"`
}

// UpdatePostRequest defines the request body for updating an existing post.
// Pointer fields distinguish "not sent" from zero values.
type UpdatePostRequest struct {
	Slug       *string  `json:"slug,omitempty" validate:"omitempty,min=3,max=120"`
	TitleEN    *string  `json:"title_en,omitempty" validate:"omitempty,max=200"`
	TitleIT    *string  `json:"title_it,omitempty" validate:"omitempty,max=200"`
	ExcerptEN  *string  `json:"excerpt_en,omitempty" validate:"omitempty,max=500"`
	ExcerptIT  *string  `json:"excerpt_it,omitempty" validate:"omitempty,max=500"`
	ContentEN  *string  `json:"content_en,omitempty"`
	ContentIT  *string  `json:"content_it,omitempty"`
	CoverImage *string  `json:"cover_image,omitempty" validate:"omitempty,url"`
	Category   *string  `json:"category,omitempty" validate:"omitempty,max=50"`
	Tags       []string `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=50"`
	Published  *bool    `json:"published,omitempty"`
	Featured   *bool    `json:"featured,omitempty"`
	ReadTime   *int     `json:"read_time,omitempty" validate:"omitempty,min=0"`
}

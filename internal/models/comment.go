package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment represents a comment on a blog post. Replies reference their root
// comment through ParentID; the schema models exactly one level of nesting.
type Comment struct {
	ID         string     `json:"id" gorm:"type:uuid;primaryKey"`
	PostID     string     `json:"post_id" gorm:"type:uuid;not null;index"`
	ParentID   *string    `json:"parent_id" gorm:"type:uuid;index"`
	AuthorID   string     `json:"author_id" gorm:"type:uuid;not null;index"`
	AuthorName string     `json:"author_name" gorm:"->;-:migration"` // Resolved via profiles join, not stored on the row
	Content    string     `json:"content" gorm:"type:text;not null"`
	Approved   bool       `json:"approved" gorm:"default:true;index"`
	Edited     bool       `json:"edited" gorm:"default:false"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	ReplyCount int        `json:"reply_count" gorm:"-"` // Derived during tree assembly
	Replies    []*Comment `json:"replies" gorm:"-"`     // Populated only on root comments
}

// BeforeCreate assigns the backend id before the row is inserted.
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content  string  `json:"content" validate:"required,max=2000"`
	ParentID *string `json:"parent_id,omitempty" validate:"omitempty,uuid"`
}

// UpdateCommentRequest defines the request body for updating an existing comment
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// ModerateCommentRequest defines the request body for approving or rejecting a comment
type ModerateCommentRequest struct {
	Approved *bool `json:"approved" validate:"required"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bookmark represents a blog post saved by a user
type Bookmark struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    string    `json:"user_id" gorm:"type:uuid;index;uniqueIndex:idx_user_post_bookmark"`
	PostID    string    `json:"post_id" gorm:"type:uuid;index;uniqueIndex:idx_user_post_bookmark"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate assigns the backend id before the row is inserted.
func (b *Bookmark) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

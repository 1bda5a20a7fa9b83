package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag represents a localized content tag shared across posts
type Tag struct {
	ID            string    `json:"id" gorm:"type:uuid;primaryKey"`
	Slug          string    `json:"slug" gorm:"uniqueIndex;not null"`
	NameEN        string    `json:"name_en" gorm:"not null"`
	NameIT        string    `json:"name_it" gorm:"not null"`
	DescriptionEN string    `json:"description_en,omitempty" gorm:"type:text"`
	DescriptionIT string    `json:"description_it,omitempty" gorm:"type:text"`
	PostCount     int       `json:"post_count" gorm:"default:0"`
	CreatedAt     time.Time `json:"created_at"`
}

// BeforeCreate assigns the backend id before the row is inserted.
func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// UpdateTagRequest defines the request body for renaming a tag or editing its description
type UpdateTagRequest struct {
	Slug          *string `json:"slug,omitempty" validate:"omitempty,min=1,max=50"`
	NameEN        *string `json:"name_en,omitempty" validate:"omitempty,max=80"`
	NameIT        *string `json:"name_it,omitempty" validate:"omitempty,max=80"`
	DescriptionEN *string `json:"description_en,omitempty" validate:"omitempty,max=500"`
	DescriptionIT *string `json:"description_it,omitempty" validate:"omitempty,max=500"`
}

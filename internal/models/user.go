package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role controls what a signed-in user may do beyond their own content.
type Role string

const (
	RoleUser   Role = "user"
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleEditor || r == RoleAdmin
}

// Profile represents a registered user of the blog
type Profile struct {
	ID        string `json:"id" gorm:"type:uuid;primaryKey"`
	Email     string `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Name      string `json:"name"`
	Role      Role   `json:"role" gorm:"type:varchar(16);default:user;index"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Password  string `json:"-"` // Store hashed password, ignore for JSON serialization
	// Link to Firebase User UID. Pointer so local accounts store NULL:
	// the unique index must not collide on rows without a Firebase link.
	FirebaseUID *string   `json:"firebase_uid,omitempty" gorm:"uniqueIndex"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate assigns the backend id before the row is inserted.
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Role == "" {
		p.Role = RoleUser
	}
	return nil
}

// Actor identifies the caller of a service operation. A nil *Actor means
// the request carried no valid credentials.
type Actor struct {
	ID   string
	Role Role
}

type CreateLocalUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type UpdateProfileRequest struct {
	Name      string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	AvatarURL string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

type UpdateRoleRequest struct {
	Role Role `json:"role" validate:"required,oneof=user editor admin"`
}

// UserStats summarizes registered users by role for the admin dashboard.
type UserStats struct {
	Total   int64 `json:"total"`
	Admins  int64 `json:"admins"`
	Editors int64 `json:"editors"`
	Users   int64 `json:"users"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

// Actor converts the verified claims into a service-layer caller identity.
func (c *JwtCustomClaims) Actor() *Actor {
	return &Actor{ID: c.UserID, Role: c.Role}
}

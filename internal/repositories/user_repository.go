package repositories

import (
	"github.com/stackmoneyup/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for profile data operations
type UserRepository interface {
	CreateProfile(profile *models.Profile) error
	GetProfileByID(id string) (*models.Profile, error)
	GetProfileByEmail(email string) (*models.Profile, error)
	GetProfileByFirebaseUID(firebaseUID string) (*models.Profile, error)
	GetProfiles() ([]models.Profile, error)
	UpdateProfile(profile *models.Profile) error
	UpdateRole(id string, role models.Role) error
	GetUserStats() (*models.UserStats, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateProfile creates a new profile in PostgreSQL
func (r *PostgresUserRepository) CreateProfile(profile *models.Profile) error {
	return r.db.Create(profile).Error
}

// GetProfileByID retrieves a profile by ID from PostgreSQL
func (r *PostgresUserRepository) GetProfileByID(id string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfileByEmail retrieves a profile by email from PostgreSQL
func (r *PostgresUserRepository) GetProfileByEmail(email string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("email = ?", email).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfileByFirebaseUID retrieves a profile by Firebase UID from PostgreSQL
func (r *PostgresUserRepository) GetProfileByFirebaseUID(firebaseUID string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("firebase_uid = ?", firebaseUID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfiles retrieves all profiles, newest first
func (r *PostgresUserRepository) GetProfiles() ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.db.Order("created_at DESC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// UpdateProfile updates an existing profile in PostgreSQL
func (r *PostgresUserRepository) UpdateProfile(profile *models.Profile) error {
	return r.db.Save(profile).Error
}

// UpdateRole sets a user's role
func (r *PostgresUserRepository) UpdateRole(id string, role models.Role) error {
	res := r.db.Model(&models.Profile{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetUserStats tallies registered users by role
func (r *PostgresUserRepository) GetUserStats() (*models.UserStats, error) {
	stats := &models.UserStats{}
	if err := r.db.Model(&models.Profile{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	type roleCount struct {
		Role  models.Role
		Count int64
	}
	var counts []roleCount
	err := r.db.Model(&models.Profile{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	for _, rc := range counts {
		switch rc.Role {
		case models.RoleAdmin:
			stats.Admins = rc.Count
		case models.RoleEditor:
			stats.Editors = rc.Count
		case models.RoleUser:
			stats.Users = rc.Count
		}
	}
	return stats, nil
}

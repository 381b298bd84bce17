package staff

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/harborview-hotels/frontdesk-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository wires together staff account persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads a staff account by identifier.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.StaffUser, error) {
	var user models.StaffUser
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail loads a staff account by email, case-insensitively.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.StaffUser, error) {
	var user models.StaffUser
	if err := r.db.WithContext(ctx).
		Where("lower(email) = lower(?)", email).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername loads a staff account by username.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.StaffUser, error) {
	var user models.StaffUser
	if err := r.db.WithContext(ctx).
		First(&user, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new staff account.
func (r *Repository) Create(ctx context.Context, user *models.StaffUser) (*models.StaffUser, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// TouchLogin stamps the last successful login.
func (r *Repository) TouchLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.StaffUser{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
}

// List returns all staff accounts ordered by username.
func (r *Repository) List(ctx context.Context) ([]models.StaffUser, error) {
	var users []models.StaffUser
	if err := r.db.WithContext(ctx).Order("username").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

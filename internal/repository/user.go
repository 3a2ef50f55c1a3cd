package repository

import (
	"projects_platform/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// UserRepository is the single source of truth for identity records
type UserRepository interface {
	FindByEmail(email string) (*domain.User, error)       // Look up a user by email
	FindByUsername(username string) (*domain.User, error) // Look up a user by username
	FindByID(id uint) (*domain.User, error)               // Look up a user by primary key
	Insert(user *domain.User) error                       // Persist a new user
}

// GormUserRepository implements UserRepository on top of the users table
type GormUserRepository struct {
	db *gorm.DB // Database handle
}

// NewUserRepository creates a gorm-backed user repository
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByEmail returns the user with the given email, or gorm.ErrRecordNotFound
func (r *GormUserRepository) FindByEmail(email string) (*domain.User, error) {
	var user domain.User // User struct to hold data
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err // Not found or storage error
	}
	return &user, nil
}

// FindByUsername returns the user with the given username, or gorm.ErrRecordNotFound
func (r *GormUserRepository) FindByUsername(username string) (*domain.User, error) {
	var user domain.User // User struct to hold data
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err // Not found or storage error
	}
	return &user, nil
}

// FindByID returns the user with the given primary key, or gorm.ErrRecordNotFound
func (r *GormUserRepository) FindByID(id uint) (*domain.User, error) {
	var user domain.User // User struct to hold data
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err // Not found or storage error
	}
	return &user, nil
}

// Insert persists a new user record
func (r *GormUserRepository) Insert(user *domain.User) error {
	return r.db.Create(user).Error // Create the user row
}

package repositories

import (
	"time"

	"github.com/taskmanager-pro/database"
	"github.com/taskmanager-pro/models"
)

// UserRepository handles database operations for users
type UserRepository struct{}

// NewUserRepository creates a new user repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// FindByID retrieves a user by their ID
func (r *UserRepository) FindByID(id uint) (models.User, error) {
	var user models.User
	result := database.DB.First(&user, "id = ?", id)
	return user, result.Error
}

// FindByEmail retrieves a user by email
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	result := database.DB.First(&user, "email = ?", email)
	return user, result.Error
}

// FindByUsername retrieves a user by username
func (r *UserRepository) FindByUsername(username string) (models.User, error) {
	var user models.User
	result := database.DB.First(&user, "username = ?", username)
	return user, result.Error
}

// ExistsByEmail checks whether an email is already registered
func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	result := database.DB.Model(&models.User{}).Where("email = ?", email).Count(&count)
	return count > 0, result.Error
}

// ExistsByUsername checks whether a username is already taken
func (r *UserRepository) ExistsByUsername(username string) (bool, error) {
	var count int64
	result := database.DB.Model(&models.User{}).Where("username = ?", username).Count(&count)
	return count > 0, result.Error
}

// Create inserts a new user into the database
func (r *UserRepository) Create(user models.User) (models.User, error) {
	result := database.DB.Create(&user)
	return user, result.Error
}

// UpdateFields applies an allow-listed change set to a user
func (r *UserRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	result := database.DB.Model(&models.User{}).Where("id = ?", id).Updates(fields)
	return result.Error
}

// TouchLastLogin records a successful login
func (r *UserRepository) TouchLastLogin(id uint, at time.Time) error {
	result := database.DB.Model(&models.User{}).Where("id = ?", id).Update("last_login_at", at)
	return result.Error
}

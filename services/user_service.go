package services

import (
	"github.com/taskmanager-pro/dto"
	"github.com/taskmanager-pro/models"
	"github.com/taskmanager-pro/repositories"
	"github.com/taskmanager-pro/utils"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles profile reads and updates
type UserService struct {
	userRepo *repositories.UserRepository
}

// NewUserService creates a new user service instance
func NewUserService() *UserService {
	return &UserService{
		userRepo: repositories.NewUserRepository(),
	}
}

// GetProfile retrieves the caller's own profile
func (s *UserService) GetProfile(userID uint) (models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return models.User{}, err
	}
	user.Password = ""
	return user, nil
}

// UpdateProfile applies allow-listed profile changes. A password change
// requires the current password to verify before the new one is hashed.
func (s *UserService) UpdateProfile(userID uint, req dto.UpdateProfileRequest) (models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return models.User{}, err
	}

	fields := map[string]interface{}{}
	if req.Email != nil && *req.Email != user.Email {
		taken, err := s.userRepo.ExistsByEmail(*req.Email)
		if err != nil {
			return models.User{}, err
		}
		if taken {
			return models.User{}, utils.Conflict("Email already registered")
		}
		fields["email"] = *req.Email
	}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}
	if req.Avatar != nil {
		fields["avatar"] = *req.Avatar
	}
	if req.Theme != nil {
		fields["theme"] = *req.Theme
	}
	if req.Language != nil {
		fields["language"] = *req.Language
	}
	if req.Timezone != nil {
		fields["timezone"] = *req.Timezone
	}

	if req.NewPassword != nil {
		if req.CurrentPassword == nil {
			return models.User{}, utils.Invalid("Validation failed", map[string]string{
				"current_password": "Required to change the password",
			})
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(*req.CurrentPassword)); err != nil {
			return models.User{}, utils.Forbidden("Current password is incorrect")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, err
		}
		fields["password"] = string(hashed)
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(userID, fields); err != nil {
			return models.User{}, err
		}
	}

	updated, err := s.userRepo.FindByID(userID)
	if err != nil {
		return models.User{}, err
	}
	updated.Password = ""
	return updated, nil
}

package dto

// UpdateProfileRequest carries profile field changes. Password changes go
// through the current-password-then-new pair; both must be present together.
type UpdateProfileRequest struct {
	Email           *string `json:"email" binding:"omitempty,email"`
	FirstName       *string `json:"first_name" binding:"omitempty,max=100"`
	LastName        *string `json:"last_name" binding:"omitempty,max=100"`
	Avatar          *string `json:"avatar" binding:"omitempty,max=255"`
	Theme           *string `json:"theme" binding:"omitempty,max=20"`
	Language        *string `json:"language" binding:"omitempty,max=10"`
	Timezone        *string `json:"timezone" binding:"omitempty,max=50"`
	CurrentPassword *string `json:"current_password"`
	NewPassword     *string `json:"new_password" binding:"omitempty,min=6"`
}

package dto

// CreateTagRequest represents data for creating a tag
type CreateTagRequest struct {
	Name      string  `json:"name" binding:"required,max=50"`
	Color     *string `json:"color"`
	Icon      *string `json:"icon" binding:"omitempty,max=50"`
	ProjectID *uint   `json:"project_id"`
	IsGlobal  bool    `json:"is_global"`
}

// UpdateTagRequest represents partial tag changes
type UpdateTagRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=50"`
	Color    *string `json:"color"`
	Icon     *string `json:"icon" binding:"omitempty,max=50"`
	IsGlobal *bool   `json:"is_global"`
}

// TagFilter narrows tag listings. Personal restricts to project_id IS NULL.
type TagFilter struct {
	UserID    uint
	ProjectID *uint
	Personal  bool
}

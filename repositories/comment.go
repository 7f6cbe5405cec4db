package repositories

import (
	"github.com/taskmanager-pro/database"
	"github.com/taskmanager-pro/models"
)

// CommentRepository handles database operations for task comments
type CommentRepository struct{}

// NewCommentRepository creates a new comment repository instance
func NewCommentRepository() *CommentRepository {
	return &CommentRepository{}
}

// FindByTask retrieves a task's comments, oldest first
func (r *CommentRepository) FindByTask(taskID uint) ([]models.Comment, error) {
	var comments []models.Comment
	result := database.DB.
		Preload("User").
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&comments)
	return comments, result.Error
}

// Create inserts a new comment
func (r *CommentRepository) Create(comment models.Comment) (models.Comment, error) {
	result := database.DB.Create(&comment)
	return comment, result.Error
}

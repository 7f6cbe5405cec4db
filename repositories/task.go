package repositories

import (
	"time"

	"github.com/taskmanager-pro/database"
	"github.com/taskmanager-pro/dto"
	"github.com/taskmanager-pro/models"
	"gorm.io/gorm"
)

// TaskRepository handles database operations for tasks
type TaskRepository struct{}

// NewTaskRepository creates a new task repository instance
func NewTaskRepository() *TaskRepository {
	return &TaskRepository{}
}

// FindByID retrieves a task by its ID
func (r *TaskRepository) FindByID(id uint) (models.Task, error) {
	var task models.Task
	result := database.DB.First(&task, "id = ?", id)
	return task, result.Error
}

// Create inserts a new task into the database
func (r *TaskRepository) Create(task models.Task) (models.Task, error) {
	result := database.DB.Create(&task)
	return task, result.Error
}

// UpdateFields applies an allow-listed change set to a task
func (r *TaskRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	result := database.DB.Model(&models.Task{}).Where("id = ?", id).Updates(fields)
	return result.Error
}

// DeleteCascade removes a task together with its tag links, comments and
// time entries
func (r *TaskRepository) DeleteCascade(id uint) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.TimeEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Task{}, "id = ?", id).Error
	})
}

// visibleTo narrows a task query to what the user can see: tasks they
// created or are assigned to.
func visibleTo(db *gorm.DB, userID uint) *gorm.DB {
	return db.Where("(tasks.creator_id = ? OR tasks.assignee_id = ?)", userID, userID)
}

// FindOverviews retrieves the user's tasks with joined display fields,
// filtered, sorted and paginated. orderBy must come from the service-side
// whitelist.
func (r *TaskRepository) FindOverviews(filter dto.TaskFilter, orderBy string) ([]models.TaskOverview, int64, error) {
	var overviews []models.TaskOverview
	var totalCount int64

	db := visibleTo(database.DB.Table("tasks"), filter.UserID)

	if filter.Status != "" {
		db = db.Where("tasks.status = ?", filter.Status)
	}
	if filter.Priority != "" {
		db = db.Where("tasks.priority = ?", filter.Priority)
	}
	if filter.ProjectID != nil {
		db = db.Where("tasks.project_id = ?", *filter.ProjectID)
	}
	if filter.AssigneeID != nil {
		db = db.Where("tasks.assignee_id = ?", *filter.AssigneeID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		db = db.Where("(tasks.title ILIKE ? OR tasks.description ILIKE ?)", pattern, pattern)
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PageSize
	err := db.
		Select(`tasks.*,
			creators.username AS creator_username,
			COALESCE(assignees.username, '') AS assignee_username,
			COALESCE(projects.name, '') AS project_name,
			COALESCE(projects.color, '') AS project_color`).
		Joins("JOIN users AS creators ON creators.id = tasks.creator_id").
		Joins("LEFT JOIN users AS assignees ON assignees.id = tasks.assignee_id").
		Joins("LEFT JOIN projects ON projects.id = tasks.project_id").
		Order(orderBy).
		Limit(filter.PageSize).
		Offset(offset).
		Find(&overviews).Error

	return overviews, totalCount, err
}

// FindOverview retrieves a single task with joined display fields
func (r *TaskRepository) FindOverview(id uint) (models.TaskOverview, error) {
	var overview models.TaskOverview
	err := database.DB.Table("tasks").
		Select(`tasks.*,
			creators.username AS creator_username,
			COALESCE(assignees.username, '') AS assignee_username,
			COALESCE(projects.name, '') AS project_name,
			COALESCE(projects.color, '') AS project_color`).
		Joins("JOIN users AS creators ON creators.id = tasks.creator_id").
		Joins("LEFT JOIN users AS assignees ON assignees.id = tasks.assignee_id").
		Joins("LEFT JOIN projects ON projects.id = tasks.project_id").
		Where("tasks.id = ?", id).
		First(&overview).Error
	return overview, err
}

// TagsForTask retrieves the tags attached to a task
func (r *TaskRepository) TagsForTask(taskID uint) ([]models.Tag, error) {
	var tags []models.Tag
	err := database.DB.Table("tags").
		Joins("JOIN task_tags ON task_tags.tag_id = tags.id").
		Where("task_tags.task_id = ?", taskID).
		Order("tags.name ASC").
		Find(&tags).Error
	return tags, err
}

// ReplaceTags swaps the task's tag links for the given set
func (r *TaskRepository) ReplaceTags(taskID uint, tagIDs []uint) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskTag{}).Error; err != nil {
			return err
		}
		for _, tagID := range tagIDs {
			link := models.TaskTag{TaskID: taskID, TagID: tagID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// CountByStatus groups the user's visible tasks by status
func (r *TaskRepository) CountByStatus(userID uint) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := visibleTo(database.DB.Model(&models.Task{}), userID).
		Select("tasks.status AS status, COUNT(*) AS count").
		Group("tasks.status").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

// CountOverdue counts visible tasks past their due date that are still open
func (r *TaskRepository) CountOverdue(userID uint, now time.Time) (int64, error) {
	var count int64
	err := visibleTo(database.DB.Model(&models.Task{}), userID).
		Where("tasks.due_date IS NOT NULL AND tasks.due_date < ?", now).
		Where("tasks.status NOT IN ?", []models.TaskStatus{
			models.TaskCompleted, models.TaskCancelled, models.TaskArchived,
		}).
		Count(&count).Error
	return count, err
}

// FindRecent retrieves the newest visible tasks for the dashboard
func (r *TaskRepository) FindRecent(userID uint, limit int) ([]models.TaskOverview, error) {
	var overviews []models.TaskOverview
	err := visibleTo(database.DB.Table("tasks"), userID).
		Select(`tasks.*,
			creators.username AS creator_username,
			COALESCE(assignees.username, '') AS assignee_username,
			COALESCE(projects.name, '') AS project_name,
			COALESCE(projects.color, '') AS project_color`).
		Joins("JOIN users AS creators ON creators.id = tasks.creator_id").
		Joins("LEFT JOIN users AS assignees ON assignees.id = tasks.assignee_id").
		Joins("LEFT JOIN projects ON projects.id = tasks.project_id").
		Order("tasks.created_at DESC").
		Limit(limit).
		Find(&overviews).Error
	return overviews, err
}

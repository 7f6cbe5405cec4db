package repositories

import (
	"github.com/taskmanager-pro/database"
	"github.com/taskmanager-pro/models"
	"gorm.io/gorm"
)

// ProjectRepository handles database operations for projects and memberships
type ProjectRepository struct{}

// NewProjectRepository creates a new project repository instance
func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{}
}

// FindByID retrieves a project by its ID
func (r *ProjectRepository) FindByID(id uint) (models.Project, error) {
	var project models.Project
	result := database.DB.First(&project, "id = ?", id)
	return project, result.Error
}

// CreateWithOwner inserts the project row and the owner's membership row in
// one transaction. Membership is the single source of truth for visibility,
// so a project must never exist without its owner's row.
func (r *ProjectRepository) CreateWithOwner(project models.Project) (models.Project, error) {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		member := models.ProjectMember{
			ProjectID: project.ID,
			UserID:    project.OwnerID,
			Role:      models.ProjectRoleOwner,
		}
		return tx.Create(&member).Error
	})
	return project, err
}

// FindOverviewsForUser retrieves the projects visible to a user through
// project_members, joined with the owner's username and task counts.
func (r *ProjectRepository) FindOverviewsForUser(
	userID uint,
	status string,
	search string,
	orderBy string,
	page, pageSize int) ([]models.ProjectOverview, int64, error) {

	var overviews []models.ProjectOverview
	var totalCount int64

	db := database.DB.Table("projects").
		Joins("JOIN project_members ON project_members.project_id = projects.id").
		Where("project_members.user_id = ?", userID)

	if status != "" {
		db = db.Where("projects.status = ?", status)
	}
	if search != "" {
		pattern := "%" + search + "%"
		db = db.Where("(projects.name ILIKE ? OR projects.description ILIKE ?)", pattern, pattern)
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := db.
		Select(`projects.*,
			users.username AS owner_username,
			project_members.role AS member_role,
			(SELECT COUNT(*) FROM tasks WHERE tasks.project_id = projects.id) AS task_count,
			(SELECT COUNT(*) FROM tasks WHERE tasks.project_id = projects.id AND tasks.status = 'completed') AS completed_task_count`).
		Joins("JOIN users ON users.id = projects.owner_id").
		Order(orderBy).
		Limit(pageSize).
		Offset(offset).
		Find(&overviews).Error

	return overviews, totalCount, err
}

// FindOverview retrieves a single project as a membership-joined overview
func (r *ProjectRepository) FindOverview(projectID, userID uint) (models.ProjectOverview, error) {
	var overview models.ProjectOverview
	err := database.DB.Table("projects").
		Select(`projects.*,
			users.username AS owner_username,
			project_members.role AS member_role,
			(SELECT COUNT(*) FROM tasks WHERE tasks.project_id = projects.id) AS task_count,
			(SELECT COUNT(*) FROM tasks WHERE tasks.project_id = projects.id AND tasks.status = 'completed') AS completed_task_count`).
		Joins("JOIN project_members ON project_members.project_id = projects.id AND project_members.user_id = ?", userID).
		Joins("JOIN users ON users.id = projects.owner_id").
		Where("projects.id = ?", projectID).
		First(&overview).Error
	return overview, err
}

// CountForUser counts projects visible to a user through project_members
func (r *ProjectRepository) CountForUser(userID uint) (int64, error) {
	var count int64
	result := database.DB.Model(&models.ProjectMember{}).Where("user_id = ?", userID).Count(&count)
	return count, result.Error
}

// HasMember checks whether a user has a membership row for a project
func (r *ProjectRepository) HasMember(projectID, userID uint) (bool, error) {
	var count int64
	result := database.DB.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count)
	return count > 0, result.Error
}

// MemberRole returns the user's role within a project
func (r *ProjectRepository) MemberRole(projectID, userID uint) (models.ProjectRole, error) {
	var member models.ProjectMember
	result := database.DB.
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member)
	return member.Role, result.Error
}

// FindMembers retrieves a project's memberships joined with user identity
func (r *ProjectRepository) FindMembers(projectID uint) ([]models.MemberOverview, error) {
	var members []models.MemberOverview
	err := database.DB.Table("project_members").
		Select(`project_members.id, project_members.project_id, project_members.user_id,
			project_members.role, project_members.joined_at,
			users.username, users.email, users.avatar`).
		Joins("JOIN users ON users.id = project_members.user_id").
		Where("project_members.project_id = ?", projectID).
		Order("project_members.joined_at ASC").
		Find(&members).Error
	return members, err
}

// AddMember inserts a membership row
func (r *ProjectRepository) AddMember(member models.ProjectMember) (models.ProjectMember, error) {
	result := database.DB.Create(&member)
	return member, result.Error
}

// RemoveMember deletes a membership row, reporting whether one existed
func (r *ProjectRepository) RemoveMember(projectID, userID uint) (bool, error) {
	result := database.DB.
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMember{})
	return result.RowsAffected > 0, result.Error
}

// UpdateFields applies an allow-listed change set to a project
func (r *ProjectRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	result := database.DB.Model(&models.Project{}).Where("id = ?", id).Updates(fields)
	return result.Error
}

// DeleteCascade removes a project and everything scoped to it, in dependency
// order: memberships, task-tag links, comments and time entries of its tasks,
// the tasks, project-scoped tags, then the project row.
func (r *ProjectRepository) DeleteCascade(id uint) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		taskIDs := func() *gorm.DB {
			return tx.Model(&models.Task{}).Select("id").Where("project_id = ?", id)
		}
		if err := tx.Where("task_id IN (?)", taskIDs()).Delete(&models.TaskTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id IN (?)", taskIDs()).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id IN (?)", taskIDs()).Delete(&models.TimeEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Tag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, "id = ?", id).Error
	})
}

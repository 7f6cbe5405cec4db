package repositories

import (
	"github.com/taskmanager-pro/database"
	"github.com/taskmanager-pro/dto"
	"github.com/taskmanager-pro/models"
	"gorm.io/gorm"
)

// TagRepository handles database operations for tags
type TagRepository struct{}

// NewTagRepository creates a new tag repository instance
func NewTagRepository() *TagRepository {
	return &TagRepository{}
}

// FindByID retrieves a tag by its ID
func (r *TagRepository) FindByID(id uint) (models.Tag, error) {
	var tag models.Tag
	result := database.DB.First(&tag, "id = ?", id)
	return tag, result.Error
}

// FindVisible retrieves tags the user can see: their own plus global ones,
// optionally narrowed to a project scope or to personal (no project) tags.
func (r *TagRepository) FindVisible(filter dto.TagFilter) ([]models.Tag, error) {
	var tags []models.Tag
	db := database.DB.Where("(user_id = ? OR is_global = ?)", filter.UserID, true)
	if filter.ProjectID != nil {
		db = db.Where("project_id = ?", *filter.ProjectID)
	} else if filter.Personal {
		db = db.Where("project_id IS NULL")
	}
	result := db.Order("name ASC").Find(&tags)
	return tags, result.Error
}

// ExistsInScope checks name uniqueness within a (user, project) scope
func (r *TagRepository) ExistsInScope(name string, userID *uint, projectID *uint, excludeID uint) (bool, error) {
	db := database.DB.Model(&models.Tag{}).Where("name = ?", name)
	if userID != nil {
		db = db.Where("user_id = ?", *userID)
	} else {
		db = db.Where("user_id IS NULL")
	}
	if projectID != nil {
		db = db.Where("project_id = ?", *projectID)
	} else {
		db = db.Where("project_id IS NULL")
	}
	if excludeID != 0 {
		db = db.Where("id <> ?", excludeID)
	}
	var count int64
	result := db.Count(&count)
	return count > 0, result.Error
}

// Create inserts a new tag into the database
func (r *TagRepository) Create(tag models.Tag) (models.Tag, error) {
	result := database.DB.Create(&tag)
	return tag, result.Error
}

// UpdateFields applies an allow-listed change set to a tag
func (r *TagRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	result := database.DB.Model(&models.Tag{}).Where("id = ?", id).Updates(fields)
	return result.Error
}

// DeleteCascade removes a tag and its task links first
func (r *TagRepository) DeleteCascade(id uint) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&models.TaskTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Tag{}, "id = ?", id).Error
	})
}

// CountVisibleByIDs counts how many of the given tag ids are visible to the
// user, used to validate tag attachment sets.
func (r *TagRepository) CountVisibleByIDs(userID uint, ids []uint) (int64, error) {
	var count int64
	result := database.DB.Model(&models.Tag{}).
		Where("id IN ?", ids).
		Where("(user_id = ? OR is_global = ?)", userID, true).
		Count(&count)
	return count, result.Error
}

package repositories

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/taskmanager-pro/database"
	"github.com/taskmanager-pro/dto"
	"github.com/taskmanager-pro/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TimeEntryRepository handles database operations for time entries
type TimeEntryRepository struct{}

// NewTimeEntryRepository creates a new time entry repository instance
func NewTimeEntryRepository() *TimeEntryRepository {
	return &TimeEntryRepository{}
}

// FindByID retrieves a time entry by its ID
func (r *TimeEntryRepository) FindByID(id uint) (models.TimeEntry, error) {
	var entry models.TimeEntry
	result := database.DB.First(&entry, "id = ?", id)
	return entry, result.Error
}

// FindRunning retrieves the user's running entry, if any
func (r *TimeEntryRepository) FindRunning(userID uint) (models.TimeEntry, error) {
	var entry models.TimeEntry
	result := database.DB.
		Where("user_id = ? AND end_time IS NULL", userID).
		First(&entry)
	return entry, result.Error
}

// StartRunning inserts a running entry unless the user already has one. The
// check and the insert share a transaction that locks the user's open rows,
// and the partial unique index backstops it at the schema level. Returns
// false when a timer was already running.
func (r *TimeEntryRepository) StartRunning(entry *models.TimeEntry) (bool, error) {
	started := false
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var open []models.TimeEntry
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND end_time IS NULL", entry.UserID).
			Find(&open).Error
		if err != nil {
			return err
		}
		if len(open) > 0 {
			return nil
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		started = true
		return nil
	})
	if err != nil {
		// Two truly concurrent starts can both see zero open rows; the
		// partial unique index rejects the loser
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return false, nil
		}
		return false, err
	}
	return started, nil
}

// Create inserts a closed (manual) entry
func (r *TimeEntryRepository) Create(entry models.TimeEntry) (models.TimeEntry, error) {
	result := database.DB.Create(&entry)
	return entry, result.Error
}

// UpdateFields applies an allow-listed change set to an entry
func (r *TimeEntryRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	result := database.DB.Model(&models.TimeEntry{}).Where("id = ?", id).Updates(fields)
	return result.Error
}

// Delete removes an entry
func (r *TimeEntryRepository) Delete(id uint) error {
	result := database.DB.Delete(&models.TimeEntry{}, "id = ?", id)
	return result.Error
}

// FindForUser retrieves the user's entries, newest first
func (r *TimeEntryRepository) FindForUser(filter dto.TimeEntryFilter) ([]models.TimeEntry, int64, error) {
	var entries []models.TimeEntry
	var totalCount int64

	db := database.DB.Model(&models.TimeEntry{}).Where("user_id = ?", filter.UserID)
	if filter.TaskID != nil {
		db = db.Where("task_id = ?", *filter.TaskID)
	}
	if filter.From != "" {
		db = db.Where("start_time >= ?", filter.From)
	}
	if filter.To != "" {
		db = db.Where("start_time <= ?", filter.To)
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PageSize
	err := db.Order("start_time DESC").
		Limit(filter.PageSize).
		Offset(offset).
		Find(&entries).Error
	return entries, totalCount, err
}

// FindForTask retrieves a task's entries, newest first
func (r *TimeEntryRepository) FindForTask(taskID uint) ([]models.TimeEntry, error) {
	var entries []models.TimeEntry
	result := database.DB.
		Where("task_id = ?", taskID).
		Order("start_time DESC").
		Find(&entries)
	return entries, result.Error
}

// SumPerDay sums closed-entry durations per day over a range. Running
// entries carry a NULL duration and are excluded.
func (r *TimeEntryRepository) SumPerDay(userID uint, from, to string) ([]models.DayDuration, error) {
	var days []models.DayDuration
	db := database.DB.Model(&models.TimeEntry{}).
		Select("TO_CHAR(start_time, 'YYYY-MM-DD') AS day, SUM(duration) AS seconds").
		Where("user_id = ? AND duration IS NOT NULL", userID)
	if from != "" {
		db = db.Where("start_time >= ?", from)
	}
	if to != "" {
		db = db.Where("start_time <= ?", to)
	}
	err := db.Group("day").Order("day ASC").Find(&days).Error
	return days, err
}

// SumSince totals closed-entry seconds from a point in time
func (r *TimeEntryRepository) SumSince(userID uint, from time.Time) (int64, error) {
	var total *int64
	err := database.DB.Model(&models.TimeEntry{}).
		Select("SUM(duration)").
		Where("user_id = ? AND duration IS NOT NULL AND start_time >= ?", userID, from).
		Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}

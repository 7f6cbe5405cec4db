package services

import (
	"errors"
	"time"

	"github.com/taskmanager-pro/dto"
	"github.com/taskmanager-pro/models"
	"github.com/taskmanager-pro/repositories"
	"github.com/taskmanager-pro/utils"
	"gorm.io/gorm"
)

// timeNow is swapped in tests for a fixed clock
var timeNow = time.Now

// TimeService handles the timer state machine and time entry bookkeeping
type TimeService struct {
	timeRepo *repositories.TimeEntryRepository
	taskRepo *repositories.TaskRepository
}

// NewTimeService creates a new time service instance
func NewTimeService() *TimeService {
	return &TimeService{
		timeRepo: repositories.NewTimeEntryRepository(),
		taskRepo: repositories.NewTaskRepository(),
	}
}

// checkTask verifies the task exists and is visible to the user
func (s *TimeService) checkTask(taskID, userID uint) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound("Task not found")
		}
		return err
	}
	if !canRead(task, userID) {
		return utils.NotFound("Task not found")
	}
	return nil
}

// StartTimer opens a running entry for the caller. Conflict if one is
// already running.
func (s *TimeService) StartTimer(userID uint, req dto.StartTimerRequest) (models.TimeEntry, error) {
	if err := s.checkTask(req.TaskID, userID); err != nil {
		return models.TimeEntry{}, err
	}

	entry := models.TimeEntry{
		UserID:    userID,
		TaskID:    req.TaskID,
		StartTime: timeNow(),
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}

	started, err := s.timeRepo.StartRunning(&entry)
	if err != nil {
		return models.TimeEntry{}, err
	}
	if !started {
		return models.TimeEntry{}, utils.Conflict("A timer is already running")
	}
	return entry, nil
}

// StopTimer closes the caller's running entry, computing its duration in
// whole seconds. NotFound if nothing is running.
func (s *TimeService) StopTimer(userID uint) (models.TimeEntry, error) {
	entry, err := s.timeRepo.FindRunning(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.TimeEntry{}, utils.NotFound("No active timer")
		}
		return models.TimeEntry{}, err
	}

	now := timeNow()
	duration := int64(now.Sub(entry.StartTime).Seconds())
	fields := map[string]interface{}{
		"end_time": now,
		"duration": duration,
	}
	if err := s.timeRepo.UpdateFields(entry.ID, fields); err != nil {
		return models.TimeEntry{}, err
	}
	entry.EndTime = &now
	entry.Duration = &duration
	return entry, nil
}

// GetActive retrieves the caller's running entry or NotFound
func (s *TimeService) GetActive(userID uint) (models.TimeEntry, error) {
	entry, err := s.timeRepo.FindRunning(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.TimeEntry{}, utils.NotFound("No active timer")
		}
		return models.TimeEntry{}, err
	}
	return entry, nil
}

// CreateManualEntry backfills a closed entry. Both times and the duration
// come from the caller; the duration is deliberately not recomputed.
func (s *TimeService) CreateManualEntry(userID uint, req dto.ManualEntryRequest) (models.TimeEntry, error) {
	if err := s.checkTask(req.TaskID, userID); err != nil {
		return models.TimeEntry{}, err
	}

	start, err := utils.ParseDate(req.StartTime)
	if err != nil || start == nil {
		return models.TimeEntry{}, utils.Invalid("Validation failed", map[string]string{"start_time": "Must be a valid date"})
	}
	end, err := utils.ParseDate(req.EndTime)
	if err != nil || end == nil {
		return models.TimeEntry{}, utils.Invalid("Validation failed", map[string]string{"end_time": "Must be a valid date"})
	}
	if end.Before(*start) {
		return models.TimeEntry{}, utils.Invalid("Validation failed", map[string]string{"end_time": "Must not be before start_time"})
	}

	entry := models.TimeEntry{
		UserID:    userID,
		TaskID:    req.TaskID,
		StartTime: *start,
		EndTime:   end,
		Duration:  req.Duration,
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	return s.timeRepo.Create(entry)
}

// findOwned retrieves an entry and verifies ownership without leaking
// existence to other users
func (s *TimeService) findOwned(entryID, userID uint) (models.TimeEntry, error) {
	entry, err := s.timeRepo.FindByID(entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.TimeEntry{}, utils.NotFound("Time entry not found")
		}
		return models.TimeEntry{}, err
	}
	if entry.UserID != userID {
		return models.TimeEntry{}, utils.NotFound("Time entry not found")
	}
	return entry, nil
}

// UpdateTimeEntry applies allow-listed changes to a closed entry. Running
// entries can only be mutated by stopping them.
func (s *TimeService) UpdateTimeEntry(entryID uint, req dto.UpdateTimeEntryRequest, userID uint) (models.TimeEntry, error) {
	entry, err := s.findOwned(entryID, userID)
	if err != nil {
		return models.TimeEntry{}, err
	}
	if entry.EndTime == nil {
		return models.TimeEntry{}, utils.Conflict("Cannot modify a running timer; stop it first")
	}

	fields := map[string]interface{}{}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.StartTime != nil {
		start, err := utils.ParseDate(*req.StartTime)
		if err != nil || start == nil {
			return models.TimeEntry{}, utils.Invalid("Validation failed", map[string]string{"start_time": "Must be a valid date"})
		}
		fields["start_time"] = *start
	}
	if req.EndTime != nil {
		end, err := utils.ParseDate(*req.EndTime)
		if err != nil || end == nil {
			return models.TimeEntry{}, utils.Invalid("Validation failed", map[string]string{"end_time": "Must be a valid date"})
		}
		fields["end_time"] = *end
	}
	if req.Duration != nil {
		fields["duration"] = *req.Duration
	}

	if len(fields) > 0 {
		if err := s.timeRepo.UpdateFields(entryID, fields); err != nil {
			return models.TimeEntry{}, err
		}
	}
	return s.timeRepo.FindByID(entryID)
}

// DeleteTimeEntry removes a closed entry. Running entries cannot be deleted.
func (s *TimeService) DeleteTimeEntry(entryID, userID uint) error {
	entry, err := s.findOwned(entryID, userID)
	if err != nil {
		return err
	}
	if entry.EndTime == nil {
		return utils.Conflict("Cannot delete a running timer; stop it first")
	}
	return s.timeRepo.Delete(entryID)
}

// ListEntries retrieves the caller's entries, newest first
func (s *TimeService) ListEntries(filter dto.TimeEntryFilter) (dto.TimeEntryListResponse, error) {
	var response dto.TimeEntryListResponse

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	entries, totalCount, err := s.timeRepo.FindForUser(filter)
	if err != nil {
		return response, err
	}

	totalPages := int(totalCount) / filter.PageSize
	if int(totalCount)%filter.PageSize > 0 {
		totalPages++
	}

	response = dto.TimeEntryListResponse{
		Entries:    entries,
		TotalCount: totalCount,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}
	return response, nil
}

// GetTimeStats sums closed-entry durations per day over a date range.
// Running entries have no duration yet and are excluded.
func (s *TimeService) GetTimeStats(userID uint, from, to string) (dto.TimeStatsResponse, error) {
	days, err := s.timeRepo.SumPerDay(userID, from, to)
	if err != nil {
		return dto.TimeStatsResponse{}, err
	}
	var total int64
	for _, d := range days {
		total += d.Seconds
	}
	return dto.TimeStatsResponse{
		Days:         days,
		TotalSeconds: total,
	}, nil
}

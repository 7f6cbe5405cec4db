package services

import (
	"errors"
	"time"

	"github.com/taskmanager-pro/dto"
	"github.com/taskmanager-pro/repositories"
	"gorm.io/gorm"
)

const recentTaskLimit = 5

// DashboardService aggregates the caller's workload for the dashboard view
type DashboardService struct {
	taskRepo    *repositories.TaskRepository
	projectRepo *repositories.ProjectRepository
	timeRepo    *repositories.TimeEntryRepository
}

// NewDashboardService creates a new dashboard service instance
func NewDashboardService() *DashboardService {
	return &DashboardService{
		taskRepo:    repositories.NewTaskRepository(),
		projectRepo: repositories.NewProjectRepository(),
		timeRepo:    repositories.NewTimeEntryRepository(),
	}
}

// startOfWeek returns Monday 00:00 of the week containing t
func startOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	day := t.AddDate(0, 0, -(weekday - 1))
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, t.Location())
}

// GetDashboard builds the aggregated stats and recent items payload
func (s *DashboardService) GetDashboard(userID uint) (dto.DashboardResponse, error) {
	var response dto.DashboardResponse

	counts, err := s.taskRepo.CountByStatus(userID)
	if err != nil {
		return response, err
	}
	var totalTasks int64
	for _, c := range counts {
		totalTasks += c
	}

	now := timeNow()
	overdue, err := s.taskRepo.CountOverdue(userID, now)
	if err != nil {
		return response, err
	}

	projectCount, err := s.projectRepo.CountForUser(userID)
	if err != nil {
		return response, err
	}

	weekSeconds, err := s.timeRepo.SumSince(userID, startOfWeek(now))
	if err != nil {
		return response, err
	}

	recent, err := s.taskRepo.FindRecent(userID, recentTaskLimit)
	if err != nil {
		return response, err
	}

	response = dto.DashboardResponse{
		TaskCounts:   counts,
		TotalTasks:   totalTasks,
		OverdueTasks: overdue,
		ProjectCount: projectCount,
		WeekSeconds:  weekSeconds,
		RecentTasks:  recent,
	}

	active, err := s.timeRepo.FindRunning(userID)
	if err == nil {
		response.ActiveTimer = &active
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return response, err
	}

	return response, nil
}

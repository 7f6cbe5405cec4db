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

// Valid sort columns (whitelist approach for security)
var taskSortColumns = map[string]string{
	"created_at": "tasks.created_at",
	"updated_at": "tasks.updated_at",
	"due_date":   "tasks.due_date",
	"priority":   "tasks.priority",
	"status":     "tasks.status",
	"title":      "tasks.title",
}

// TaskService handles business logic for tasks and their comments
type TaskService struct {
	taskRepo    *repositories.TaskRepository
	tagRepo     *repositories.TagRepository
	commentRepo *repositories.CommentRepository
	timeRepo    *repositories.TimeEntryRepository
	projectRepo *repositories.ProjectRepository
	userRepo    *repositories.UserRepository
}

// NewTaskService creates a new task service instance
func NewTaskService() *TaskService {
	return &TaskService{
		taskRepo:    repositories.NewTaskRepository(),
		tagRepo:     repositories.NewTagRepository(),
		commentRepo: repositories.NewCommentRepository(),
		timeRepo:    repositories.NewTimeEntryRepository(),
		projectRepo: repositories.NewProjectRepository(),
		userRepo:    repositories.NewUserRepository(),
	}
}

func taskOrder(sortBy, sortOrder string) string {
	column, ok := taskSortColumns[sortBy]
	if !ok {
		column = taskSortColumns["created_at"]
	}
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	return column + " " + sortOrder
}

// normalizeCompletion applies the status/percentage coupling: completed
// always means 100, anything else clamps the supplied value into [0,100].
// A nil percentage keeps the current value unless the status forces it.
func normalizeCompletion(status models.TaskStatus, requested *int, current int) int {
	if status == models.TaskCompleted {
		return 100
	}
	if requested == nil {
		return utils.ClampPercent(current)
	}
	return utils.ClampPercent(*requested)
}

// canRead reports whether the user may read or update the task
func canRead(task models.Task, userID uint) bool {
	if task.CreatorID == userID {
		return true
	}
	return task.AssigneeID != nil && *task.AssigneeID == userID
}

// checkTagSet validates that every id in a tag attachment set is visible to
// the user
func (s *TaskService) checkTagSet(userID uint, tagIDs []uint) error {
	if len(tagIDs) == 0 {
		return nil
	}
	visible, err := s.tagRepo.CountVisibleByIDs(userID, tagIDs)
	if err != nil {
		return err
	}
	if visible != int64(len(tagIDs)) {
		return utils.Invalid("Validation failed", map[string]string{"tag_ids": "Contains an unknown tag"})
	}
	return nil
}

// CreateTask creates a task. The creator is the authenticated caller,
// regardless of the payload.
func (s *TaskService) CreateTask(req dto.CreateTaskRequest, creatorID uint) (models.Task, error) {
	task := models.Task{
		Title:     req.Title,
		CreatorID: creatorID,
		Status:    models.TaskPending,
		Priority:  models.PriorityMedium,
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = models.TaskStatus(*req.Status)
	}
	if req.Priority != nil {
		task.Priority = models.TaskPriority(*req.Priority)
	}

	if req.ProjectID != nil {
		member, err := s.projectRepo.HasMember(*req.ProjectID, creatorID)
		if err != nil {
			return models.Task{}, err
		}
		if !member {
			return models.Task{}, utils.NotFound("Project not found")
		}
		task.ProjectID = req.ProjectID
	}
	if req.AssigneeID != nil {
		if _, err := s.userRepo.FindByID(*req.AssigneeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Task{}, utils.NotFound("Assignee not found")
			}
			return models.Task{}, err
		}
		task.AssigneeID = req.AssigneeID
	}
	if req.ParentTaskID != nil {
		parent, err := s.taskRepo.FindByID(*req.ParentTaskID)
		if err != nil || !canRead(parent, creatorID) {
			return models.Task{}, utils.NotFound("Parent task not found")
		}
		task.ParentTaskID = req.ParentTaskID
	}

	due, err := parseDateField(req.DueDate, "due_date")
	if err != nil {
		return models.Task{}, err
	}
	task.DueDate = due
	start, err := parseDateField(req.StartDate, "start_date")
	if err != nil {
		return models.Task{}, err
	}
	task.StartDate = start

	task.EstimatedHours = req.EstimatedHours
	task.ActualHours = req.ActualHours
	task.CompletionPercentage = normalizeCompletion(task.Status, req.CompletionPercentage, 0)

	if err := s.checkTagSet(creatorID, req.TagIDs); err != nil {
		return models.Task{}, err
	}

	created, err := s.taskRepo.Create(task)
	if err != nil {
		return models.Task{}, err
	}
	if len(req.TagIDs) > 0 {
		if err := s.taskRepo.ReplaceTags(created.ID, req.TagIDs); err != nil {
			return models.Task{}, err
		}
	}
	return created, nil
}

func parseDateField(raw *string, field string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	parsed, err := utils.ParseDate(*raw)
	if err != nil {
		return nil, utils.Invalid("Validation failed", map[string]string{field: "Must be a valid date"})
	}
	return parsed, nil
}

// ListTasks retrieves the caller's visible tasks with filtering, sorting and
// pagination
func (s *TaskService) ListTasks(filter dto.TaskFilter) (dto.TaskListResponse, error) {
	var response dto.TaskListResponse

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 10
	}

	tasks, totalCount, err := s.taskRepo.FindOverviews(filter, taskOrder(filter.SortBy, filter.SortOrder))
	if err != nil {
		return response, err
	}

	totalPages := int(totalCount) / filter.PageSize
	if int(totalCount)%filter.PageSize > 0 {
		totalPages++
	}

	response = dto.TaskListResponse{
		Tasks:      tasks,
		TotalCount: totalCount,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}
	return response, nil
}

// GetTaskDetail retrieves a task enriched with tags, comments (oldest first)
// and time entries (newest first). Creator or assignee only.
func (s *TaskService) GetTaskDetail(taskID, userID uint) (models.TaskDetail, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.TaskDetail{}, utils.NotFound("Task not found")
		}
		return models.TaskDetail{}, err
	}
	if !canRead(task, userID) {
		return models.TaskDetail{}, utils.Forbidden("You don't have access to this task")
	}

	overview, err := s.taskRepo.FindOverview(taskID)
	if err != nil {
		return models.TaskDetail{}, err
	}
	tags, err := s.taskRepo.TagsForTask(taskID)
	if err != nil {
		return models.TaskDetail{}, err
	}
	comments, err := s.commentRepo.FindByTask(taskID)
	if err != nil {
		return models.TaskDetail{}, err
	}
	entries, err := s.timeRepo.FindForTask(taskID)
	if err != nil {
		return models.TaskDetail{}, err
	}

	return models.TaskDetail{
		TaskOverview: overview,
		Tags:         tags,
		Comments:     comments,
		TimeEntries:  entries,
	}, nil
}

// UpdateTask applies allow-listed changes. Creator or assignee only.
func (s *TaskService) UpdateTask(taskID uint, req dto.UpdateTaskRequest, userID uint) (models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, utils.NotFound("Task not found")
		}
		return models.Task{}, err
	}
	if !canRead(task, userID) {
		return models.Task{}, utils.Forbidden("You don't have access to this task")
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		if *req.Title == "" {
			return models.Task{}, utils.Invalid("Validation failed", map[string]string{"title": "This field is required"})
		}
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.ProjectID != nil {
		member, err := s.projectRepo.HasMember(*req.ProjectID, userID)
		if err != nil {
			return models.Task{}, err
		}
		if !member {
			return models.Task{}, utils.NotFound("Project not found")
		}
		fields["project_id"] = *req.ProjectID
	}
	if req.AssigneeID != nil {
		if _, err := s.userRepo.FindByID(*req.AssigneeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Task{}, utils.NotFound("Assignee not found")
			}
			return models.Task{}, err
		}
		fields["assignee_id"] = *req.AssigneeID
	}
	if req.ParentTaskID != nil {
		parent, err := s.taskRepo.FindByID(*req.ParentTaskID)
		if err != nil || !canRead(parent, userID) {
			return models.Task{}, utils.NotFound("Parent task not found")
		}
		fields["parent_task_id"] = *req.ParentTaskID
	}
	if req.DueDate != nil {
		due, err := parseDateField(req.DueDate, "due_date")
		if err != nil {
			return models.Task{}, err
		}
		fields["due_date"] = due
	}
	if req.StartDate != nil {
		start, err := parseDateField(req.StartDate, "start_date")
		if err != nil {
			return models.Task{}, err
		}
		fields["start_date"] = start
	}
	if req.EstimatedHours != nil {
		fields["estimated_hours"] = *req.EstimatedHours
	}
	if req.ActualHours != nil {
		fields["actual_hours"] = *req.ActualHours
	}
	if req.Priority != nil {
		fields["priority"] = *req.Priority
	}

	status := task.Status
	if req.Status != nil {
		status = models.TaskStatus(*req.Status)
		fields["status"] = *req.Status
	}
	if req.Status != nil || req.CompletionPercentage != nil {
		fields["completion_percentage"] = normalizeCompletion(status, req.CompletionPercentage, task.CompletionPercentage)
	}

	if req.TagIDs != nil {
		if err := s.checkTagSet(userID, req.TagIDs); err != nil {
			return models.Task{}, err
		}
		if err := s.taskRepo.ReplaceTags(taskID, req.TagIDs); err != nil {
			return models.Task{}, err
		}
	}

	if len(fields) > 0 {
		if err := s.taskRepo.UpdateFields(taskID, fields); err != nil {
			return models.Task{}, err
		}
	}
	return s.taskRepo.FindByID(taskID)
}

// UpdateStatus performs the status transition, forcing completion to 100 on
// completed and clamping otherwise
func (s *TaskService) UpdateStatus(taskID uint, req dto.UpdateTaskStatusRequest, userID uint) (models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, utils.NotFound("Task not found")
		}
		return models.Task{}, err
	}
	if !canRead(task, userID) {
		return models.Task{}, utils.Forbidden("You don't have access to this task")
	}

	status := models.TaskStatus(req.Status)
	fields := map[string]interface{}{
		"status":                req.Status,
		"completion_percentage": normalizeCompletion(status, req.CompletionPercentage, task.CompletionPercentage),
	}
	if err := s.taskRepo.UpdateFields(taskID, fields); err != nil {
		return models.Task{}, err
	}
	return s.taskRepo.FindByID(taskID)
}

// DeleteTask removes a task and everything hanging off it. Creator only.
func (s *TaskService) DeleteTask(taskID, userID uint) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound("Task not found")
		}
		return err
	}
	if !canRead(task, userID) {
		return utils.Forbidden("You don't have access to this task")
	}
	if task.CreatorID != userID {
		return utils.Forbidden("Only the task creator can delete this task")
	}
	return s.taskRepo.DeleteCascade(taskID)
}

// ListComments retrieves a task's comments, oldest first. Creator or
// assignee only.
func (s *TaskService) ListComments(taskID, userID uint) ([]models.Comment, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Task not found")
		}
		return nil, err
	}
	if !canRead(task, userID) {
		return nil, utils.Forbidden("You don't have access to this task")
	}
	return s.commentRepo.FindByTask(taskID)
}

// AddComment leaves a comment on a task the caller can read
func (s *TaskService) AddComment(taskID uint, req dto.CreateCommentRequest, userID uint) (models.Comment, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Comment{}, utils.NotFound("Task not found")
		}
		return models.Comment{}, err
	}
	if !canRead(task, userID) {
		return models.Comment{}, utils.Forbidden("You don't have access to this task")
	}
	return s.commentRepo.Create(models.Comment{
		TaskID:  taskID,
		UserID:  userID,
		Content: req.Content,
	})
}

package services

import (
	"errors"
	"regexp"
	"time"

	"github.com/taskmanager-pro/dto"
	"github.com/taskmanager-pro/models"
	"github.com/taskmanager-pro/repositories"
	"github.com/taskmanager-pro/utils"
	"gorm.io/gorm"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Valid sort columns (whitelist approach for security)
var projectSortColumns = map[string]string{
	"created_at": "projects.created_at",
	"updated_at": "projects.updated_at",
	"name":       "projects.name",
	"status":     "projects.status",
}

// ProjectService handles business logic for projects and memberships
type ProjectService struct {
	projectRepo *repositories.ProjectRepository
	userRepo    *repositories.UserRepository
}

// NewProjectService creates a new project service instance
func NewProjectService() *ProjectService {
	return &ProjectService{
		projectRepo: repositories.NewProjectRepository(),
		userRepo:    repositories.NewUserRepository(),
	}
}

// projectOrder resolves a safe ORDER BY fragment from the whitelist
func projectOrder(sortBy, sortOrder string) string {
	column, ok := projectSortColumns[sortBy]
	if !ok {
		column = projectSortColumns["created_at"]
	}
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	return column + " " + sortOrder
}

// validateDateRange parses the optional date pair and rejects an end date
// before the start date.
func validateDateRange(startRaw, endRaw *string, current models.Project) (*time.Time, *time.Time, error) {
	start := current.StartDate
	end := current.EndDate
	if startRaw != nil {
		parsed, err := utils.ParseDate(*startRaw)
		if err != nil {
			return nil, nil, utils.Invalid("Validation failed", map[string]string{"start_date": "Must be a valid date"})
		}
		start = parsed
	}
	if endRaw != nil {
		parsed, err := utils.ParseDate(*endRaw)
		if err != nil {
			return nil, nil, utils.Invalid("Validation failed", map[string]string{"end_date": "Must be a valid date"})
		}
		end = parsed
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, nil, utils.Invalid("Validation failed", map[string]string{"end_date": "Must not be before start_date"})
	}
	return start, end, nil
}

// CreateProject inserts a project owned by the caller. The owner's
// membership row is written in the same transaction so the project is
// immediately visible in membership-based listings.
func (s *ProjectService) CreateProject(req dto.CreateProjectRequest, ownerID uint) (models.Project, error) {
	project := models.Project{
		Name:    req.Name,
		OwnerID: ownerID,
		Color:   models.DefaultProjectColor,
		Icon:    models.DefaultProjectIcon,
		Status:  models.ProjectActive,
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Color != nil {
		if !hexColorPattern.MatchString(*req.Color) {
			return models.Project{}, utils.Invalid("Validation failed", map[string]string{"color": "Must be a hex color like #4361ee"})
		}
		project.Color = *req.Color
	}
	if req.Icon != nil {
		project.Icon = *req.Icon
	}
	if req.Status != nil {
		project.Status = models.ProjectStatus(*req.Status)
	}

	start, end, err := validateDateRange(req.StartDate, req.EndDate, project)
	if err != nil {
		return models.Project{}, err
	}
	project.StartDate = start
	project.EndDate = end

	return s.projectRepo.CreateWithOwner(project)
}

// ListProjects retrieves the caller's projects through their memberships,
// with pagination, filtering and sorting
func (s *ProjectService) ListProjects(filter dto.ProjectFilter) (dto.ProjectListResponse, error) {
	var response dto.ProjectListResponse

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 10
	}

	projects, totalCount, err := s.projectRepo.FindOverviewsForUser(
		filter.UserID,
		filter.Status,
		filter.Search,
		projectOrder(filter.SortBy, filter.SortOrder),
		filter.Page,
		filter.PageSize,
	)
	if err != nil {
		return response, err
	}

	totalPages := int(totalCount) / filter.PageSize
	if int(totalCount)%filter.PageSize > 0 {
		totalPages++
	}

	response = dto.ProjectListResponse{
		Projects:   projects,
		TotalCount: totalCount,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}
	return response, nil
}

// GetProjectDetail retrieves a project with its members. Non-members get a
// not-found so project existence is not leaked.
func (s *ProjectService) GetProjectDetail(projectID, userID uint) (dto.ProjectDetailResponse, error) {
	overview, err := s.projectRepo.FindOverview(projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProjectDetailResponse{}, utils.NotFound("Project not found")
		}
		return dto.ProjectDetailResponse{}, err
	}

	members, err := s.projectRepo.FindMembers(projectID)
	if err != nil {
		return dto.ProjectDetailResponse{}, err
	}

	return dto.ProjectDetailResponse{
		ProjectOverview: overview,
		Members:         members,
	}, nil
}

// HasAccess reports whether the user can see the project
func (s *ProjectService) HasAccess(projectID, userID uint) (bool, error) {
	return s.projectRepo.HasMember(projectID, userID)
}

// HasAdminRole reports whether the user's membership role is owner or admin
func (s *ProjectService) HasAdminRole(projectID, userID uint) (bool, error) {
	role, err := s.projectRepo.MemberRole(projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return role == models.ProjectRoleOwner || role == models.ProjectRoleAdmin, nil
}

// UpdateProject applies allow-listed changes after validating them. Only the
// owner or a member with admin role may update.
func (s *ProjectService) UpdateProject(projectID uint, req dto.UpdateProjectRequest, userID uint) (models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Project{}, utils.NotFound("Project not found")
		}
		return models.Project{}, err
	}

	visible, err := s.HasAccess(projectID, userID)
	if err != nil {
		return models.Project{}, err
	}
	if !visible {
		return models.Project{}, utils.NotFound("Project not found")
	}
	allowed, err := s.HasAdminRole(projectID, userID)
	if err != nil {
		return models.Project{}, err
	}
	if !allowed {
		return models.Project{}, utils.Forbidden("Only the project owner or an admin can update this project")
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		if *req.Name == "" {
			return models.Project{}, utils.Invalid("Validation failed", map[string]string{"name": "This field is required"})
		}
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Color != nil {
		if !hexColorPattern.MatchString(*req.Color) {
			return models.Project{}, utils.Invalid("Validation failed", map[string]string{"color": "Must be a hex color like #4361ee"})
		}
		fields["color"] = *req.Color
	}
	if req.Icon != nil {
		fields["icon"] = *req.Icon
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}

	start, end, err := validateDateRange(req.StartDate, req.EndDate, project)
	if err != nil {
		return models.Project{}, err
	}
	if req.StartDate != nil {
		fields["start_date"] = start
	}
	if req.EndDate != nil {
		fields["end_date"] = end
	}

	if len(fields) > 0 {
		if err := s.projectRepo.UpdateFields(projectID, fields); err != nil {
			return models.Project{}, err
		}
	}
	return s.projectRepo.FindByID(projectID)
}

// DeleteProject cascades away a project. Owner only.
func (s *ProjectService) DeleteProject(projectID, userID uint) error {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound("Project not found")
		}
		return err
	}

	visible, err := s.HasAccess(projectID, userID)
	if err != nil {
		return err
	}
	if !visible {
		return utils.NotFound("Project not found")
	}
	if project.OwnerID != userID {
		return utils.Forbidden("Only the project owner can delete this project")
	}

	return s.projectRepo.DeleteCascade(projectID)
}

// ListMembers retrieves a project's members. Any member may look.
func (s *ProjectService) ListMembers(projectID, userID uint) ([]models.MemberOverview, error) {
	visible, err := s.HasAccess(projectID, userID)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, utils.NotFound("Project not found")
	}
	return s.projectRepo.FindMembers(projectID)
}

// AddMember adds a user to a project. Caller must be owner or admin; the
// target must exist and not already be a member.
func (s *ProjectService) AddMember(projectID uint, req dto.AddMemberRequest, callerID uint) (models.ProjectMember, error) {
	visible, err := s.HasAccess(projectID, callerID)
	if err != nil {
		return models.ProjectMember{}, err
	}
	if !visible {
		return models.ProjectMember{}, utils.NotFound("Project not found")
	}
	allowed, err := s.HasAdminRole(projectID, callerID)
	if err != nil {
		return models.ProjectMember{}, err
	}
	if !allowed {
		return models.ProjectMember{}, utils.Forbidden("Only the project owner or an admin can add members")
	}

	if _, err := s.userRepo.FindByID(req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ProjectMember{}, utils.NotFound("User not found")
		}
		return models.ProjectMember{}, err
	}

	already, err := s.projectRepo.HasMember(projectID, req.UserID)
	if err != nil {
		return models.ProjectMember{}, err
	}
	if already {
		return models.ProjectMember{}, utils.Conflict("User is already a member of this project")
	}

	role := models.ProjectRole(req.Role)
	if role == "" {
		role = models.ProjectRoleMember
	}
	return s.projectRepo.AddMember(models.ProjectMember{
		ProjectID: projectID,
		UserID:    req.UserID,
		Role:      role,
	})
}

// RemoveMember deletes a membership row. Caller must be owner or admin.
// Removal of the last admin is deliberately not prevented.
func (s *ProjectService) RemoveMember(projectID, memberUserID, callerID uint) error {
	visible, err := s.HasAccess(projectID, callerID)
	if err != nil {
		return err
	}
	if !visible {
		return utils.NotFound("Project not found")
	}
	allowed, err := s.HasAdminRole(projectID, callerID)
	if err != nil {
		return err
	}
	if !allowed {
		return utils.Forbidden("Only the project owner or an admin can remove members")
	}

	removed, err := s.projectRepo.RemoveMember(projectID, memberUserID)
	if err != nil {
		return err
	}
	if !removed {
		return utils.NotFound("Membership not found")
	}
	return nil
}

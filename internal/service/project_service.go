package service

import (
	"context"
	"strconv"
	"strings"

	"asklab/internal/domain"
	"asklab/internal/dto"
	"asklab/internal/logger"

	"go.uber.org/zap"
)

// ProjectService manages research projects and researcher assignments.
type ProjectService interface {
	CreateProject(ctx context.Context, req *dto.CreateProjectRequest) (*dto.CreateProjectResponse, error)
	ListProjects(ctx context.Context) ([]dto.ProjectResponse, error)
	AssignResearcher(ctx context.Context, projectID, researcherID string) (*dto.MessageResponse, error)
}

type projectService struct {
	repo      domain.ProjectRepository
	sequences domain.SequenceRepository
}

// NewProjectService creates a new instance of projectService
func NewProjectService(repo domain.ProjectRepository, sequences domain.SequenceRepository) ProjectService {
	return &projectService{
		repo:      repo,
		sequences: sequences,
	}
}

// CreateProject implements ProjectService. Project IDs come from the same
// counter table that backs group IDs, under their own sequence name.
func (s *projectService) CreateProject(ctx context.Context, req *dto.CreateProjectRequest) (*dto.CreateProjectResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.NewInvalidInputError("project name is required")
	}

	next, err := s.sequences.Next(ctx, domain.SequenceProjects)
	if err != nil {
		return nil, domain.NewInternalError("Failed to allocate project ID", err)
	}
	projectID := strconv.FormatInt(next, 10)

	project := domain.NewProject(projectID, name)
	if err := project.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, project); err != nil {
		return nil, domain.NewInternalError("Failed to save project", err)
	}

	logger.Get().Info("Project created", zap.String("projectId", projectID), zap.String("name", name))
	return &dto.CreateProjectResponse{
		Message:   "Project created",
		ProjectID: projectID,
	}, nil
}

// ListProjects implements ProjectService
func (s *projectService) ListProjects(ctx context.Context) ([]dto.ProjectResponse, error) {
	projects, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list projects", err)
	}

	responses := make([]dto.ProjectResponse, 0, len(projects))
	for _, project := range projects {
		responses = append(responses, dto.ProjectResponse{
			ProjectID:   project.ID,
			Name:        project.Name,
			Researchers: project.Researchers,
		})
	}
	return responses, nil
}

// AssignResearcher implements ProjectService. A duplicate assignment is a
// conflict, not an error to swallow.
func (s *projectService) AssignResearcher(ctx context.Context, projectID, researcherID string) (*dto.MessageResponse, error) {
	researcherID = strings.TrimSpace(researcherID)
	if researcherID == "" {
		return nil, domain.NewInvalidInputError("researcherId is required")
	}

	project, err := s.repo.GetByID(ctx, projectID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get project", err)
	}
	if project == nil {
		return nil, domain.NewNotFoundError("Project not found with ID: " + projectID)
	}

	if err := s.repo.AssignResearcher(ctx, projectID, researcherID); err != nil {
		if err == domain.ErrDuplicateAssignment {
			return nil, domain.NewConflictError("Researcher is already assigned to this project")
		}
		return nil, domain.NewInternalError("Failed to assign researcher", err)
	}

	return &dto.MessageResponse{Message: "Researcher assigned"}, nil
}

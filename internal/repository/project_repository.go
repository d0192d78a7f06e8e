package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"asklab/internal/domain"
	"asklab/internal/repository/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// pgUniqueViolation is the Postgres error code for a unique constraint breach.
const pgUniqueViolation = "23505"

// ProjectDatabaseAdapter implements domain.ProjectRepository using sqlx.DB
type ProjectDatabaseAdapter struct {
	db *sqlx.DB
}

// NewProjectDatabaseAdapter creates a new instance of ProjectDatabaseAdapter
func NewProjectDatabaseAdapter(db *sqlx.DB) domain.ProjectRepository {
	return &ProjectDatabaseAdapter{db: db}
}

// Save implements domain.ProjectRepository
func (a *ProjectDatabaseAdapter) Save(ctx context.Context, project *domain.Project) error {
	if project == nil {
		return fmt.Errorf("cannot save nil project")
	}
	query := `INSERT INTO projects (id, name, created_at) VALUES ($1, $2, now())`
	if _, err := a.db.ExecContext(ctx, query, project.ID, project.Name); err != nil {
		return fmt.Errorf("failed to save project %s: %w", project.ID, err)
	}
	return nil
}

// GetByID implements domain.ProjectRepository. It returns (nil, nil) when the
// project does not exist.
func (a *ProjectDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	var modelProject models.Project
	err := a.db.GetContext(ctx, &modelProject, `SELECT id, name, created_at FROM projects WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get project by ID %s: %w", id, err)
	}

	researchers, err := a.researchersFor(ctx, id)
	if err != nil {
		return nil, err
	}

	project := toDomainProject(&modelProject)
	project.Researchers = researchers
	return project, nil
}

// ListAll implements domain.ProjectRepository
func (a *ProjectDatabaseAdapter) ListAll(ctx context.Context) ([]*domain.Project, error) {
	var modelProjects []models.Project
	query := `SELECT id, name, created_at FROM projects
		ORDER BY (CASE WHEN id ~ '^[0-9]+$' THEN lpad(id, 20, '0') ELSE id END)`

	if err := a.db.SelectContext(ctx, &modelProjects, query); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	var assignments []models.ProjectResearcher
	assignQuery := `SELECT project_id, researcher_id, assigned_at FROM project_researchers ORDER BY assigned_at`
	if err := a.db.SelectContext(ctx, &assignments, assignQuery); err != nil {
		return nil, fmt.Errorf("failed to list researcher assignments: %w", err)
	}

	byProject := make(map[string][]string)
	for _, assignment := range assignments {
		byProject[assignment.ProjectID] = append(byProject[assignment.ProjectID], assignment.ResearcherID)
	}

	projects := make([]*domain.Project, 0, len(modelProjects))
	for i := range modelProjects {
		project := toDomainProject(&modelProjects[i])
		project.Researchers = byProject[project.ID]
		projects = append(projects, project)
	}
	return projects, nil
}

// AssignResearcher implements domain.ProjectRepository. A duplicate assignment
// surfaces as domain.ErrDuplicateAssignment.
func (a *ProjectDatabaseAdapter) AssignResearcher(ctx context.Context, projectID, researcherID string) error {
	query := `INSERT INTO project_researchers (project_id, researcher_id, assigned_at) VALUES ($1, $2, now())`
	if _, err := a.db.ExecContext(ctx, query, projectID, researcherID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return domain.ErrDuplicateAssignment
		}
		return fmt.Errorf("failed to assign researcher %s to project %s: %w", researcherID, projectID, err)
	}
	return nil
}

func (a *ProjectDatabaseAdapter) researchersFor(ctx context.Context, projectID string) ([]string, error) {
	var researchers []string
	query := `SELECT researcher_id FROM project_researchers WHERE project_id = $1 ORDER BY assigned_at`
	if err := a.db.SelectContext(ctx, &researchers, query, projectID); err != nil {
		return nil, fmt.Errorf("failed to list researchers for project %s: %w", projectID, err)
	}
	return researchers, nil
}

// toDomainProject converts a database row into a domain project.
func toDomainProject(m *models.Project) *domain.Project {
	if m == nil {
		return nil
	}
	return &domain.Project{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
	}
}

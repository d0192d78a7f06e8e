package domain

import "time"

type projectError string

func (e projectError) Error() string {
	return string(e)
}

// ErrDuplicateAssignment is returned by the project repository when a
// researcher is already assigned to the project.
const ErrDuplicateAssignment = projectError("project: researcher already assigned")

// Project is a researcher-facing research project. IDs are allocated from the
// same sequence table that backs group IDs.
type Project struct {
	ID          string
	Name        string
	Researchers []string
	CreatedAt   time.Time
}

// NewProject creates a new Project instance
func NewProject(id, name string) *Project {
	return &Project{
		ID:        id,
		Name:      name,
		CreatedAt: time.Now(),
	}
}

// Validate validates the project
func (p *Project) Validate() error {
	if p.Name == "" {
		return NewInvalidInputError("project name is required")
	}
	return nil
}

package models

import "time"

// Project is the database row for a research project.
type Project struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

// ProjectResearcher is one researcher assignment row; the composite primary
// key enforces at most one assignment per researcher and project.
type ProjectResearcher struct {
	ProjectID    string    `db:"project_id"`
	ResearcherID string    `db:"researcher_id"`
	AssignedAt   time.Time `db:"assigned_at"`
}

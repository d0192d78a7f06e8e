package dto

// CreateProjectRequest is the body of POST /projects
type CreateProjectRequest struct {
	Name string `json:"name"`
}

// CreateProjectResponse echoes the allocated project ID
type CreateProjectResponse struct {
	Message   string `json:"message"`
	ProjectID string `json:"projectId"`
}

// AssignResearcherRequest is the body of POST /projects/{projectId}/researchers
type AssignResearcherRequest struct {
	ResearcherID string `json:"researcherId"`
}

// ProjectResponse represents one project with its assigned researchers
type ProjectResponse struct {
	ProjectID   string   `json:"projectId"`
	Name        string   `json:"name"`
	Researchers []string `json:"researchers"`
}

package handler

import (
	"asklab/internal/dto"
	"asklab/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ProjectHandler handles research-project HTTP requests
type ProjectHandler struct {
	service service.ProjectService
}

// NewProjectHandler creates a new ProjectHandler instance
func NewProjectHandler(service service.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// CreateProject godoc
// @Summary Create a research project
// @Tags projects
// @Accept json
// @Produce json
// @Param request body dto.CreateProjectRequest true "Project name"
// @Success 200 {object} dto.CreateProjectResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	var req dto.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "INVALID_REQUEST",
		})
	}

	response, err := h.service.CreateProject(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// ListProjects godoc
// @Summary List research projects
// @Tags projects
// @Produce json
// @Success 200 {array} dto.ProjectResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /projects [get]
func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	projects, err := h.service.ListProjects(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(projects)
}

// AssignResearcher godoc
// @Summary Assign a researcher to a project
// @Tags projects
// @Accept json
// @Produce json
// @Param projectId path string true "Project ID"
// @Param request body dto.AssignResearcherRequest true "Researcher ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /projects/{projectId}/researchers [post]
func (h *ProjectHandler) AssignResearcher(c *fiber.Ctx) error {
	var req dto.AssignResearcherRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "INVALID_REQUEST",
		})
	}

	response, err := h.service.AssignResearcher(c.Context(), c.Params("projectId"), req.ResearcherID)
	if err != nil {
		return err
	}
	return c.JSON(response)
}

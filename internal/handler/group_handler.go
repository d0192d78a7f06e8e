package handler

import (
	"asklab/internal/dto"
	"asklab/internal/service"
	"asklab/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GroupHandler handles researcher group-configuration HTTP requests
type GroupHandler struct {
	service   service.GroupService
	validator *validation.Validator
}

// NewGroupHandler creates a new GroupHandler instance
func NewGroupHandler(service service.GroupService) *GroupHandler {
	return &GroupHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// groupID prefers the value validated by middleware and falls back to the raw
// path parameter.
func groupID(c *fiber.Ctx) string {
	if validated, ok := c.Locals("validated_group_id").(string); ok && validated != "" {
		return validated
	}
	return c.Params("groupId")
}

// ListGroups godoc
// @Summary List all question groups
// @Description Returns every persisted group row with questions deserialized
// @Tags groups
// @Produce json
// @Success 200 {array} dto.GroupResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /research-groups/all [get]
func (h *GroupHandler) ListGroups(c *fiber.Ctx) error {
	groups, err := h.service.ListGroups(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(groups)
}

// GetGroup godoc
// @Summary Get one question group
// @Tags groups
// @Produce json
// @Param groupId path string true "Group ID"
// @Success 200 {object} dto.GroupResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /research-groups/{groupId}/config [get]
func (h *GroupHandler) GetGroup(c *fiber.Ctx) error {
	group, err := h.service.GetGroup(c.Context(), groupID(c))
	if err != nil {
		return err
	}
	return c.JSON(group)
}

// SaveGroup godoc
// @Summary Save a question group
// @Description Full replace of the group configuration; allocates an ID when the path carries "undefined"
// @Tags groups
// @Accept json
// @Produce json
// @Param groupId path string true "Group ID or the literal undefined"
// @Param request body dto.SaveGroupRequest true "Group configuration"
// @Success 200 {object} dto.SaveGroupResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /research-groups/{groupId}/config [put]
func (h *GroupHandler) SaveGroup(c *fiber.Ctx) error {
	var req dto.SaveGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "INVALID_REQUEST",
		})
	}

	response, err := h.service.SaveGroup(c.Context(), groupID(c), &req)
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// DeleteQuestion godoc
// @Summary Delete a question from a group
// @Description Removes questions matching the text case-insensitively; deletes the group when its last question goes
// @Tags groups
// @Accept json
// @Produce json
// @Param groupId path string true "Group ID"
// @Param request body dto.DeleteQuestionRequest true "Question text"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /research-groups/{groupId}/config [delete]
func (h *GroupHandler) DeleteQuestion(c *fiber.Ctx) error {
	var req dto.DeleteQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "INVALID_REQUEST",
		})
	}

	if errs := h.validator.ValidateDeleteQuestionRequest(req.QuestionText); len(errs) > 0 {
		return errs
	}

	response, err := h.service.DeleteQuestion(c.Context(), groupID(c), req.QuestionText)
	if err != nil {
		return err
	}
	return c.JSON(response)
}

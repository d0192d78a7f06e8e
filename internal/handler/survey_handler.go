package handler

import (
	"asklab/internal/domain"
	"asklab/internal/dto"
	"asklab/internal/service"
	"asklab/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// SurveyHandler handles the participant-facing survey flow and the
// administrator status/counter endpoints.
type SurveyHandler struct {
	catalog   service.CatalogService
	answers   service.AnswerService
	ratings   service.RatingService
	survey    service.SurveyService
	validator *validation.Validator
}

// NewSurveyHandler creates a new SurveyHandler instance
func NewSurveyHandler(
	catalog service.CatalogService,
	answers service.AnswerService,
	ratings service.RatingService,
	survey service.SurveyService,
) *SurveyHandler {
	return &SurveyHandler{
		catalog:   catalog,
		answers:   answers,
		ratings:   ratings,
		survey:    survey,
		validator: validation.NewValidator(),
	}
}

// ListQuestions godoc
// @Summary List the flattened question catalog
// @Description Rebuilds the catalog from all groups and returns the minimal participant projection
// @Tags survey
// @Produce json
// @Success 200 {array} dto.FixedQuestionResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /fixed-questions [get]
func (h *SurveyHandler) ListQuestions(c *fiber.Ctx) error {
	questions, err := h.catalog.ListQuestions(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(questions)
}

// Ask godoc
// @Summary Ask a catalog question
// @Description Drives the two-phase simulated answer flow; phase defaults to pre
// @Tags survey
// @Accept json
// @Produce json
// @Param request body dto.AskRequest true "Question ID and phase"
// @Success 200 {object} dto.FinalAnswerResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /ask [post]
func (h *SurveyHandler) Ask(c *fiber.Ctx) error {
	var req dto.AskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "INVALID_REQUEST",
		})
	}

	questionID, errs := h.validator.ValidateQuestionID(req.QuestionID)
	if len(errs) > 0 {
		return errs
	}

	switch req.Phase {
	case service.PhasePre, "":
		response, err := h.answers.PreAnswer(c.Context(), questionID)
		if err != nil {
			return err
		}
		return c.JSON(response)
	case service.PhaseFinal:
		response, err := h.answers.FinalAnswer(c.Context(), questionID)
		if err != nil {
			return err
		}
		return c.JSON(response)
	default:
		return domain.NewInvalidPhaseError(req.Phase)
	}
}

// Rate godoc
// @Summary Rate a final answer
// @Description Atomically increments the counter for the submitted score (1-5)
// @Tags survey
// @Accept json
// @Produce json
// @Param request body dto.RateRequest true "Question ID and rating"
// @Success 200 {object} dto.RateResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /rate [post]
func (h *SurveyHandler) Rate(c *fiber.Ctx) error {
	var req dto.RateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "INVALID_REQUEST",
		})
	}

	response, err := h.ratings.Submit(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// ListRatings godoc
// @Summary List aggregated ratings
// @Description Returns every rating row with absent counters defaulted to 0, for export
// @Tags survey
// @Produce json
// @Success 200 {array} dto.RatingResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /ratings [get]
func (h *SurveyHandler) ListRatings(c *fiber.Ctx) error {
	ratings, err := h.ratings.Aggregate(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(ratings)
}

// GetStatus godoc
// @Summary Get survey availability
// @Tags survey
// @Produce json
// @Success 200 {object} dto.SurveyStatusResponse
// @Router /survey-status [get]
func (h *SurveyHandler) GetStatus(c *fiber.Ctx) error {
	status, err := h.survey.Status(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(status)
}

// SetStatus godoc
// @Summary Set survey availability
// @Tags survey
// @Accept json
// @Produce json
// @Param request body dto.SurveyStatusRequest true "Open flag"
// @Success 200 {object} dto.SurveyStatusResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /survey-status [post]
func (h *SurveyHandler) SetStatus(c *fiber.Ctx) error {
	var req dto.SurveyStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "INVALID_REQUEST",
		})
	}

	status, err := h.survey.SetStatus(c.Context(), req.IsOpen)
	if err != nil {
		return err
	}
	return c.JSON(status)
}

// IncrementCounter godoc
// @Summary Increment the completed-session counter
// @Tags survey
// @Produce json
// @Success 200 {object} dto.CounterResponse
// @Router /incrementSurveyCounter [post]
func (h *SurveyHandler) IncrementCounter(c *fiber.Ctx) error {
	count, err := h.survey.IncrementCompletions(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(count)
}

// GetCounter godoc
// @Summary Read the completed-session counter
// @Tags survey
// @Produce json
// @Success 200 {object} dto.CounterResponse
// @Router /getSurveyCounter [get]
func (h *SurveyHandler) GetCounter(c *fiber.Ctx) error {
	count, err := h.survey.Completions(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(count)
}

package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"asklab/internal/domain"
	"asklab/internal/dto"
	"asklab/internal/handler"
	"asklab/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// --- Manual Mocks ---

// MockCatalogService
type MockCatalogService struct {
	SnapshotFunc      func(ctx context.Context) (*domain.CatalogSnapshot, error)
	RebuildFunc       func(ctx context.Context) (*domain.CatalogSnapshot, error)
	ListQuestionsFunc func(ctx context.Context) ([]dto.FixedQuestionResponse, error)
}

func (m *MockCatalogService) Snapshot(ctx context.Context) (*domain.CatalogSnapshot, error) {
	if m.SnapshotFunc != nil {
		return m.SnapshotFunc(ctx)
	}
	panic("MockCatalogService.SnapshotFunc not implemented")
}
func (m *MockCatalogService) Rebuild(ctx context.Context) (*domain.CatalogSnapshot, error) {
	if m.RebuildFunc != nil {
		return m.RebuildFunc(ctx)
	}
	panic("MockCatalogService.RebuildFunc not implemented")
}
func (m *MockCatalogService) ListQuestions(ctx context.Context) ([]dto.FixedQuestionResponse, error) {
	if m.ListQuestionsFunc != nil {
		return m.ListQuestionsFunc(ctx)
	}
	panic("MockCatalogService.ListQuestionsFunc not implemented")
}

// MockAnswerService
type MockAnswerService struct {
	PreAnswerFunc   func(ctx context.Context, questionID int) (*dto.PreAnswerResponse, error)
	FinalAnswerFunc func(ctx context.Context, questionID int) (*dto.FinalAnswerResponse, error)
}

func (m *MockAnswerService) PreAnswer(ctx context.Context, questionID int) (*dto.PreAnswerResponse, error) {
	if m.PreAnswerFunc != nil {
		return m.PreAnswerFunc(ctx, questionID)
	}
	panic("MockAnswerService.PreAnswerFunc not implemented")
}
func (m *MockAnswerService) FinalAnswer(ctx context.Context, questionID int) (*dto.FinalAnswerResponse, error) {
	if m.FinalAnswerFunc != nil {
		return m.FinalAnswerFunc(ctx, questionID)
	}
	panic("MockAnswerService.FinalAnswerFunc not implemented")
}

// MockRatingService
type MockRatingService struct {
	SubmitFunc    func(ctx context.Context, req *dto.RateRequest) (*dto.RateResponse, error)
	AggregateFunc func(ctx context.Context) ([]dto.RatingResponse, error)
}

func (m *MockRatingService) Submit(ctx context.Context, req *dto.RateRequest) (*dto.RateResponse, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, req)
	}
	panic("MockRatingService.SubmitFunc not implemented")
}
func (m *MockRatingService) Aggregate(ctx context.Context) ([]dto.RatingResponse, error) {
	if m.AggregateFunc != nil {
		return m.AggregateFunc(ctx)
	}
	panic("MockRatingService.AggregateFunc not implemented")
}

// MockSurveyService
type MockSurveyService struct {
	StatusFunc               func(ctx context.Context) (*dto.SurveyStatusResponse, error)
	SetStatusFunc            func(ctx context.Context, isOpen bool) (*dto.SurveyStatusResponse, error)
	IncrementCompletionsFunc func(ctx context.Context) (*dto.CounterResponse, error)
	CompletionsFunc          func(ctx context.Context) (*dto.CounterResponse, error)
}

func (m *MockSurveyService) Status(ctx context.Context) (*dto.SurveyStatusResponse, error) {
	if m.StatusFunc != nil {
		return m.StatusFunc(ctx)
	}
	panic("MockSurveyService.StatusFunc not implemented")
}
func (m *MockSurveyService) SetStatus(ctx context.Context, isOpen bool) (*dto.SurveyStatusResponse, error) {
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(ctx, isOpen)
	}
	panic("MockSurveyService.SetStatusFunc not implemented")
}
func (m *MockSurveyService) IncrementCompletions(ctx context.Context) (*dto.CounterResponse, error) {
	if m.IncrementCompletionsFunc != nil {
		return m.IncrementCompletionsFunc(ctx)
	}
	panic("MockSurveyService.IncrementCompletionsFunc not implemented")
}
func (m *MockSurveyService) Completions(ctx context.Context) (*dto.CounterResponse, error) {
	if m.CompletionsFunc != nil {
		return m.CompletionsFunc(ctx)
	}
	panic("MockSurveyService.CompletionsFunc not implemented")
}

// --- Test helpers ---

func setupSurveyApp(catalog *MockCatalogService, answers *MockAnswerService, ratings *MockRatingService, survey *MockSurveyService) *fiber.App {
	surveyHandler := handler.NewSurveyHandler(catalog, answers, ratings, survey)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
	})
	app.Get("/fixed-questions", surveyHandler.ListQuestions)
	app.Post("/ask", surveyHandler.Ask)
	app.Post("/rate", surveyHandler.Rate)
	app.Get("/ratings", surveyHandler.ListRatings)
	app.Get("/survey-status", surveyHandler.GetStatus)
	app.Post("/survey-status", surveyHandler.SetStatus)
	app.Post("/incrementSurveyCounter", surveyHandler.IncrementCounter)
	app.Get("/getSurveyCounter", surveyHandler.GetCounter)
	return app
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.NoError(t, json.Unmarshal(body, v))
}

// --- Tests ---

func TestSurveyHandler_ListQuestions(t *testing.T) {
	catalog := &MockCatalogService{
		ListQuestionsFunc: func(ctx context.Context) ([]dto.FixedQuestionResponse, error) {
			return []dto.FixedQuestionResponse{
				{ID: 1, Question: "Q1"},
				{ID: 2, Question: "Q2"},
			}, nil
		},
	}
	app := setupSurveyApp(catalog, &MockAnswerService{}, &MockRatingService{}, &MockSurveyService{})

	resp, err := app.Test(httptest.NewRequest("GET", "/fixed-questions", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var questions []dto.FixedQuestionResponse
	decodeBody(t, resp, &questions)
	assert.Len(t, questions, 2)
	assert.Equal(t, 1, questions[0].ID)
	assert.Equal(t, "Q1", questions[0].Question)
}

func TestSurveyHandler_Ask_PreAnswerDefaultPhase(t *testing.T) {
	answers := &MockAnswerService{
		PreAnswerFunc: func(ctx context.Context, questionID int) (*dto.PreAnswerResponse, error) {
			assert.Equal(t, 2, questionID)
			return &dto.PreAnswerResponse{PreAnswerMessage: "Let me think..."}, nil
		},
	}
	app := setupSurveyApp(&MockCatalogService{}, answers, &MockRatingService{}, &MockSurveyService{})

	// An absent phase behaves like "pre". The questionId arrives as a number.
	resp, err := app.Test(jsonRequest("POST", "/ask", map[string]interface{}{"questionId": 2}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.PreAnswerResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "Let me think...", body.PreAnswerMessage)
}

func TestSurveyHandler_Ask_FinalPhase(t *testing.T) {
	answers := &MockAnswerService{
		FinalAnswerFunc: func(ctx context.Context, questionID int) (*dto.FinalAnswerResponse, error) {
			return &dto.FinalAnswerResponse{
				FinalAnswer: "A1",
				FontFace:    "Verdana",
				ColorScheme: "#ff0000",
			}, nil
		},
	}
	app := setupSurveyApp(&MockCatalogService{}, answers, &MockRatingService{}, &MockSurveyService{})

	resp, err := app.Test(jsonRequest("POST", "/ask", dto.AskRequest{QuestionID: "1", Phase: "final"}), -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.FinalAnswerResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "A1", body.FinalAnswer)
	assert.Equal(t, "Verdana", body.FontFace)
	assert.Equal(t, "#ff0000", body.ColorScheme)
}

func TestSurveyHandler_Ask_UnknownPhase(t *testing.T) {
	app := setupSurveyApp(&MockCatalogService{}, &MockAnswerService{}, &MockRatingService{}, &MockSurveyService{})

	resp, err := app.Test(jsonRequest("POST", "/ask", dto.AskRequest{QuestionID: "1", Phase: "later"}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body middleware.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, string(domain.CodeInvalidPhase), body.Code)
}

func TestSurveyHandler_Ask_InvalidQuestionID(t *testing.T) {
	app := setupSurveyApp(&MockCatalogService{}, &MockAnswerService{}, &MockRatingService{}, &MockSurveyService{})

	for _, questionID := range []interface{}{"", "abc", 0, -3} {
		resp, err := app.Test(jsonRequest("POST", "/ask", map[string]interface{}{"questionId": questionID}))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var body middleware.ValidationErrorResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, string(domain.CodeValidation), body.Code)
		assert.NotEmpty(t, body.Errors)
	}
}

func TestSurveyHandler_Ask_QuestionNotFound(t *testing.T) {
	answers := &MockAnswerService{
		PreAnswerFunc: func(ctx context.Context, questionID int) (*dto.PreAnswerResponse, error) {
			return nil, domain.NewQuestionNotFoundError(questionID)
		},
	}
	app := setupSurveyApp(&MockCatalogService{}, answers, &MockRatingService{}, &MockSurveyService{})

	resp, err := app.Test(jsonRequest("POST", "/ask", dto.AskRequest{QuestionID: "99", Phase: "pre"}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var body middleware.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, string(domain.CodeQuestionNotFound), body.Code)
}

func TestSurveyHandler_Rate_Success(t *testing.T) {
	ratings := &MockRatingService{
		SubmitFunc: func(ctx context.Context, req *dto.RateRequest) (*dto.RateResponse, error) {
			assert.Equal(t, "2", req.QuestionID.String())
			assert.Equal(t, 4, req.Rating)
			return &dto.RateResponse{
				Message: "Rating recorded",
				Updated: dto.RatingCounts{QuestionID: "2", Rating4: 1},
			}, nil
		},
	}
	app := setupSurveyApp(&MockCatalogService{}, &MockAnswerService{}, ratings, &MockSurveyService{})

	resp, err := app.Test(jsonRequest("POST", "/rate", map[string]interface{}{"questionId": 2, "rating": 4}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.RateResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "Rating recorded", body.Message)
	assert.Equal(t, 1, body.Updated.Rating4)
}

func TestSurveyHandler_Rate_InvalidRating(t *testing.T) {
	ratings := &MockRatingService{
		SubmitFunc: func(ctx context.Context, req *dto.RateRequest) (*dto.RateResponse, error) {
			return nil, domain.NewInvalidRatingError(req.Rating)
		},
	}
	app := setupSurveyApp(&MockCatalogService{}, &MockAnswerService{}, ratings, &MockSurveyService{})

	resp, err := app.Test(jsonRequest("POST", "/rate", dto.RateRequest{QuestionID: "1", Rating: 6}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body middleware.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, string(domain.CodeInvalidRating), body.Code)
}

func TestSurveyHandler_ListRatings(t *testing.T) {
	ratings := &MockRatingService{
		AggregateFunc: func(ctx context.Context) ([]dto.RatingResponse, error) {
			return []dto.RatingResponse{
				{QuestionID: "1", Question: "Q1", Rating5: 3},
			}, nil
		},
	}
	app := setupSurveyApp(&MockCatalogService{}, &MockAnswerService{}, ratings, &MockSurveyService{})

	resp, err := app.Test(httptest.NewRequest("GET", "/ratings", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body []dto.RatingResponse
	decodeBody(t, resp, &body)
	assert.Len(t, body, 1)
	assert.Equal(t, 3, body[0].Rating5)
}

func TestSurveyHandler_SurveyStatus(t *testing.T) {
	survey := &MockSurveyService{
		StatusFunc: func(ctx context.Context) (*dto.SurveyStatusResponse, error) {
			return &dto.SurveyStatusResponse{IsOpen: false}, nil
		},
		SetStatusFunc: func(ctx context.Context, isOpen bool) (*dto.SurveyStatusResponse, error) {
			return &dto.SurveyStatusResponse{IsOpen: isOpen}, nil
		},
	}
	app := setupSurveyApp(&MockCatalogService{}, &MockAnswerService{}, &MockRatingService{}, survey)

	resp, err := app.Test(httptest.NewRequest("GET", "/survey-status", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.SurveyStatusResponse
	decodeBody(t, resp, &body)
	assert.False(t, body.IsOpen)

	resp, err = app.Test(jsonRequest("POST", "/survey-status", dto.SurveyStatusRequest{IsOpen: true}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	decodeBody(t, resp, &body)
	assert.True(t, body.IsOpen)
}

func TestSurveyHandler_Counter(t *testing.T) {
	survey := &MockSurveyService{
		IncrementCompletionsFunc: func(ctx context.Context) (*dto.CounterResponse, error) {
			return &dto.CounterResponse{Count: 5}, nil
		},
		CompletionsFunc: func(ctx context.Context) (*dto.CounterResponse, error) {
			return &dto.CounterResponse{Count: 5}, nil
		},
	}
	app := setupSurveyApp(&MockCatalogService{}, &MockAnswerService{}, &MockRatingService{}, survey)

	resp, err := app.Test(httptest.NewRequest("POST", "/incrementSurveyCounter", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.CounterResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, int64(5), body.Count)

	resp, err = app.Test(httptest.NewRequest("GET", "/getSurveyCounter", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	decodeBody(t, resp, &body)
	assert.Equal(t, int64(5), body.Count)
}

func TestSurveyHandler_ListQuestions_InternalError(t *testing.T) {
	catalog := &MockCatalogService{
		ListQuestionsFunc: func(ctx context.Context) ([]dto.FixedQuestionResponse, error) {
			return nil, domain.NewInternalError("Failed to scan groups for catalog rebuild", errors.New("db down"))
		},
	}
	app := setupSurveyApp(catalog, &MockAnswerService{}, &MockRatingService{}, &MockSurveyService{})

	resp, err := app.Test(httptest.NewRequest("GET", "/fixed-questions", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var body middleware.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, string(domain.CodeInternal), body.Code)
}

package service

import (
	"context"
	"time"

	"asklab/internal/domain"
	"asklab/internal/dto"
	"asklab/internal/logger"

	"go.uber.org/zap"
)

// Answer phases. The pre phase returns placeholder text instantly; the final
// phase simulates processing latency before revealing the configured answer.
const (
	PhasePre   = "pre"
	PhaseFinal = "final"
)

// AnswerService drives the two-phase simulated answer flow.
type AnswerService interface {
	// PreAnswer resolves the question and returns its placeholder text
	// immediately.
	PreAnswer(ctx context.Context, questionID int) (*dto.PreAnswerResponse, error)

	// FinalAnswer waits the question's configured delay, then returns the
	// answer with the group-level styling.
	FinalAnswer(ctx context.Context, questionID int) (*dto.FinalAnswerResponse, error)
}

type answerService struct {
	catalog CatalogService
}

// NewAnswerService creates a new instance of answerService
func NewAnswerService(catalog CatalogService) AnswerService {
	return &answerService{catalog: catalog}
}

// PreAnswer implements AnswerService
func (s *answerService) PreAnswer(ctx context.Context, questionID int) (*dto.PreAnswerResponse, error) {
	question, err := s.resolve(ctx, questionID)
	if err != nil {
		return nil, err
	}

	return &dto.PreAnswerResponse{PreAnswerMessage: question.PreAnswer}, nil
}

// FinalAnswer implements AnswerService. A delay of "0" skips the wait
// entirely; cancellation of the request context aborts an in-flight wait.
func (s *answerService) FinalAnswer(ctx context.Context, questionID int) (*dto.FinalAnswerResponse, error) {
	question, err := s.resolve(ctx, questionID)
	if err != nil {
		return nil, err
	}

	delay := domain.ParseDelay(question.Delay)
	if delay > 0 {
		logger.Get().Debug("Simulating answer latency",
			zap.Int("questionId", questionID),
			zap.Duration("delay", delay),
		)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, domain.NewInternalError("Answer delay interrupted", ctx.Err())
		}
	}

	return &dto.FinalAnswerResponse{
		FinalAnswer: question.Answer,
		ColorScheme: question.ColorScheme,
		FontFace:    question.FontFace,
	}, nil
}

// resolve looks the question up in the advisory snapshot, building one if the
// process has none yet. A failed resolution is terminal for the call.
func (s *answerService) resolve(ctx context.Context, questionID int) (domain.CatalogQuestion, error) {
	snapshot, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return domain.CatalogQuestion{}, err
	}

	question, ok := snapshot.Lookup(questionID)
	if !ok {
		return domain.CatalogQuestion{}, domain.NewQuestionNotFoundError(questionID)
	}
	return question, nil
}

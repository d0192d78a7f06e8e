package service

import (
	"context"
	"encoding/json"
	"time"

	"asklab/internal/domain"
	"asklab/internal/dto"
	"asklab/internal/logger"

	"go.uber.org/zap"
)

// SurveyService fronts the open/closed gate and the completed-session counter.
type SurveyService interface {
	Status(ctx context.Context) (*dto.SurveyStatusResponse, error)
	SetStatus(ctx context.Context, isOpen bool) (*dto.SurveyStatusResponse, error)
	IncrementCompletions(ctx context.Context) (*dto.CounterResponse, error)
	Completions(ctx context.Context) (*dto.CounterResponse, error)
}

// completionEvent is the payload published on the notification channel after
// each completed session.
type completionEvent struct {
	Event       string    `json:"event"`
	Count       int64     `json:"count"`
	CompletedAt time.Time `json:"completedAt"`
}

type surveyService struct {
	repo          domain.SurveyRepository
	notifier      domain.Cache // nil or an empty channel disables notifications
	notifyChannel string
}

// NewSurveyService creates a new instance of surveyService
func NewSurveyService(repo domain.SurveyRepository, notifier domain.Cache, notifyChannel string) SurveyService {
	return &surveyService{
		repo:          repo,
		notifier:      notifier,
		notifyChannel: notifyChannel,
	}
}

// Status implements SurveyService
func (s *surveyService) Status(ctx context.Context) (*dto.SurveyStatusResponse, error) {
	isOpen, err := s.repo.GetStatus(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get survey status", err)
	}
	return &dto.SurveyStatusResponse{IsOpen: isOpen}, nil
}

// SetStatus implements SurveyService. No authorization happens at this layer;
// the fronting identity provider owns that.
func (s *surveyService) SetStatus(ctx context.Context, isOpen bool) (*dto.SurveyStatusResponse, error) {
	if err := s.repo.SetStatus(ctx, isOpen); err != nil {
		return nil, domain.NewInternalError("Failed to set survey status", err)
	}
	logger.Get().Info("Survey status updated", zap.Bool("isOpen", isOpen))
	return &dto.SurveyStatusResponse{IsOpen: isOpen}, nil
}

// IncrementCompletions implements SurveyService
func (s *surveyService) IncrementCompletions(ctx context.Context) (*dto.CounterResponse, error) {
	count, err := s.repo.IncrementCompletions(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to increment survey counter", err)
	}

	s.publishCompletion(ctx, count)
	return &dto.CounterResponse{Count: count}, nil
}

// Completions implements SurveyService
func (s *surveyService) Completions(ctx context.Context) (*dto.CounterResponse, error) {
	count, err := s.repo.Completions(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get survey counter", err)
	}
	return &dto.CounterResponse{Count: count}, nil
}

// publishCompletion notifies the configured channel about a completed session.
// Skipped silently when unconfigured; publish failures are logged, never
// surfaced to the participant.
func (s *surveyService) publishCompletion(ctx context.Context, count int64) {
	if s.notifier == nil || s.notifyChannel == "" {
		return
	}

	payload, err := json.Marshal(completionEvent{
		Event:       "survey_completed",
		Count:       count,
		CompletedAt: time.Now().UTC(),
	})
	if err != nil {
		logger.Get().Warn("SurveyService: failed to serialize completion event", zap.Error(err))
		return
	}

	if err := s.notifier.Publish(ctx, s.notifyChannel, string(payload)); err != nil {
		logger.Get().Warn("SurveyService: completion notification failed",
			zap.String("channel", s.notifyChannel),
			zap.Error(err),
		)
	}
}

package service

import (
	"context"
	"strings"

	"asklab/internal/domain"
	"asklab/internal/dto"
	"asklab/internal/logger"

	"go.uber.org/zap"
)

// RatingService records participant ratings and exposes the aggregate view
// used for export.
type RatingService interface {
	Submit(ctx context.Context, req *dto.RateRequest) (*dto.RateResponse, error)
	Aggregate(ctx context.Context) ([]dto.RatingResponse, error)
}

type ratingService struct {
	repo    domain.RatingRepository
	catalog CatalogService
}

// NewRatingService creates a new instance of ratingService
func NewRatingService(repo domain.RatingRepository, catalog CatalogService) RatingService {
	return &ratingService{
		repo:    repo,
		catalog: catalog,
	}
}

// Submit implements RatingService. The counter increment is atomic; the
// question-text backfill is a conditional set-if-not-exists, a no-op when the
// snapshot no longer resolves the ID.
func (s *ratingService) Submit(ctx context.Context, req *dto.RateRequest) (*dto.RateResponse, error) {
	questionID := strings.TrimSpace(req.QuestionID.String())
	if questionID == "" {
		return nil, domain.NewInvalidInputError("questionId is required")
	}
	if err := domain.ValidateRating(req.Rating); err != nil {
		return nil, err
	}

	updated, err := s.repo.Increment(ctx, questionID, req.Rating)
	if err != nil {
		if _, ok := err.(*domain.DomainError); ok {
			return nil, err
		}
		return nil, domain.NewInternalError("Failed to record rating", err)
	}

	if updated.Question == "" {
		updated.Question = s.backfillQuestionText(ctx, req.QuestionID, questionID)
	}

	return &dto.RateResponse{
		Message: "Rating recorded",
		Updated: dto.RatingCounts{
			QuestionID: updated.QuestionID,
			Question:   updated.Question,
			Rating1:    updated.Rating1,
			Rating2:    updated.Rating2,
			Rating3:    updated.Rating3,
			Rating4:    updated.Rating4,
			Rating5:    updated.Rating5,
		},
	}, nil
}

// Aggregate implements RatingService
func (s *ratingService) Aggregate(ctx context.Context) ([]dto.RatingResponse, error) {
	ratings, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to aggregate ratings", err)
	}

	responses := make([]dto.RatingResponse, 0, len(ratings))
	for _, rating := range ratings {
		responses = append(responses, dto.RatingResponse{
			QuestionID: rating.QuestionID,
			Question:   rating.Question,
			Rating1:    rating.Rating1,
			Rating2:    rating.Rating2,
			Rating3:    rating.Rating3,
			Rating4:    rating.Rating4,
			Rating5:    rating.Rating5,
		})
	}
	return responses, nil
}

// backfillQuestionText resolves the question text from the current snapshot
// and records it if the row has none yet. Failures only cost the text column,
// never the rating, so they are logged and swallowed.
func (s *ratingService) backfillQuestionText(ctx context.Context, rawID dto.FlexString, questionID string) string {
	assignedID, ok := rawID.Int()
	if !ok {
		return ""
	}

	snapshot, err := s.catalog.Snapshot(ctx)
	if err != nil {
		logger.Get().Warn("RatingService: snapshot unavailable for question backfill",
			zap.String("questionId", questionID),
			zap.Error(err),
		)
		return ""
	}

	question, found := snapshot.Lookup(assignedID)
	if !found {
		return ""
	}

	if err := s.repo.BackfillQuestion(ctx, questionID, question.Question); err != nil {
		logger.Get().Warn("RatingService: failed to backfill question text",
			zap.String("questionId", questionID),
			zap.Error(err),
		)
	}
	return question.Question
}

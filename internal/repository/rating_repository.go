package repository

import (
	"context"
	"fmt"

	"asklab/internal/domain"
	"asklab/internal/repository/models"
	"asklab/internal/util"

	"github.com/jmoiron/sqlx"
)

// RatingDatabaseAdapter implements domain.RatingRepository using sqlx.DB
type RatingDatabaseAdapter struct {
	db *sqlx.DB
}

// NewRatingDatabaseAdapter creates a new instance of RatingDatabaseAdapter
func NewRatingDatabaseAdapter(db *sqlx.DB) domain.RatingRepository {
	return &RatingDatabaseAdapter{db: db}
}

// Increment implements domain.RatingRepository. The counter column is chosen
// from the validated rating value; the whole operation is a single atomic
// upsert.
func (a *RatingDatabaseAdapter) Increment(ctx context.Context, questionID string, rating int) (*domain.Rating, error) {
	if err := domain.ValidateRating(rating); err != nil {
		return nil, err
	}

	column := fmt.Sprintf("rating%d", rating)
	query := fmt.Sprintf(`INSERT INTO ratings (id, question_id, %[1]s, created_at, updated_at)
		VALUES ($1, $2, 1, now(), now())
		ON CONFLICT (question_id) DO UPDATE SET %[1]s = ratings.%[1]s + 1, updated_at = now()
		RETURNING id, question_id, question, rating1, rating2, rating3, rating4, rating5, created_at, updated_at`,
		column)

	var modelRating models.Rating
	if err := a.db.GetContext(ctx, &modelRating, query, util.NewULID(), questionID); err != nil {
		return nil, fmt.Errorf("failed to increment rating for question %s: %w", questionID, err)
	}
	return toDomainRating(&modelRating), nil
}

// BackfillQuestion implements domain.RatingRepository. It is a conditional
// set-if-not-exists: a no-op when the text is already recorded (first rating
// wins) or the row is absent.
func (a *RatingDatabaseAdapter) BackfillQuestion(ctx context.Context, questionID, question string) error {
	query := `UPDATE ratings SET question = $2, updated_at = now()
		WHERE question_id = $1 AND question IS NULL`

	if _, err := a.db.ExecContext(ctx, query, questionID, question); err != nil {
		return fmt.Errorf("failed to backfill question text for %s: %w", questionID, err)
	}
	return nil
}

// ListAll implements domain.RatingRepository
func (a *RatingDatabaseAdapter) ListAll(ctx context.Context) ([]*domain.Rating, error) {
	var modelRatings []models.Rating
	query := `SELECT id, question_id, question, rating1, rating2, rating3, rating4, rating5, created_at, updated_at
		FROM ratings
		ORDER BY question_id`

	if err := a.db.SelectContext(ctx, &modelRatings, query); err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}

	ratings := make([]*domain.Rating, 0, len(modelRatings))
	for i := range modelRatings {
		ratings = append(ratings, toDomainRating(&modelRatings[i]))
	}
	return ratings, nil
}

// toDomainRating converts a database row into a domain rating.
func toDomainRating(m *models.Rating) *domain.Rating {
	if m == nil {
		return nil
	}
	return &domain.Rating{
		QuestionID: m.QuestionID,
		Question:   m.Question.String,
		Rating1:    m.Rating1,
		Rating2:    m.Rating2,
		Rating3:    m.Rating3,
		Rating4:    m.Rating4,
		Rating5:    m.Rating5,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"asklab/internal/domain"

	"github.com/jmoiron/sqlx"
)

// SurveyDatabaseAdapter implements domain.SurveyRepository over the two
// singleton rows: survey status and the completed-session counter.
type SurveyDatabaseAdapter struct {
	db *sqlx.DB
}

// NewSurveyDatabaseAdapter creates a new instance of SurveyDatabaseAdapter
func NewSurveyDatabaseAdapter(db *sqlx.DB) domain.SurveyRepository {
	return &SurveyDatabaseAdapter{db: db}
}

// GetStatus implements domain.SurveyRepository. An absent row reads as closed.
func (a *SurveyDatabaseAdapter) GetStatus(ctx context.Context) (bool, error) {
	var isOpen bool
	err := a.db.GetContext(ctx, &isOpen, `SELECT is_open FROM survey_status WHERE id = 1`)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to get survey status: %w", err)
	}
	return isOpen, nil
}

// SetStatus implements domain.SurveyRepository
func (a *SurveyDatabaseAdapter) SetStatus(ctx context.Context, isOpen bool) error {
	query := `INSERT INTO survey_status (id, is_open) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET is_open = EXCLUDED.is_open`

	if _, err := a.db.ExecContext(ctx, query, isOpen); err != nil {
		return fmt.Errorf("failed to set survey status: %w", err)
	}
	return nil
}

// IncrementCompletions implements domain.SurveyRepository
func (a *SurveyDatabaseAdapter) IncrementCompletions(ctx context.Context) (int64, error) {
	var count int64
	query := `INSERT INTO survey_counter (id, count) VALUES (1, 1)
		ON CONFLICT (id) DO UPDATE SET count = survey_counter.count + 1
		RETURNING count`

	if err := a.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("failed to increment survey counter: %w", err)
	}
	return count, nil
}

// Completions implements domain.SurveyRepository. An absent row reads as 0.
func (a *SurveyDatabaseAdapter) Completions(ctx context.Context) (int64, error) {
	var count int64
	err := a.db.GetContext(ctx, &count, `SELECT count FROM survey_counter WHERE id = 1`)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get survey counter: %w", err)
	}
	return count, nil
}

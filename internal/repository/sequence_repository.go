package repository

import (
	"context"
	"fmt"

	"asklab/internal/domain"

	"github.com/jmoiron/sqlx"
)

// SequenceDatabaseAdapter implements domain.SequenceRepository over a reserved
// counters table. Each Next call is a single atomic read-modify-write
// serialized by the database.
type SequenceDatabaseAdapter struct {
	db *sqlx.DB
}

// NewSequenceDatabaseAdapter creates a new instance of SequenceDatabaseAdapter
func NewSequenceDatabaseAdapter(db *sqlx.DB) domain.SequenceRepository {
	return &SequenceDatabaseAdapter{db: db}
}

// Next implements domain.SequenceRepository
func (a *SequenceDatabaseAdapter) Next(ctx context.Context, name string) (int64, error) {
	var value int64
	query := `INSERT INTO counters (name, value) VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
		RETURNING value`

	if err := a.db.GetContext(ctx, &value, query, name); err != nil {
		return 0, fmt.Errorf("failed to advance sequence %s: %w", name, err)
	}
	return value, nil
}

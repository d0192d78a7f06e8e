package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"asklab/internal/domain"
	"asklab/internal/logger"
	"asklab/internal/repository/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// GroupDatabaseAdapter implements domain.GroupRepository using sqlx.DB
type GroupDatabaseAdapter struct {
	db *sqlx.DB
}

// NewGroupDatabaseAdapter creates a new instance of GroupDatabaseAdapter
func NewGroupDatabaseAdapter(db *sqlx.DB) domain.GroupRepository {
	return &GroupDatabaseAdapter{db: db}
}

// Save implements domain.GroupRepository. It is a full-row replace: concurrent
// saves to the same group are last-write-wins, with no version check.
func (a *GroupDatabaseAdapter) Save(ctx context.Context, group *domain.Group) error {
	if group == nil {
		return fmt.Errorf("cannot save nil group")
	}
	blob, err := encodeQuestions(group.Questions)
	if err != nil {
		return fmt.Errorf("failed to serialize questions for group %s: %w", group.ID, err)
	}

	query := `INSERT INTO groups (id, font_face, color_scheme, questions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		ON CONFLICT (id) DO UPDATE SET
			font_face = EXCLUDED.font_face,
			color_scheme = EXCLUDED.color_scheme,
			questions = EXCLUDED.questions,
			updated_at = now()`

	if _, err := a.db.ExecContext(ctx, query, group.ID, group.FontFace, group.ColorScheme, blob); err != nil {
		return fmt.Errorf("failed to save group %s: %w", group.ID, err)
	}
	return nil
}

// GetByID implements domain.GroupRepository. It returns (nil, nil) when the
// group does not exist.
func (a *GroupDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	var modelGroup models.Group
	query := `SELECT id, font_face, color_scheme, questions, created_at, updated_at
		FROM groups
		WHERE id = $1`

	err := a.db.GetContext(ctx, &modelGroup, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group by ID %s: %w", id, err)
	}
	return toDomainGroup(&modelGroup), nil
}

// ListAll implements domain.GroupRepository. Rows come back ordered by id,
// numerically when the id is numeric, so consecutive scans are deterministic.
func (a *GroupDatabaseAdapter) ListAll(ctx context.Context) ([]*domain.Group, error) {
	var modelGroups []models.Group
	query := `SELECT id, font_face, color_scheme, questions, created_at, updated_at
		FROM groups
		ORDER BY (CASE WHEN id ~ '^[0-9]+$' THEN lpad(id, 20, '0') ELSE id END)`

	if err := a.db.SelectContext(ctx, &modelGroups, query); err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	groups := make([]*domain.Group, 0, len(modelGroups))
	for i := range modelGroups {
		groups = append(groups, toDomainGroup(&modelGroups[i]))
	}
	return groups, nil
}

// Delete implements domain.GroupRepository
func (a *GroupDatabaseAdapter) Delete(ctx context.Context, id string) error {
	if _, err := a.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete group %s: %w", id, err)
	}
	return nil
}

// encodeQuestions serializes the question list, writing "[]" for nil.
func encodeQuestions(questions []domain.GroupQuestion) (string, error) {
	if questions == nil {
		questions = []domain.GroupQuestion{}
	}
	blob, err := json.Marshal(questions)
	if err != nil {
		return "", err
	}
	return string(blob), nil
}

// toDomainGroup converts a database row into a domain group. A malformed
// question blob is logged and treated as an empty list rather than propagated,
// trading data visibility for availability.
func toDomainGroup(m *models.Group) *domain.Group {
	if m == nil {
		return nil
	}
	var questions []domain.GroupQuestion
	if m.Questions != "" {
		if err := json.Unmarshal([]byte(m.Questions), &questions); err != nil {
			logger.Get().Warn("Malformed question blob, treating as empty list",
				zap.String("groupId", m.ID),
				zap.Error(err),
			)
			questions = nil
		}
	}
	return &domain.Group{
		ID:          m.ID,
		FontFace:    m.FontFace,
		ColorScheme: m.ColorScheme,
		Questions:   questions,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

package domain

import "context"

// Sequence names used with SequenceRepository.Next.
const (
	SequenceGroups   = "groups"
	SequenceProjects = "projects"
)

// GroupRepository defines the interface for group persistence. Get and list
// operations return nil (not an error) when no row exists.
type GroupRepository interface {
	// Save unconditionally overwrites the group row (full replace, not merge).
	Save(ctx context.Context, group *Group) error

	// GetByID retrieves a group with its questions deserialized.
	GetByID(ctx context.Context, id string) (*Group, error)

	// ListAll returns every persisted group row; no pagination.
	ListAll(ctx context.Context) ([]*Group, error)

	// Delete removes the group row entirely.
	Delete(ctx context.Context, id string) error
}

// SequenceRepository allocates monotonically increasing identifiers via an
// atomic increment on a reserved counter row.
type SequenceRepository interface {
	Next(ctx context.Context, name string) (int64, error)
}

// RatingRepository defines the interface for rating persistence.
type RatingRepository interface {
	// Increment atomically adds 1 to the counter column for rating, creating
	// the row with zeroed counters on first touch, and returns the updated row.
	Increment(ctx context.Context, questionID string, rating int) (*Rating, error)

	// BackfillQuestion sets the question text only if it is not already set.
	BackfillQuestion(ctx context.Context, questionID, question string) error

	// ListAll returns every rating row with absent counters defaulted to 0.
	ListAll(ctx context.Context) ([]*Rating, error)
}

// SurveyRepository owns the survey-status and completion-counter singleton rows.
type SurveyRepository interface {
	// GetStatus returns whether the survey is open; false when the row is absent.
	GetStatus(ctx context.Context) (bool, error)

	// SetStatus unconditionally overwrites the singleton status row.
	SetStatus(ctx context.Context, isOpen bool) error

	// IncrementCompletions atomically adds 1 and returns the new total.
	IncrementCompletions(ctx context.Context) (int64, error)

	// Completions returns the current total, 0 when the row is absent.
	Completions(ctx context.Context) (int64, error)
}

// ProjectRepository defines the interface for project persistence.
type ProjectRepository interface {
	Save(ctx context.Context, project *Project) error

	// GetByID returns nil when the project does not exist.
	GetByID(ctx context.Context, id string) (*Project, error)

	ListAll(ctx context.Context) ([]*Project, error)

	// AssignResearcher returns ErrDuplicateAssignment when the researcher is
	// already assigned to the project.
	AssignResearcher(ctx context.Context, projectID, researcherID string) error
}

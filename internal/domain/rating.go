package domain

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Rating accumulates per-question rating counts. One row exists per question
// ID; the question text is recorded by the first rating that can resolve it
// and never overwritten afterwards.
type Rating struct {
	QuestionID string
	Question   string
	Rating1    int
	Rating2    int
	Rating3    int
	Rating4    int
	Rating5    int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ValidateRating checks that a submitted score is an integer in [1,5].
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return NewInvalidRatingError(rating)
	}
	return nil
}

// Total returns the number of submissions accumulated for this question.
func (r *Rating) Total() int {
	return r.Rating1 + r.Rating2 + r.Rating3 + r.Rating4 + r.Rating5
}

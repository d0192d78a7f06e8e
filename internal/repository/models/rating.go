package models

import (
	"database/sql"
	"time"
)

// Rating is the database row accumulating per-question rating counters.
// Question stays NULL until the first rating that can resolve the text.
type Rating struct {
	ID         string         `db:"id"`
	QuestionID string         `db:"question_id"`
	Question   sql.NullString `db:"question"`
	Rating1    int            `db:"rating1"`
	Rating2    int            `db:"rating2"`
	Rating3    int            `db:"rating3"`
	Rating4    int            `db:"rating4"`
	Rating5    int            `db:"rating5"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

package models

import "time"

// Group is the database row for a researcher question group. The questions
// column holds the full question list serialized as a single JSON text blob.
type Group struct {
	ID          string    `db:"id"`
	FontFace    string    `db:"font_face"`
	ColorScheme string    `db:"color_scheme"`
	Questions   string    `db:"questions"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

package domain

import "time"

// CatalogQuestion is one entry in the flattened question catalog. The assigned
// ID is sequential within a single snapshot and is not stable across rebuilds
// when group contents change in between.
type CatalogQuestion struct {
	AssignedID  int    `json:"assignedId"`
	GroupID     string `json:"groupId"`
	Question    string `json:"question"`
	PreAnswer   string `json:"preAnswer"`
	Answer      string `json:"answer"`
	Delay       string `json:"delay"`
	FontFace    string `json:"fontFace"`
	ColorScheme string `json:"colorScheme"`
}

// CatalogSnapshot is an immutable flattened view of all questions across all
// groups, built from a single scan. Callers hold the snapshot they were given
// and thread it through subsequent lookups; a later rebuild never mutates an
// existing snapshot.
type CatalogSnapshot struct {
	Questions []CatalogQuestion `json:"questions"`
	BuiltAt   time.Time         `json:"builtAt"`
}

// Lookup resolves an assigned ID within this snapshot.
func (s *CatalogSnapshot) Lookup(assignedID int) (CatalogQuestion, bool) {
	if s == nil {
		return CatalogQuestion{}, false
	}
	// Assigned IDs are 1..N in slice order.
	if assignedID < 1 || assignedID > len(s.Questions) {
		return CatalogQuestion{}, false
	}
	q := s.Questions[assignedID-1]
	if q.AssignedID != assignedID {
		// Defensive path for snapshots deserialized from an external cache.
		for _, candidate := range s.Questions {
			if candidate.AssignedID == assignedID {
				return candidate, true
			}
		}
		return CatalogQuestion{}, false
	}
	return q, true
}

// Size returns the number of questions in the snapshot.
func (s *CatalogSnapshot) Size() int {
	if s == nil {
		return 0
	}
	return len(s.Questions)
}

// FlattenGroups numbers every question of every group sequentially starting at
// 1, in group order then question order. Only the group-level style is carried;
// per-question overrides are not applied on the delivery path.
func FlattenGroups(groups []*Group) *CatalogSnapshot {
	snapshot := &CatalogSnapshot{BuiltAt: time.Now()}
	next := 1
	for _, group := range groups {
		style := group.Style()
		for _, q := range group.Questions {
			snapshot.Questions = append(snapshot.Questions, CatalogQuestion{
				AssignedID:  next,
				GroupID:     group.ID,
				Question:    q.Question,
				PreAnswer:   q.PreAnswer,
				Answer:      q.Answer,
				Delay:       q.Delay,
				FontFace:    style.FontFace,
				ColorScheme: style.ColorScheme,
			})
			next++
		}
	}
	return snapshot
}

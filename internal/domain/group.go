package domain

import (
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultFontFace is applied when neither the question nor its group sets one.
	DefaultFontFace = "Arial"
	// DefaultColorScheme is applied when neither the question nor its group sets one.
	DefaultColorScheme = "#000000"
	// DefaultAnswerDelay is the simulated processing latency when a question's
	// delay is absent or unparseable.
	DefaultAnswerDelay = time.Second
)

// Style is the resolved pair of presentation attributes carried by every
// delivered answer.
type Style struct {
	FontFace    string
	ColorScheme string
}

// DefaultStyle returns the global styling fallback.
func DefaultStyle() Style {
	return Style{FontFace: DefaultFontFace, ColorScheme: DefaultColorScheme}
}

// Group represents one researcher-authored set of questions sharing default styling.
type Group struct {
	ID          string
	FontFace    string
	ColorScheme string
	Questions   []GroupQuestion
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewGroup creates a new Group instance with styling defaults filled in.
func NewGroup(id, fontFace, colorScheme string, questions []GroupQuestion) *Group {
	if fontFace == "" {
		fontFace = DefaultFontFace
	}
	if colorScheme == "" {
		colorScheme = DefaultColorScheme
	}
	now := time.Now()
	return &Group{
		ID:          id,
		FontFace:    fontFace,
		ColorScheme: colorScheme,
		Questions:   questions,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Style resolves the group-level styling, falling back to the global defaults.
func (g *Group) Style() Style {
	s := DefaultStyle()
	if g.FontFace != "" {
		s.FontFace = g.FontFace
	}
	if g.ColorScheme != "" {
		s.ColorScheme = g.ColorScheme
	}
	return s
}

// Validate validates the group
func (g *Group) Validate() error {
	if g.ID == "" {
		return NewInvalidInputError("group ID is required")
	}
	return nil
}

// RemoveQuestion deletes every question whose trimmed, lower-cased text equals
// the trimmed, lower-cased input. It returns the number of questions removed.
func (g *Group) RemoveQuestion(text string) int {
	target := strings.ToLower(strings.TrimSpace(text))
	kept := g.Questions[:0]
	removed := 0
	for _, q := range g.Questions {
		if strings.ToLower(strings.TrimSpace(q.Question)) == target {
			removed++
			continue
		}
		kept = append(kept, q)
	}
	g.Questions = kept
	return removed
}

// GroupQuestion is a question nested inside a Group. It is not independently
// addressable by the group store; its identity for deletion is the question
// text, compared case-insensitively.
type GroupQuestion struct {
	Question    string `json:"question"`
	PreAnswer   string `json:"preAnswer"`
	Answer      string `json:"answer"`
	Delay       string `json:"delay"`
	FontFace    string `json:"fontFace,omitempty"`
	ColorScheme string `json:"colorScheme,omitempty"`
}

// ResolveStyle merges the question's overrides over the group style over the
// global defaults. Computed once at read time; handlers never chain fallbacks
// inline.
func (q GroupQuestion) ResolveStyle(group Style) Style {
	s := group
	if s.FontFace == "" {
		s.FontFace = DefaultFontFace
	}
	if s.ColorScheme == "" {
		s.ColorScheme = DefaultColorScheme
	}
	if q.FontFace != "" {
		s.FontFace = q.FontFace
	}
	if q.ColorScheme != "" {
		s.ColorScheme = q.ColorScheme
	}
	return s
}

// ParseDelay converts a delay string (seconds) into a duration. Absent or
// unparseable values fall back to DefaultAnswerDelay; "0" means no wait.
func ParseDelay(delay string) time.Duration {
	trimmed := strings.TrimSpace(delay)
	if trimmed == "" {
		return DefaultAnswerDelay
	}
	seconds, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || seconds < 0 {
		return DefaultAnswerDelay
	}
	return time.Duration(seconds * float64(time.Second))
}

package dto

// QuestionPayload mirrors the question shape the researcher UI edits and the
// group store persists.
type QuestionPayload struct {
	Question    string     `json:"question"`
	PreAnswer   string     `json:"preAnswer"`
	Answer      string     `json:"answer"`
	Delay       FlexString `json:"delay"`
	FontFace    string     `json:"fontFace,omitempty"`
	ColorScheme string     `json:"colorScheme,omitempty"`
}

// SaveGroupRequest is the body of PUT /research-groups/{groupId}/config
// @Description Group configuration to persist (full replace)
type SaveGroupRequest struct {
	FontFace    string            `json:"fontFace"`
	ColorScheme string            `json:"colorScheme"`
	Questions   []QuestionPayload `json:"questions"`
}

// SaveGroupResponse confirms a saved group and echoes the resolved ID
type SaveGroupResponse struct {
	Message string `json:"message"`
	GroupID string `json:"groupId"`
}

// DeleteQuestionRequest is the body of DELETE /research-groups/{groupId}/config
type DeleteQuestionRequest struct {
	QuestionText string `json:"questionText"`
}

// GroupResponse represents one persisted group row
type GroupResponse struct {
	GroupID     string            `json:"groupId"`
	FontFace    string            `json:"fontFace"`
	ColorScheme string            `json:"colorScheme"`
	Questions   []QuestionPayload `json:"questions"`
}

// MessageResponse is a generic confirmation body
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}

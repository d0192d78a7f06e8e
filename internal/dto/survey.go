package dto

// FixedQuestionResponse is the minimal projection served to participants
// @Description One entry of the flattened question catalog
type FixedQuestionResponse struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
}

// AskRequest is the body of POST /ask
type AskRequest struct {
	QuestionID FlexString `json:"questionId"`
	Phase      string     `json:"phase"`
}

// PreAnswerResponse carries the instant placeholder text for the pre phase
type PreAnswerResponse struct {
	PreAnswerMessage string `json:"preAnswerMessage"`
}

// FinalAnswerResponse carries the simulated final answer with resolved styling
type FinalAnswerResponse struct {
	FinalAnswer string `json:"finalAnswer"`
	ColorScheme string `json:"colorScheme"`
	FontFace    string `json:"fontFace"`
}

// RateRequest is the body of POST /rate
type RateRequest struct {
	QuestionID FlexString `json:"questionId"`
	Rating     int        `json:"rating"`
}

// RatingCounts is the set of per-score counters for one question
type RatingCounts struct {
	QuestionID string `json:"questionId"`
	Question   string `json:"question,omitempty"`
	Rating1    int    `json:"rating1"`
	Rating2    int    `json:"rating2"`
	Rating3    int    `json:"rating3"`
	Rating4    int    `json:"rating4"`
	Rating5    int    `json:"rating5"`
}

// RateResponse confirms a recorded rating and returns the updated counters
type RateResponse struct {
	Message string       `json:"message"`
	Updated RatingCounts `json:"updated"`
}

// RatingResponse is one aggregated rating row for export
type RatingResponse struct {
	QuestionID string `json:"questionId"`
	Question   string `json:"question"`
	Rating1    int    `json:"rating1"`
	Rating2    int    `json:"rating2"`
	Rating3    int    `json:"rating3"`
	Rating4    int    `json:"rating4"`
	Rating5    int    `json:"rating5"`
}

// SurveyStatusRequest is the body of POST /survey-status
type SurveyStatusRequest struct {
	IsOpen bool `json:"isOpen"`
}

// SurveyStatusResponse reports whether participants may access the survey
type SurveyStatusResponse struct {
	IsOpen bool `json:"isOpen"`
}

// CounterResponse reports the completed-session total
type CounterResponse struct {
	Count int64 `json:"count"`
}

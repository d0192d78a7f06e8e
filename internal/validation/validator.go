package validation

import (
	"regexp"
	"strings"

	"asklab/internal/domain"
	"asklab/internal/dto"
)

var groupIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGroupID validates the groupId path parameter. The literal
// "undefined" is accepted; the group service treats it as an absent ID.
func (v *Validator) ValidateGroupID(groupID string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(groupID) == "" {
		errors = append(errors, domain.NewMissingFieldError("groupId"))
		return errors
	}
	if !groupIDPattern.MatchString(groupID) {
		errors = append(errors, domain.NewInvalidFormatError("groupId", groupID))
	}
	return errors
}

// ValidateQuestionID validates a catalog question identifier and returns the
// parsed value. Assigned IDs are positive integers.
func (v *Validator) ValidateQuestionID(questionID dto.FlexString) (int, domain.ValidationErrors) {
	var errors domain.ValidationErrors

	if strings.TrimSpace(questionID.String()) == "" {
		errors = append(errors, domain.NewMissingFieldError("questionId"))
		return 0, errors
	}

	id, ok := questionID.Int()
	if !ok || id < 1 {
		errors = append(errors, domain.NewInvalidFormatError("questionId", questionID.String()))
		return 0, errors
	}
	return id, nil
}

// ValidateDeleteQuestionRequest validates the delete-question body.
func (v *Validator) ValidateDeleteQuestionRequest(questionText string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(questionText) == "" {
		errors = append(errors, domain.NewMissingFieldError("questionText"))
	}
	return errors
}

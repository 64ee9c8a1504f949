package responses

import "carecapture-service/internal/app/models"

// FormDraft is a draft with the visibility of every question precomputed,
// keyed by questionnaire id then question id.
type FormDraft struct {
	ID        string                          `json:"id"`
	Context   models.RequestContext           `json:"context"`
	Forms     []models.QuestionnaireFormState `json:"forms"`
	Enabled   map[string]map[string]bool      `json:"enabled"`
	LastState models.SubmissionState          `json:"last_state,omitempty"`
}

type UpdateQuestionResponse struct {
	Form     models.QuestionnaireFormState `json:"form"`
	Enabled  map[string]bool               `json:"enabled"`
	Warnings []models.DuplicateWarning     `json:"warnings,omitempty"`
}

type ValidateFormDraft struct {
	Valid                  bool                            `json:"valid"`
	FirstInvalidQuestionID string                          `json:"first_invalid_question_id,omitempty"`
	Forms                  []models.QuestionnaireFormState `json:"forms"`
}

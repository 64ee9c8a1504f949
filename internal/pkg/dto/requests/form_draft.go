package requests

import "carecapture-service/internal/app/models"

type CreateFormDraft struct {
	PatientID          string   `json:"patient_id" validate:"required"`
	EncounterID        string   `json:"encounter_id"`
	FacilityID         string   `json:"facility_id"`
	QuestionnaireSlugs []string `json:"questionnaire_slugs" validate:"required,min=1,dive,required"`
}

// UpdateQuestionResponse replaces the whole answer of one question. A nil
// Note keeps the stored note.
type UpdateQuestionResponse struct {
	Values   []models.ResponseValue `json:"values" validate:"dive"`
	Note     *string                `json:"note"`
	BodySite *models.Coding         `json:"body_site"`
	Method   *models.Coding         `json:"method"`
}

type AttachQuestionnaire struct {
	QuestionnaireSlug string `json:"questionnaire_slug" validate:"required"`
}

package constvars

const (
	ResponseUnknown = "unknown"

	FindQuestionnaireSuccessMessage   = "questionnaire fetched successfully"
	CreateFormDraftSuccessMessage     = "form draft created successfully"
	FindFormDraftSuccessMessage       = "form draft fetched successfully"
	AttachQuestionnaireSuccessMessage = "questionnaire attached to form draft"
	UpdateFormResponseSuccessMessage  = "response updated successfully"
	ValidateFormDraftSuccessMessage   = "form draft validated"
	SubmitFormDraftSuccessMessage     = "questionnaires submitted successfully"
	SubmitFormDraftPartialMessage     = "some questionnaires could not be submitted"
	SubmitFormDraftInvalidMessage     = "please fix the highlighted questions"
	DeleteFormDraftSuccessMessage     = "form draft deleted successfully"
)

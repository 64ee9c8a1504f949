package constvars

const (
	URLParamQuestionnaireSlug = "questionnaire_slug"
	URLParamQuestionnaireID   = "questionnaire_id"
	URLParamQuestionID        = "question_id"
	URLParamDraftID           = "draft_id"
)

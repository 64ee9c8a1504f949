package requestCompiler

import (
	"carecapture-service/internal/app/models"
	"carecapture-service/internal/pkg/constvars"
	"fmt"
	"net/http"
)

// CompileQuestionnaireSubmission builds the plain submission of one form from
// its enabled leaf responses. Structured and unanswered responses are left
// out; ok is false when nothing remains to submit.
func CompileQuestionnaireSubmission(questionnaire models.QuestionnaireDetail, responses []models.QuestionnaireResponse, requestContext models.RequestContext) (models.Request, bool) {
	var results []models.QuestionnaireSubmitResult
	for _, response := range responses {
		if response.StructuredType != "" || !response.IsAnswered() {
			continue
		}
		results = append(results, models.QuestionnaireSubmitResult{
			QuestionID: response.QuestionID,
			Values:     response.Values,
			Note:       response.Note,
			BodySite:   response.BodySite,
			Method:     response.Method,
		})
	}
	if len(results) == 0 {
		return models.Request{}, false
	}

	slug := questionnaire.Slug
	if slug == "" {
		slug = questionnaire.ID
	}
	return models.Request{
		URL:    fmt.Sprintf(constvars.BackendPathQuestionnaireSubmit, slug),
		Method: http.MethodPost,
		Body: models.QuestionnaireSubmitRequest{
			ResourceID: questionnaire.ID,
			Encounter:  requestContext.EncounterID,
			Patient:    requestContext.PatientID,
			Results:    results,
		},
		ReferenceID: questionnaire.ID,
	}, true
}

package questionWalker

import (
	"carecapture-service/internal/app/models"
	formResponses "carecapture-service/internal/app/services/core/form_responses"
	structuredValidators "carecapture-service/internal/app/services/core/structured_validators"
	"carecapture-service/internal/app/services/core/visibility"
)

// ValidateQuestionnaire walks the tree depth first in declaration order and
// collects every error of the enabled leaves. The second return value is the
// id of the first question holding an error, empty when the form is valid.
func ValidateQuestionnaire(questions []models.Question, responses []models.QuestionnaireResponse) ([]models.QuestionValidationError, string) {
	w := &walker{
		evaluator: visibility.NewEvaluator(responses),
		responses: indexResponses(responses),
	}
	w.walk(questions)

	firstInvalid := ""
	if len(w.errors) > 0 {
		firstInvalid = w.errors[0].QuestionID
	}
	return w.errors, firstInvalid
}

// ValidateForm returns a copy of form with its errors re-derived.
func ValidateForm(form models.QuestionnaireFormState) (models.QuestionnaireFormState, string) {
	errs, firstInvalid := ValidateQuestionnaire(form.Questionnaire.Questions, form.Responses)
	validated := form
	validated.Errors = errs
	return validated, firstInvalid
}

// ValidateForms validates each form in order and reports the first invalid
// question across all of them.
func ValidateForms(forms []models.QuestionnaireFormState) ([]models.QuestionnaireFormState, string) {
	validated := make([]models.QuestionnaireFormState, len(forms))
	firstInvalid := ""
	for i, form := range forms {
		var formFirst string
		validated[i], formFirst = ValidateForm(form)
		if firstInvalid == "" {
			firstInvalid = formFirst
		}
	}
	return validated, firstInvalid
}

// EnabledLeafResponses returns the response records of every enabled leaf in
// declaration order. Leaves without a record are skipped.
func EnabledLeafResponses(questions []models.Question, responses []models.QuestionnaireResponse) []models.QuestionnaireResponse {
	enabled := visibility.EnabledMap(questions, responses)
	var leaves []models.QuestionnaireResponse
	for _, question := range formResponses.FlattenLeafQuestions(questions) {
		if !enabled[question.ID] {
			continue
		}
		if response, ok := formResponses.FindResponse(responses, question.ID); ok {
			leaves = append(leaves, response)
		}
	}
	return leaves
}

type walker struct {
	evaluator *visibility.Evaluator
	responses map[string]models.QuestionnaireResponse
	errors    []models.QuestionValidationError
}

func indexResponses(responses []models.QuestionnaireResponse) map[string]models.QuestionnaireResponse {
	index := make(map[string]models.QuestionnaireResponse, len(responses))
	for _, response := range responses {
		if _, ok := index[response.QuestionID]; !ok {
			index[response.QuestionID] = response
		}
	}
	return index
}

func (w *walker) walk(questions []models.Question) {
	for _, question := range questions {
		if !w.evaluator.IsEnabled(question) {
			continue
		}
		if question.IsGroup() {
			w.walk(question.Questions)
			continue
		}
		if question.Type == models.QuestionTypeDisplay {
			continue
		}
		w.validateLeaf(question)
	}
}

func (w *walker) validateLeaf(question models.Question) {
	response := w.responses[question.ID]

	if question.Required && !response.IsAnswered() {
		w.errors = append(w.errors, models.QuestionValidationError{
			QuestionID: question.ID,
			Error:      structuredValidators.MessageRequired,
		})
		return
	}

	if !question.IsStructured() {
		return
	}
	value, ok := response.StructuredValue()
	if !ok || value.Len() == 0 {
		return
	}
	w.errors = append(w.errors, structuredValidators.Validate(question.ID, value)...)
}

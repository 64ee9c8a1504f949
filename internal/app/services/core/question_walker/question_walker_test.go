package questionWalker

import (
	"carecapture-service/internal/app/models"
	formResponses "carecapture-service/internal/app/services/core/form_responses"
	structuredValidators "carecapture-service/internal/app/services/core/structured_validators"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answer(t *testing.T, responses []models.QuestionnaireResponse, questionID string, values ...models.ResponseValue) []models.QuestionnaireResponse {
	t.Helper()
	updated, err := formResponses.UpdateResponse(responses, formResponses.ResponseUpdate{QuestionID: questionID, Values: values})
	require.NoError(t, err)
	return updated
}

func TestSimpleRequiredText(t *testing.T) {
	questions := []models.Question{{ID: "q1", LinkID: "1", Type: models.QuestionTypeString, Required: true}}
	responses := formResponses.InitializeResponses(questions)

	errs, firstInvalid := ValidateQuestionnaire(questions, responses)
	require.Len(t, errs, 1)
	assert.Equal(t, "q1", firstInvalid)
	assert.Equal(t, structuredValidators.MessageRequired, errs[0].Error)
	assert.Nil(t, errs[0].Index)

	responses = answer(t, responses, "q1", models.StringValue("hello"))
	errs, firstInvalid = ValidateQuestionnaire(questions, responses)
	assert.Empty(t, errs)
	assert.Empty(t, firstInvalid)
}

func TestRequiredDetectionViaCodingAndUnit(t *testing.T) {
	questions := []models.Question{
		{ID: "choice", LinkID: "1", Type: models.QuestionTypeChoice, Required: true},
		{ID: "weight", LinkID: "2", Type: models.QuestionTypeQuantity, Required: true},
	}
	responses := formResponses.InitializeResponses(questions)
	responses = answer(t, responses, "choice", models.ResponseValue{Coding: &models.Coding{Code: "M"}})
	responses = answer(t, responses, "weight", models.ResponseValue{Unit: &models.Coding{Code: "kg"}})

	errs, _ := ValidateQuestionnaire(questions, responses)
	assert.Empty(t, errs)

	responses = answer(t, responses, "choice", models.StringValue(""))
	errs, firstInvalid := ValidateQuestionnaire(questions, responses)
	require.Len(t, errs, 1)
	assert.Equal(t, "choice", firstInvalid)
}

func TestConditionalGroup(t *testing.T) {
	questions := []models.Question{
		{ID: "smoker", LinkID: "smoker", Type: models.QuestionTypeBoolean},
		{
			ID: "habits", LinkID: "habits", Type: models.QuestionTypeGroup,
			EnableWhen: []models.EnableWhen{{Question: "smoker", Operator: models.OperatorEquals, Answer: "Yes"}},
			Questions: []models.Question{
				{ID: "packs", LinkID: "habits.packs", Type: models.QuestionTypeInteger, Required: true},
			},
		},
	}
	responses := formResponses.InitializeResponses(questions)

	t.Run("disabled group is skipped", func(t *testing.T) {
		answered := answer(t, responses, "smoker", models.BooleanValue(false))
		errs, _ := ValidateQuestionnaire(questions, answered)
		assert.Empty(t, errs)
	})

	t.Run("enabled group validates children", func(t *testing.T) {
		answered := answer(t, responses, "smoker", models.BooleanValue(true))
		errs, firstInvalid := ValidateQuestionnaire(questions, answered)
		require.Len(t, errs, 1)
		assert.Equal(t, "packs", firstInvalid)
	})
}

func TestStructuredLeaves(t *testing.T) {
	questions := []models.Question{
		{ID: "meds", LinkID: "meds", Type: models.QuestionTypeStructured, StructuredType: models.StructuredTypeMedicationStatement},
		{ID: "death", LinkID: "death", Type: models.QuestionTypeStructured, StructuredType: models.StructuredTypeTimeOfDeath},
		{ID: "allergies", LinkID: "allergies", Type: models.QuestionTypeStructured, StructuredType: models.StructuredTypeAllergyIntolerance, Required: true},
	}
	responses := formResponses.InitializeResponses(questions)

	statements := models.MedicationStatements{{
		Medication:      models.Coding{Code: "IBU"},
		DosageText:      "daily",
		EffectivePeriod: &models.Period{Start: "2024-05-02", End: "2024-05-01"},
	}}
	responses = answer(t, responses, "meds", models.StructuredResponseValue(statements))
	responses = answer(t, responses, "death", models.StructuredResponseValue(models.TimesOfDeath{{}}))

	errs, firstInvalid := ValidateQuestionnaire(questions, responses)
	require.Len(t, errs, 2)
	assert.Equal(t, "meds", firstInvalid)
	assert.Equal(t, structuredValidators.MessageEndBeforeStart, errs[0].Error)
	assert.Equal(t, "effective_period", errs[0].FieldKey)
	assert.Equal(t, "allergies", errs[1].QuestionID)
	assert.Equal(t, structuredValidators.MessageRequired, errs[1].Error)

	again, _ := ValidateQuestionnaire(questions, responses)
	assert.Equal(t, errs, again)
}

func TestSoftDeletedItemsPassValidation(t *testing.T) {
	questions := []models.Question{
		{ID: "allergies", LinkID: "allergies", Type: models.QuestionTypeStructured, StructuredType: models.StructuredTypeAllergyIntolerance, Required: true},
	}
	responses := formResponses.InitializeResponses(questions)
	responses = answer(t, responses, "allergies", models.StructuredResponseValue(models.AllergyIntolerances{
		{VerificationStatus: models.StatusEnteredInError},
	}))

	errs, _ := ValidateQuestionnaire(questions, responses)
	assert.Empty(t, errs)
}

func TestValidateFormsReportsFirstInvalidAcrossForms(t *testing.T) {
	optional := models.QuestionnaireFormState{Questionnaire: models.QuestionnaireDetail{
		ID:        "intake",
		Questions: []models.Question{{ID: "note", LinkID: "note", Type: models.QuestionTypeText}},
	}}
	required := models.QuestionnaireFormState{
		Questionnaire: models.QuestionnaireDetail{
			ID:        "vitals",
			Questions: []models.Question{{ID: "pulse", LinkID: "pulse", Type: models.QuestionTypeInteger, Required: true}},
		},
		Errors: []models.QuestionValidationError{{QuestionID: "stale", Error: "old"}},
	}
	required.Responses = formResponses.InitializeResponses(required.Questionnaire.Questions)

	forms := []models.QuestionnaireFormState{optional, required}
	validated, firstInvalid := ValidateForms(forms)

	assert.Equal(t, "pulse", firstInvalid)
	assert.Empty(t, validated[0].Errors)
	require.Len(t, validated[1].Errors, 1)
	assert.Equal(t, "pulse", validated[1].Errors[0].QuestionID)
	assert.Equal(t, "stale", forms[1].Errors[0].QuestionID, "input forms are not mutated")
}

func TestEnabledLeafResponses(t *testing.T) {
	questions := []models.Question{
		{ID: "a", LinkID: "a", Type: models.QuestionTypeBoolean},
		{
			ID: "g", LinkID: "g", Type: models.QuestionTypeGroup,
			EnableWhen: []models.EnableWhen{{Question: "a", Operator: models.OperatorExists, Answer: true}},
			Questions:  []models.Question{{ID: "b", LinkID: "g.b", Type: models.QuestionTypeString}},
		},
		{ID: "c", LinkID: "c", Type: models.QuestionTypeString},
	}
	responses := formResponses.InitializeResponses(questions)

	ids := func(responses []models.QuestionnaireResponse) []string {
		out := make([]string, 0, len(responses))
		for _, response := range responses {
			out = append(out, response.QuestionID)
		}
		return out
	}

	assert.Equal(t, []string{"a", "c"}, ids(EnabledLeafResponses(questions, responses)))

	responses = answer(t, responses, "a", models.BooleanValue(true))
	assert.Equal(t, []string{"a", "b", "c"}, ids(EnabledLeafResponses(questions, responses)))
}

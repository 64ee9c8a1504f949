package formResponses

import (
	"carecapture-service/internal/app/models"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nestedQuestions() []models.Question {
	return []models.Question{
		{ID: "q1", LinkID: "1", Type: models.QuestionTypeString},
		{
			ID: "g1", LinkID: "2", Type: models.QuestionTypeGroup,
			Questions: []models.Question{
				{ID: "q2", LinkID: "2.1", Type: models.QuestionTypeBoolean},
				{
					ID: "g2", LinkID: "2.2", Type: models.QuestionTypeGroup,
					Questions: []models.Question{
						{ID: "q3", LinkID: "2.2.1", Type: models.QuestionTypeStructured, StructuredType: models.StructuredTypeAllergyIntolerance},
					},
				},
			},
		},
		{ID: "q4", LinkID: "3", Type: models.QuestionTypeDecimal},
	}
}

func TestInitializeResponses(t *testing.T) {
	questions := nestedQuestions()

	first := InitializeResponses(questions)
	second := InitializeResponses(questions)

	require.Len(t, first, 4)
	assert.Equal(t, first, second)

	ids := make([]string, len(first))
	for i, response := range first {
		ids[i] = response.QuestionID
		assert.NotNil(t, response.Values)
		assert.Empty(t, response.Values)
	}
	assert.Equal(t, []string{"q1", "q2", "q3", "q4"}, ids)
	assert.Equal(t, "2.2.1", first[2].LinkID)
	assert.Equal(t, models.StructuredTypeAllergyIntolerance, first[2].StructuredType)
	assert.Empty(t, first[0].StructuredType)
}

func TestInitializeResponsesSkipsStructuredTypeOnPlainQuestions(t *testing.T) {
	responses := InitializeResponses([]models.Question{
		{ID: "q1", Type: models.QuestionTypeString, StructuredType: models.StructuredTypeDiagnosis},
	})
	require.Len(t, responses, 1)
	assert.Empty(t, responses[0].StructuredType)
}

func TestFlattenLeafQuestions(t *testing.T) {
	leaves := FlattenLeafQuestions(nestedQuestions())
	require.Len(t, leaves, 4)
	assert.Equal(t, "q3", leaves[2].ID)
	assert.Equal(t, 4, CountLeafQuestions(nestedQuestions()))
}

func TestFindQuestion(t *testing.T) {
	question, ok := FindQuestion(nestedQuestions(), "q3")
	require.True(t, ok)
	assert.Equal(t, "2.2.1", question.LinkID)

	_, ok = FindQuestion(nestedQuestions(), "missing")
	assert.False(t, ok)
}

func TestUpdateResponse(t *testing.T) {
	responses := InitializeResponses(nestedQuestions())

	t.Run("replaces by copy", func(t *testing.T) {
		note := "patient unsure"
		values := []models.ResponseValue{models.StringValue("hello")}
		updated, err := UpdateResponse(responses, ResponseUpdate{QuestionID: "q1", Values: values, Note: &note})
		require.NoError(t, err)

		assert.Empty(t, responses[0].Values, "input must stay untouched")
		assert.Equal(t, values, updated[0].Values)
		assert.Equal(t, "patient unsure", updated[0].Note)

		values[0] = models.StringValue("mutated")
		assert.Equal(t, "hello", updated[0].Values[0].Value, "caller slice must not alias the record")
	})

	t.Run("nil note keeps stored note", func(t *testing.T) {
		note := "kept"
		withNote, err := UpdateResponse(responses, ResponseUpdate{QuestionID: "q4", Note: &note})
		require.NoError(t, err)

		cleared, err := UpdateResponse(withNote, ResponseUpdate{QuestionID: "q4", Values: []models.ResponseValue{models.NumberValue(3)}})
		require.NoError(t, err)
		assert.Equal(t, "kept", cleared[3].Note)
	})

	t.Run("unknown question", func(t *testing.T) {
		_, err := UpdateResponse(responses, ResponseUpdate{QuestionID: "g1"})
		assert.True(t, errors.Is(err, ErrResponseNotFound))
	})

	t.Run("structured answers stay in one value", func(t *testing.T) {
		list := models.StructuredResponseValue(models.AllergyIntolerances{{Code: models.Coding{Code: "A1"}}})
		_, err := UpdateResponse(responses, ResponseUpdate{QuestionID: "q3", Values: []models.ResponseValue{list, list}})
		assert.True(t, errors.Is(err, ErrStructuredCardinality))

		updated, err := UpdateResponse(responses, ResponseUpdate{QuestionID: "q3", Values: []models.ResponseValue{list}})
		require.NoError(t, err)
		value, ok := updated[2].StructuredValue()
		require.True(t, ok)
		assert.Equal(t, 1, value.Len())
	})

	t.Run("structured type mismatch", func(t *testing.T) {
		wrong := models.StructuredResponseValue(models.Symptoms{{Code: models.Coding{Code: "S1"}}})
		_, err := UpdateResponse(responses, ResponseUpdate{QuestionID: "q3", Values: []models.ResponseValue{wrong}})
		assert.True(t, errors.Is(err, ErrStructuredTypeMismatch))

		_, err = UpdateResponse(responses, ResponseUpdate{QuestionID: "q3", Values: []models.ResponseValue{models.StringValue("x")}})
		assert.True(t, errors.Is(err, ErrStructuredTypeMismatch))
	})
}

func TestReconcileResponses(t *testing.T) {
	responses := InitializeResponses(nestedQuestions())
	responses, err := UpdateResponse(responses, ResponseUpdate{QuestionID: "q1", Values: []models.ResponseValue{models.StringValue("kept")}})
	require.NoError(t, err)
	responses, err = UpdateResponse(responses, ResponseUpdate{QuestionID: "q4", Values: []models.ResponseValue{models.NumberValue(1)}})
	require.NoError(t, err)

	revised := []models.Question{
		{ID: "q1", LinkID: "1a", Type: models.QuestionTypeString},
		{ID: "q5", LinkID: "5", Type: models.QuestionTypeText},
	}
	reconciled := ReconcileResponses(revised, responses)

	require.Len(t, reconciled, 2)
	assert.Equal(t, "kept", reconciled[0].Values[0].Value)
	assert.Equal(t, "1a", reconciled[0].LinkID)
	assert.Equal(t, "q5", reconciled[1].QuestionID)
	assert.Empty(t, reconciled[1].Values)
}

func TestDetectDuplicateCodes(t *testing.T) {
	allergies := models.AllergyIntolerances{
		{Code: models.Coding{Code: "PEN", Display: "Penicillin"}},
		{Code: models.Coding{Code: "NUT"}},
		{Code: models.Coding{Code: "PEN", Display: "Penicillin"}},
		{Code: models.Coding{Code: "NUT"}, VerificationStatus: models.StatusEnteredInError},
	}

	warnings := DetectDuplicateCodes("q3", allergies)
	require.Len(t, warnings, 1)
	assert.Equal(t, 2, warnings[0].Index)
	assert.Equal(t, "PEN", warnings[0].Code)
	assert.Equal(t, "allergy Penicillin is already recorded", warnings[0].Message)

	assert.Empty(t, DetectDuplicateCodes("q9", models.Appointments{{SlotID: "s"}, {SlotID: "s"}}))
}

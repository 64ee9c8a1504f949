package visibility

import (
	"carecapture-service/internal/app/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func responseFor(linkID string, values ...models.ResponseValue) models.QuestionnaireResponse {
	if values == nil {
		values = []models.ResponseValue{}
	}
	return models.QuestionnaireResponse{QuestionID: "id-" + linkID, LinkID: linkID, Values: values}
}

func conditional(behavior models.EnableBehavior, conditions ...models.EnableWhen) models.Question {
	return models.Question{ID: "target", LinkID: "target", Type: models.QuestionTypeString, EnableWhen: conditions, EnableBehavior: behavior}
}

func TestIsEnabledWithoutConditions(t *testing.T) {
	assert.True(t, IsEnabled(models.Question{ID: "q"}, nil))
}

func TestExistsOperator(t *testing.T) {
	question := conditional("", models.EnableWhen{Question: "A", Operator: models.OperatorExists, Answer: true})

	t.Run("no entries", func(t *testing.T) {
		assert.False(t, IsEnabled(question, []models.QuestionnaireResponse{responseFor("A")}))
	})

	t.Run("empty string entry still counts", func(t *testing.T) {
		assert.True(t, IsEnabled(question, []models.QuestionnaireResponse{responseFor("A", models.StringValue(""))}))
	})

	t.Run("any value flips it", func(t *testing.T) {
		for _, value := range []models.ResponseValue{models.BooleanValue(false), models.NumberValue(0), models.StringValue("x")} {
			assert.True(t, IsEnabled(question, []models.QuestionnaireResponse{responseFor("A", value)}))
		}
	})

	t.Run("explicit false asks for absence", func(t *testing.T) {
		absent := conditional("", models.EnableWhen{Question: "A", Operator: models.OperatorExists, Answer: false})
		assert.True(t, IsEnabled(absent, []models.QuestionnaireResponse{responseFor("A")}))
		assert.False(t, IsEnabled(absent, []models.QuestionnaireResponse{responseFor("A", models.StringValue("x"))}))
	})

	t.Run("missing answer defaults to presence", func(t *testing.T) {
		noAnswer := conditional("", models.EnableWhen{Question: "A", Operator: models.OperatorExists})
		assert.True(t, IsEnabled(noAnswer, []models.QuestionnaireResponse{responseFor("A", models.StringValue("x"))}))
	})
}

func TestEqualsNormalization(t *testing.T) {
	tests := []struct {
		name    string
		stored  models.ResponseValue
		answer  any
		enabled bool
	}{
		{"boolean true matches Yes", models.BooleanValue(true), "Yes", true},
		{"boolean false matches No", models.BooleanValue(false), "No", true},
		{"boolean matches boolean", models.BooleanValue(true), true, true},
		{"number matches string form", models.NumberValue(5), "5", true},
		{"decimal keeps fraction", models.NumberValue(2.5), "2.5", true},
		{"string number matches number", models.StringValue("5"), float64(5), true},
		{"coding code matches", models.CodingValue(models.Coding{Code: "yes", Display: "Yes please"}), "yes", true},
		{"coding answer object", models.StringValue("M"), map[string]any{"code": "M", "system": "gender"}, true},
		{"different value", models.StringValue("no"), "yes", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			question := conditional("", models.EnableWhen{Question: "A", Operator: models.OperatorEquals, Answer: tt.answer})
			assert.Equal(t, tt.enabled, IsEnabled(question, []models.QuestionnaireResponse{responseFor("A", tt.stored)}))
		})
	}
}

func TestNotEquals(t *testing.T) {
	question := conditional("", models.EnableWhen{Question: "A", Operator: models.OperatorNotEquals, Answer: "yes"})

	assert.True(t, IsEnabled(question, []models.QuestionnaireResponse{responseFor("A", models.StringValue("no"))}))
	assert.False(t, IsEnabled(question, []models.QuestionnaireResponse{responseFor("A", models.StringValue("yes"))}))
	assert.False(t, IsEnabled(question, []models.QuestionnaireResponse{responseFor("A")}), "unanswered dependency never matches")
}

func TestNumericOperators(t *testing.T) {
	tests := []struct {
		operator models.EnableWhenOperator
		stored   models.ResponseValue
		answer   any
		enabled  bool
	}{
		{models.OperatorGreater, models.NumberValue(39), 38, true},
		{models.OperatorGreater, models.NumberValue(38), 38, false},
		{models.OperatorGreaterOrEquals, models.NumberValue(38), "38", true},
		{models.OperatorLess, models.StringValue("12.5"), 13, true},
		{models.OperatorLessOrEquals, models.QuantityValue(70, &models.Coding{Code: "kg"}), 70.0, true},
		{models.OperatorGreater, models.StringValue("high"), 1, false},
		{models.OperatorGreater, models.BooleanValue(true), 0, false},
		{models.OperatorLess, models.NumberValue(1), "abc", false},
		{models.OperatorGreaterOrEquals, models.StringValue("NaN"), 5, false},
		{models.OperatorLessOrEquals, models.StringValue("nan"), 5, false},
		{models.OperatorGreater, models.StringValue("Inf"), 5, false},
		{models.OperatorLess, models.StringValue("-Infinity"), 5, false},
		{models.OperatorGreater, models.NumberValue(6), "Infinity", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.operator)+" "+Normalize(tt.stored.Value), func(t *testing.T) {
			question := conditional("", models.EnableWhen{Question: "A", Operator: tt.operator, Answer: tt.answer})
			assert.NotPanics(t, func() {
				assert.Equal(t, tt.enabled, IsEnabled(question, []models.QuestionnaireResponse{responseFor("A", tt.stored)}))
			})
		})
	}
}

func TestRepeatingAnswersMatchAnyEntry(t *testing.T) {
	question := conditional("", models.EnableWhen{Question: "A", Operator: models.OperatorGreater, Answer: 10})
	responses := []models.QuestionnaireResponse{responseFor("A", models.NumberValue(3), models.StringValue("n/a"), models.NumberValue(11))}
	assert.True(t, IsEnabled(question, responses))
}

func TestEnableBehavior(t *testing.T) {
	responses := []models.QuestionnaireResponse{
		responseFor("A", models.StringValue("yes")),
		responseFor("B", models.StringValue("no")),
	}
	conditions := []models.EnableWhen{
		{Question: "A", Operator: models.OperatorEquals, Answer: "yes"},
		{Question: "B", Operator: models.OperatorEquals, Answer: "yes"},
	}

	assert.False(t, IsEnabled(conditional(models.EnableBehaviorAll, conditions...), responses))
	assert.False(t, IsEnabled(conditional("", conditions...), responses), "all is the default")
	assert.True(t, IsEnabled(conditional(models.EnableBehaviorAny, conditions...), responses))
}

func TestUnknownOperatorIsFalse(t *testing.T) {
	question := conditional("", models.EnableWhen{Question: "A", Operator: "matches", Answer: "x"})
	assert.False(t, IsEnabled(question, []models.QuestionnaireResponse{responseFor("A", models.StringValue("x"))}))
}

func TestConditionFallsBackToQuestionID(t *testing.T) {
	question := conditional("", models.EnableWhen{Question: "id-A", Operator: models.OperatorEquals, Answer: "x"})
	assert.True(t, IsEnabled(question, []models.QuestionnaireResponse{responseFor("A", models.StringValue("x"))}))
}

func TestEnabledMapDisablesGroupSubtree(t *testing.T) {
	questions := []models.Question{
		{ID: "a", LinkID: "A", Type: models.QuestionTypeString},
		{
			ID: "g", LinkID: "G", Type: models.QuestionTypeGroup,
			EnableWhen: []models.EnableWhen{{Question: "A", Operator: models.OperatorEquals, Answer: "yes"}},
			Questions: []models.Question{
				{ID: "child", LinkID: "G.1", Type: models.QuestionTypeString},
			},
		},
	}

	disabled := EnabledMap(questions, []models.QuestionnaireResponse{responseFor("A", models.StringValue("no"))})
	assert.True(t, disabled["a"])
	assert.False(t, disabled["g"])
	assert.False(t, disabled["child"])

	enabled := EnabledMap(questions, []models.QuestionnaireResponse{responseFor("A", models.StringValue("yes"))})
	assert.True(t, enabled["g"])
	assert.True(t, enabled["child"])
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "Yes", Normalize(true))
	assert.Equal(t, "No", Normalize(false))
	assert.Equal(t, "3", Normalize(float64(3)))
	assert.Equal(t, "0.1", Normalize(0.1))
	assert.Equal(t, "", Normalize(nil))
	assert.Equal(t, "C1", Normalize(&models.Coding{Code: "C1"}))
}

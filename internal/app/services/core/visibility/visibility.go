package visibility

import (
	"carecapture-service/internal/app/models"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	normalizedYes = "Yes"
	normalizedNo  = "No"
)

// Evaluator answers enable_when conditions against one snapshot of responses.
// Build a new one whenever responses change.
type Evaluator struct {
	byLinkID     map[string][]models.ResponseValue
	byQuestionID map[string][]models.ResponseValue
}

func NewEvaluator(responses []models.QuestionnaireResponse) *Evaluator {
	e := &Evaluator{
		byLinkID:     make(map[string][]models.ResponseValue, len(responses)),
		byQuestionID: make(map[string][]models.ResponseValue, len(responses)),
	}
	for _, response := range responses {
		if response.LinkID != "" {
			if _, ok := e.byLinkID[response.LinkID]; !ok {
				e.byLinkID[response.LinkID] = response.Values
			}
		}
		e.byQuestionID[response.QuestionID] = response.Values
	}
	return e
}

// IsEnabled reports whether question is active for the given responses.
func IsEnabled(question models.Question, responses []models.QuestionnaireResponse) bool {
	return NewEvaluator(responses).IsEnabled(question)
}

func (e *Evaluator) IsEnabled(question models.Question) bool {
	if len(question.EnableWhen) == 0 {
		return true
	}

	anyMatch := question.EnableBehavior == models.EnableBehaviorAny
	for _, condition := range question.EnableWhen {
		result := e.evaluate(condition)
		if anyMatch && result {
			return true
		}
		if !anyMatch && !result {
			return false
		}
	}
	return !anyMatch
}

// EnabledMap resolves every question of the tree, groups included. Children of
// a disabled group are disabled regardless of their own conditions.
func (e *Evaluator) EnabledMap(questions []models.Question) map[string]bool {
	enabled := make(map[string]bool)
	e.fillEnabled(questions, true, enabled)
	return enabled
}

func EnabledMap(questions []models.Question, responses []models.QuestionnaireResponse) map[string]bool {
	return NewEvaluator(responses).EnabledMap(questions)
}

func (e *Evaluator) fillEnabled(questions []models.Question, parentEnabled bool, enabled map[string]bool) {
	for _, question := range questions {
		isEnabled := parentEnabled && e.IsEnabled(question)
		enabled[question.ID] = isEnabled
		if question.IsGroup() {
			e.fillEnabled(question.Questions, isEnabled, enabled)
		}
	}
}

func (e *Evaluator) answersFor(reference string) []models.ResponseValue {
	if values, ok := e.byLinkID[reference]; ok {
		return values
	}
	return e.byQuestionID[reference]
}

func (e *Evaluator) evaluate(condition models.EnableWhen) bool {
	values := e.answersFor(condition.Question)

	switch condition.Operator {
	case models.OperatorExists:
		return (len(values) > 0) == expectsPresence(condition.Answer)
	case models.OperatorEquals:
		return len(values) > 0 && anyEquals(values, condition.Answer)
	case models.OperatorNotEquals:
		return len(values) > 0 && !anyEquals(values, condition.Answer)
	case models.OperatorGreater:
		return anyCompares(values, condition.Answer, func(c int) bool { return c > 0 })
	case models.OperatorLess:
		return anyCompares(values, condition.Answer, func(c int) bool { return c < 0 })
	case models.OperatorGreaterOrEquals:
		return anyCompares(values, condition.Answer, func(c int) bool { return c >= 0 })
	case models.OperatorLessOrEquals:
		return anyCompares(values, condition.Answer, func(c int) bool { return c <= 0 })
	default:
		return false
	}
}

// expectsPresence reads the answer of an exists condition. Only an explicit
// false asks for absence.
func expectsPresence(answer any) bool {
	switch value := answer.(type) {
	case bool:
		return value
	case string:
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "false", "no":
			return false
		}
	}
	return true
}

func anyEquals(values []models.ResponseValue, answer any) bool {
	expected := Normalize(answer)
	for _, value := range values {
		if Normalize(value.Value) == expected {
			return true
		}
		if value.Coding != nil && value.Coding.Code != "" && value.Coding.Code == expected {
			return true
		}
	}
	return false
}

func anyCompares(values []models.ResponseValue, answer any, accept func(int) bool) bool {
	expected, ok := ToNumber(answer)
	if !ok {
		return false
	}
	for _, value := range values {
		actual, ok := ToNumber(value.Value)
		if !ok {
			continue
		}
		if accept(compare(actual, expected)) {
			return true
		}
	}
	return false
}

func compare(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Normalize renders an answer as the string used for equality: booleans
// become Yes/No, numbers their shortest decimal form, codings their code.
func Normalize(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return normalizedYes
		}
		return normalizedNo
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case models.Coding:
		return v.Code
	case *models.Coding:
		if v == nil {
			return ""
		}
		return v.Code
	case map[string]any:
		if code, ok := v["code"].(string); ok {
			return code
		}
		if inner, ok := v["value"]; ok {
			return Normalize(inner)
		}
	}
	return fmt.Sprintf("%v", value)
}

// ToNumber coerces an answer to a number. Booleans, empty strings, NaN,
// infinities and anything unparsable are not numbers.
func ToNumber(value any) (float64, bool) {
	number, ok := toNumber(value)
	if !ok || math.IsNaN(number) || math.IsInf(number, 0) {
		return 0, false
	}
	return number, true
}

func toNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	case map[string]any:
		if inner, ok := v["value"]; ok {
			return toNumber(inner)
		}
	}
	return 0, false
}

package formResponses

import (
	"carecapture-service/internal/app/models"
	"errors"
	"fmt"
)

var (
	ErrResponseNotFound       = errors.New("no response record for question")
	ErrStructuredCardinality  = errors.New("structured answers must be kept in a single value")
	ErrStructuredTypeMismatch = errors.New("structured value does not match the question type")
)

// ResponseUpdate replaces the answer of one question. A nil Note, BodySite or
// Method keeps the stored value.
type ResponseUpdate struct {
	QuestionID string
	Values     []models.ResponseValue
	Note       *string
	BodySite   *models.Coding
	Method     *models.Coding
}

// InitializeResponses returns one empty record per leaf question, depth-first
// in declaration order.
func InitializeResponses(questions []models.Question) []models.QuestionnaireResponse {
	responses := make([]models.QuestionnaireResponse, 0, CountLeafQuestions(questions))
	return appendLeafResponses(responses, questions)
}

func appendLeafResponses(responses []models.QuestionnaireResponse, questions []models.Question) []models.QuestionnaireResponse {
	for _, question := range questions {
		if question.IsGroup() {
			responses = appendLeafResponses(responses, question.Questions)
			continue
		}
		responses = append(responses, newEmptyResponse(question))
	}
	return responses
}

func newEmptyResponse(question models.Question) models.QuestionnaireResponse {
	response := models.QuestionnaireResponse{
		QuestionID: question.ID,
		LinkID:     question.LinkID,
		Values:     []models.ResponseValue{},
	}
	if question.IsStructured() {
		response.StructuredType = question.StructuredType
	}
	return response
}

func CountLeafQuestions(questions []models.Question) int {
	count := 0
	for _, question := range questions {
		if question.IsGroup() {
			count += CountLeafQuestions(question.Questions)
			continue
		}
		count++
	}
	return count
}

// FlattenLeafQuestions lists the leaf questions in the same order as
// InitializeResponses.
func FlattenLeafQuestions(questions []models.Question) []models.Question {
	leaves := make([]models.Question, 0, CountLeafQuestions(questions))
	var walk func([]models.Question)
	walk = func(questions []models.Question) {
		for _, question := range questions {
			if question.IsGroup() {
				walk(question.Questions)
				continue
			}
			leaves = append(leaves, question)
		}
	}
	walk(questions)
	return leaves
}

// FindQuestion looks a question up by id anywhere in the tree.
func FindQuestion(questions []models.Question, questionID string) (models.Question, bool) {
	for _, question := range questions {
		if question.ID == questionID {
			return question, true
		}
		if question.IsGroup() {
			if found, ok := FindQuestion(question.Questions, questionID); ok {
				return found, true
			}
		}
	}
	return models.Question{}, false
}

// FindResponse returns the record for questionID.
func FindResponse(responses []models.QuestionnaireResponse, questionID string) (models.QuestionnaireResponse, bool) {
	for _, response := range responses {
		if response.QuestionID == questionID {
			return response, true
		}
	}
	return models.QuestionnaireResponse{}, false
}

// UpdateResponse is the only way answers change. It returns a new slice with
// the record for update.QuestionID replaced; the input slice is not modified.
func UpdateResponse(responses []models.QuestionnaireResponse, update ResponseUpdate) ([]models.QuestionnaireResponse, error) {
	index := -1
	for i, response := range responses {
		if response.QuestionID == update.QuestionID {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, fmt.Errorf("%w %s", ErrResponseNotFound, update.QuestionID)
	}

	current := responses[index]
	if err := checkStructuredValues(current.StructuredType, update.Values); err != nil {
		return nil, fmt.Errorf("question %s: %w", update.QuestionID, err)
	}

	replaced := current
	replaced.Values = make([]models.ResponseValue, len(update.Values))
	copy(replaced.Values, update.Values)
	if update.Note != nil {
		replaced.Note = *update.Note
	}
	if update.BodySite != nil {
		replaced.BodySite = update.BodySite
	}
	if update.Method != nil {
		replaced.Method = update.Method
	}

	next := make([]models.QuestionnaireResponse, len(responses))
	copy(next, responses)
	next[index] = replaced
	return next, nil
}

func checkStructuredValues(structuredType models.StructuredType, values []models.ResponseValue) error {
	if structuredType == "" || len(values) == 0 {
		return nil
	}
	if len(values) > 1 {
		return ErrStructuredCardinality
	}
	if values[0].Value == nil {
		return nil
	}
	structured, ok := values[0].Structured()
	if !ok || structured.StructuredType() != structuredType {
		return ErrStructuredTypeMismatch
	}
	return nil
}

// ReconcileResponses rebuilds the record set for questions, carrying over
// answers of questions that still exist. Records of removed questions are
// dropped and new questions get empty records.
func ReconcileResponses(questions []models.Question, existing []models.QuestionnaireResponse) []models.QuestionnaireResponse {
	byQuestionID := make(map[string]models.QuestionnaireResponse, len(existing))
	for _, response := range existing {
		byQuestionID[response.QuestionID] = response
	}

	reconciled := InitializeResponses(questions)
	for i, fresh := range reconciled {
		previous, ok := byQuestionID[fresh.QuestionID]
		if !ok || previous.StructuredType != fresh.StructuredType {
			continue
		}
		previous.LinkID = fresh.LinkID
		if previous.Values == nil {
			previous.Values = []models.ResponseValue{}
		}
		reconciled[i] = previous
	}
	return reconciled
}

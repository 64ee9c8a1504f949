package questionnaires

import (
	"carecapture-service/internal/app/models"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// builtinQuestionnaires holds one single-question questionnaire per structured
// type, addressable by the structured type as slug.
var builtinQuestionnaires = buildBuiltinQuestionnaires()

func buildBuiltinQuestionnaires() map[string]models.QuestionnaireDetail {
	title := cases.Title(language.English)
	builtins := make(map[string]models.QuestionnaireDetail, len(models.AllStructuredTypes))
	for _, structuredType := range models.AllStructuredTypes {
		slug := string(structuredType)
		name := title.String(strings.ReplaceAll(slug, "_", " "))
		builtins[slug] = models.QuestionnaireDetail{
			ID:     slug,
			Slug:   slug,
			Title:  name,
			Status: "active",
			Questions: []models.Question{{
				ID:             slug,
				LinkID:         slug,
				Text:           name,
				Type:           models.QuestionTypeStructured,
				StructuredType: structuredType,
			}},
		}
	}
	return builtins
}

// BuiltinQuestionnaire returns a copy of the built-in definition for slug.
func BuiltinQuestionnaire(slug string) (*models.QuestionnaireDetail, bool) {
	builtin, ok := builtinQuestionnaires[slug]
	if !ok {
		return nil, false
	}
	questions := make([]models.Question, len(builtin.Questions))
	copy(questions, builtin.Questions)
	builtin.Questions = questions
	return &builtin, true
}

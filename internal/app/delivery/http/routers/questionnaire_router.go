package routers

import (
	"carecapture-service/internal/app/services/core/questionnaires"

	"github.com/go-chi/chi/v5"
)

func attachQuestionnaireRoutes(router chi.Router, questionnaireController *questionnaires.QuestionnaireController) {
	router.Get("/{questionnaire_slug}", questionnaireController.FindQuestionnaire)
}

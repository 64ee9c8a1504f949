package routers

import (
	"carecapture-service/internal/app/delivery/http/middlewares"
	formDrafts "carecapture-service/internal/app/services/core/form_drafts"

	"github.com/go-chi/chi/v5"
)

func attachFormDraftRoutes(router chi.Router, submitLimiter *middlewares.RateLimiter, formDraftController *formDrafts.FormDraftController) {
	router.Post("/", formDraftController.CreateFormDraft)
	router.Get("/{draft_id}", formDraftController.FindFormDraftByID)
	router.Delete("/{draft_id}", formDraftController.DeleteFormDraft)
	router.Post("/{draft_id}/questionnaires", formDraftController.AttachQuestionnaire)
	router.Put("/{draft_id}/forms/{questionnaire_id}/responses/{question_id}", formDraftController.UpdateQuestionResponse)
	router.Post("/{draft_id}/validate", formDraftController.ValidateFormDraft)
	router.With(submitLimiter.Limit).Post("/{draft_id}/submit", formDraftController.SubmitFormDraft)
}

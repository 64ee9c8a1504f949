package questionnaires

import (
	"carecapture-service/internal/app/contracts"
	"carecapture-service/internal/pkg/constvars"
	"carecapture-service/internal/pkg/exceptions"
	"carecapture-service/internal/pkg/utils"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type QuestionnaireController struct {
	Log                  *zap.Logger
	QuestionnaireUsecase contracts.QuestionnaireUsecase
	RequestTimeout       time.Duration
}

func NewQuestionnaireController(logger *zap.Logger, questionnaireUsecase contracts.QuestionnaireUsecase, requestTimeout time.Duration) *QuestionnaireController {
	return &QuestionnaireController{
		Log:                  logger,
		QuestionnaireUsecase: questionnaireUsecase,
		RequestTimeout:       requestTimeout,
	}
}

func (ctrl *QuestionnaireController) FindQuestionnaire(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, constvars.URLParamQuestionnaireSlug)
	if err := utils.ValidateUrlParam(slug); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(err, constvars.URLParamQuestionnaireSlug))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	response, err := ctrl.QuestionnaireUsecase.FindQuestionnaire(ctx, slug)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FindQuestionnaireSuccessMessage, response)
}

package formDrafts

import (
	"carecapture-service/internal/app/contracts"
	"carecapture-service/internal/app/models"
	"carecapture-service/internal/pkg/constvars"
	"carecapture-service/internal/pkg/dto/requests"
	"carecapture-service/internal/pkg/exceptions"
	"carecapture-service/internal/pkg/utils"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type FormDraftController struct {
	Log              *zap.Logger
	FormDraftUsecase contracts.FormDraftUsecase
	RequestTimeout   time.Duration
}

func NewFormDraftController(logger *zap.Logger, formDraftUsecase contracts.FormDraftUsecase, requestTimeout time.Duration) *FormDraftController {
	return &FormDraftController{
		Log:              logger,
		FormDraftUsecase: formDraftUsecase,
		RequestTimeout:   requestTimeout,
	}
}

func (ctrl *FormDraftController) CreateFormDraft(w http.ResponseWriter, r *http.Request) {
	request := new(requests.CreateFormDraft)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	utils.SanitizeCreateFormDraftRequest(request)

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	response, err := ctrl.FormDraftUsecase.CreateFormDraft(ctx, request)
	if err != nil {
		ctrl.buildError(w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateFormDraftSuccessMessage, response)
}

func (ctrl *FormDraftController) FindFormDraftByID(w http.ResponseWriter, r *http.Request) {
	draftID, ok := ctrl.draftIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	response, err := ctrl.FormDraftUsecase.FindFormDraftByID(ctx, draftID)
	if err != nil {
		ctrl.buildError(w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FindFormDraftSuccessMessage, response)
}

func (ctrl *FormDraftController) AttachQuestionnaire(w http.ResponseWriter, r *http.Request) {
	draftID, ok := ctrl.draftIDParam(w, r)
	if !ok {
		return
	}

	request := new(requests.AttachQuestionnaire)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	utils.SanitizeAttachQuestionnaireRequest(request)

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	response, err := ctrl.FormDraftUsecase.AttachQuestionnaire(ctx, draftID, request)
	if err != nil {
		ctrl.buildError(w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AttachQuestionnaireSuccessMessage, response)
}

func (ctrl *FormDraftController) UpdateQuestionResponse(w http.ResponseWriter, r *http.Request) {
	draftID, ok := ctrl.draftIDParam(w, r)
	if !ok {
		return
	}

	questionnaireID := chi.URLParam(r, constvars.URLParamQuestionnaireID)
	if err := utils.ValidateUrlParam(questionnaireID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(err, constvars.URLParamQuestionnaireID))
		return
	}

	questionID := chi.URLParam(r, constvars.URLParamQuestionID)
	if err := utils.ValidateUrlParam(questionID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(err, constvars.URLParamQuestionID))
		return
	}

	request := new(requests.UpdateQuestionResponse)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	response, err := ctrl.FormDraftUsecase.UpdateQuestionResponse(ctx, draftID, questionnaireID, questionID, request)
	if err != nil {
		ctrl.buildError(w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateFormResponseSuccessMessage, response)
}

func (ctrl *FormDraftController) ValidateFormDraft(w http.ResponseWriter, r *http.Request) {
	draftID, ok := ctrl.draftIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	response, err := ctrl.FormDraftUsecase.ValidateFormDraft(ctx, draftID)
	if err != nil {
		ctrl.buildError(w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ValidateFormDraftSuccessMessage, response)
}

// SubmitFormDraft answers 200 when every request was applied, 422 when local
// validation stopped the submission and 207 when the backend rejected part
// of the batch.
func (ctrl *FormDraftController) SubmitFormDraft(w http.ResponseWriter, r *http.Request) {
	draftID, ok := ctrl.draftIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	result, err := ctrl.FormDraftUsecase.SubmitFormDraft(ctx, draftID)
	if err != nil {
		ctrl.buildError(w, err)
		return
	}

	switch result.State {
	case models.SubmissionStateInvalid:
		utils.BuildFailureResponse(w, constvars.StatusUnprocessableEntity, constvars.SubmitFormDraftInvalidMessage, result)
	case models.SubmissionStatePartiallyFailed:
		utils.BuildFailureResponse(w, constvars.StatusMultiStatus, constvars.SubmitFormDraftPartialMessage, result)
	default:
		utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SubmitFormDraftSuccessMessage, result)
	}
}

func (ctrl *FormDraftController) DeleteFormDraft(w http.ResponseWriter, r *http.Request) {
	draftID, ok := ctrl.draftIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	if err := ctrl.FormDraftUsecase.DeleteFormDraft(ctx, draftID); err != nil {
		ctrl.buildError(w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteFormDraftSuccessMessage, nil)
}

func (ctrl *FormDraftController) draftIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	draftID := chi.URLParam(r, constvars.URLParamDraftID)
	if err := utils.ValidateUrlParamID(draftID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(err, constvars.URLParamDraftID))
		return "", false
	}
	return draftID, true
}

func (ctrl *FormDraftController) buildError(w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(ctrl.Log, w, err)
}

package formDrafts

import (
	"carecapture-service/internal/app/config"
	"carecapture-service/internal/app/contracts"
	"carecapture-service/internal/app/models"
	formResponses "carecapture-service/internal/app/services/core/form_responses"
	questionWalker "carecapture-service/internal/app/services/core/question_walker"
	"carecapture-service/internal/app/services/core/visibility"
	"carecapture-service/internal/pkg/constvars"
	"carecapture-service/internal/pkg/dto/requests"
	"carecapture-service/internal/pkg/dto/responses"
	"carecapture-service/internal/pkg/exceptions"
	"carecapture-service/internal/pkg/utils"
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type formDraftUsecase struct {
	FormDraftRepository  contracts.FormDraftRepository
	QuestionnaireUsecase contracts.QuestionnaireUsecase
	SubmissionUsecase    contracts.SubmissionUsecase
	LockerService        contracts.LockerService
	EventPublisher       contracts.SubmissionEventPublisher
	InternalConfig       *config.InternalConfig
	Log                  *zap.Logger
}

func NewFormDraftUsecase(
	formDraftRepository contracts.FormDraftRepository,
	questionnaireUsecase contracts.QuestionnaireUsecase,
	submissionUsecase contracts.SubmissionUsecase,
	lockerService contracts.LockerService,
	eventPublisher contracts.SubmissionEventPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.FormDraftUsecase {
	return &formDraftUsecase{
		FormDraftRepository:  formDraftRepository,
		QuestionnaireUsecase: questionnaireUsecase,
		SubmissionUsecase:    submissionUsecase,
		LockerService:        lockerService,
		EventPublisher:       eventPublisher,
		InternalConfig:       internalConfig,
		Log:                  logger,
	}
}

func (uc *formDraftUsecase) CreateFormDraft(ctx context.Context, request *requests.CreateFormDraft) (*responses.FormDraft, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("formDraftUsecase.CreateFormDraft called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
		zap.Strings("questionnaire_slugs", request.QuestionnaireSlugs),
	)

	forms := make([]models.QuestionnaireFormState, 0, len(request.QuestionnaireSlugs))
	seen := make(map[string]bool, len(request.QuestionnaireSlugs))
	for _, slug := range request.QuestionnaireSlugs {
		questionnaire, err := uc.QuestionnaireUsecase.FindQuestionnaire(ctx, slug)
		if err != nil {
			uc.Log.Error("formDraftUsecase.CreateFormDraft error calling QuestionnaireUsecase.FindQuestionnaire",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingQuestionnaireSlug, slug),
				zap.Error(err),
			)
			return nil, err
		}
		if seen[questionnaire.ID] {
			continue
		}
		seen[questionnaire.ID] = true
		forms = append(forms, newFormState(*questionnaire))
	}

	draft := &models.FormDraft{
		ID: utils.GenerateDraftID(),
		Context: models.RequestContext{
			PatientID:   request.PatientID,
			EncounterID: request.EncounterID,
			FacilityID:  request.FacilityID,
		},
		Forms:     forms,
		LastState: models.SubmissionStateIdle,
	}
	draft.SetCreatedAtUpdatedAt()
	draft.Touch(uc.draftTTL())

	if err := uc.FormDraftRepository.Create(ctx, draft); err != nil {
		uc.Log.Error("formDraftUsecase.CreateFormDraft error calling FormDraftRepository.Create",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("formDraftUsecase.CreateFormDraft succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDraftIDKey, draft.ID),
	)
	return buildFormDraftResponse(draft), nil
}

func (uc *formDraftUsecase) FindFormDraftByID(ctx context.Context, draftID string) (*responses.FormDraft, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("formDraftUsecase.FindFormDraftByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDraftIDKey, draftID),
	)

	draft, err := uc.findDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	return buildFormDraftResponse(draft), nil
}

// AttachQuestionnaire adds a questionnaire to the draft. Attaching one that is
// already present refreshes its definition and keeps the answers of questions
// that still exist.
func (uc *formDraftUsecase) AttachQuestionnaire(ctx context.Context, draftID string, request *requests.AttachQuestionnaire) (*responses.FormDraft, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("formDraftUsecase.AttachQuestionnaire called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDraftIDKey, draftID),
		zap.String(constvars.LoggingQuestionnaireSlug, request.QuestionnaireSlug),
	)

	draft, err := uc.findDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}

	questionnaire, err := uc.QuestionnaireUsecase.FindQuestionnaire(ctx, request.QuestionnaireSlug)
	if err != nil {
		uc.Log.Error("formDraftUsecase.AttachQuestionnaire error calling QuestionnaireUsecase.FindQuestionnaire",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if index := draft.FindForm(questionnaire.ID); index >= 0 {
		draft.Forms[index] = models.QuestionnaireFormState{
			Questionnaire: *questionnaire,
			Responses:     formResponses.ReconcileResponses(questionnaire.Questions, draft.Forms[index].Responses),
			Errors:        []models.QuestionValidationError{},
		}
	} else {
		draft.Forms = append(draft.Forms, newFormState(*questionnaire))
	}

	if err := uc.saveDraft(ctx, draft); err != nil {
		uc.Log.Error("formDraftUsecase.AttachQuestionnaire error calling FormDraftRepository.Update",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("formDraftUsecase.AttachQuestionnaire succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireIDKey, questionnaire.ID),
	)
	return buildFormDraftResponse(draft), nil
}

func (uc *formDraftUsecase) UpdateQuestionResponse(ctx context.Context, draftID, questionnaireID, questionID string, request *requests.UpdateQuestionResponse) (*responses.UpdateQuestionResponse, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("formDraftUsecase.UpdateQuestionResponse called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDraftIDKey, draftID),
		zap.String(constvars.LoggingQuestionnaireIDKey, questionnaireID),
		zap.String(constvars.LoggingQuestionIDKey, questionID),
	)

	draft, err := uc.findDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}

	index := draft.FindForm(questionnaireID)
	if index < 0 {
		return nil, exceptions.ErrQuestionNotFound(nil, questionID, questionnaireID)
	}
	form := draft.Forms[index]

	updated, err := formResponses.UpdateResponse(form.Responses, formResponses.ResponseUpdate{
		QuestionID: questionID,
		Values:     request.Values,
		Note:       request.Note,
		BodySite:   request.BodySite,
		Method:     request.Method,
	})
	if err != nil {
		uc.Log.Error("formDraftUsecase.UpdateQuestionResponse error applying update",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if errors.Is(err, formResponses.ErrResponseNotFound) {
			return nil, exceptions.ErrQuestionNotFound(err, questionID, questionnaireID)
		}
		return nil, exceptions.ErrInvalidResponseValue(err, questionID)
	}

	form.Responses = updated
	form.Errors = dropQuestionErrors(form.Errors, questionID)
	draft.Forms[index] = form

	if err := uc.saveDraft(ctx, draft); err != nil {
		uc.Log.Error("formDraftUsecase.UpdateQuestionResponse error calling FormDraftRepository.Update",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	var warnings []models.DuplicateWarning
	if response, ok := formResponses.FindResponse(updated, questionID); ok {
		if structured, ok := response.StructuredValue(); ok {
			warnings = formResponses.DetectDuplicateCodes(questionID, structured)
		}
	}

	uc.Log.Info("formDraftUsecase.UpdateQuestionResponse succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingWarningCountKey, len(warnings)),
	)
	return &responses.UpdateQuestionResponse{
		Form:     form,
		Enabled:  visibility.EnabledMap(form.Questionnaire.Questions, form.Responses),
		Warnings: warnings,
	}, nil
}

func (uc *formDraftUsecase) ValidateFormDraft(ctx context.Context, draftID string) (*responses.ValidateFormDraft, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("formDraftUsecase.ValidateFormDraft called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDraftIDKey, draftID),
	)

	draft, err := uc.findDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}

	forms, firstInvalid := questionWalker.ValidateForms(draft.Forms)
	draft.Forms = forms
	if firstInvalid != "" {
		draft.LastState = models.SubmissionStateInvalid
	} else {
		draft.LastState = models.SubmissionStateIdle
	}

	if err := uc.saveDraft(ctx, draft); err != nil {
		uc.Log.Error("formDraftUsecase.ValidateFormDraft error calling FormDraftRepository.Update",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("formDraftUsecase.ValidateFormDraft succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFirstInvalidQuestID, firstInvalid),
	)
	return &responses.ValidateFormDraft{
		Valid:                  firstInvalid == "",
		FirstInvalidQuestionID: firstInvalid,
		Forms:                  forms,
	}, nil
}

// SubmitFormDraft runs the submission under a per-draft lock. A fully applied
// draft is deleted; any other outcome is written back so the client can fix
// and retry.
func (uc *formDraftUsecase) SubmitFormDraft(ctx context.Context, draftID string) (*models.SubmissionResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("formDraftUsecase.SubmitFormDraft called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDraftIDKey, draftID),
	)

	lockKey := fmt.Sprintf(constvars.RedisKeySubmissionLockFormat, draftID)
	lockTTL := time.Duration(uc.InternalConfig.Questionnaire.SubmissionLockTTLInSeconds) * time.Second
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, lockTTL)
	if err != nil {
		uc.Log.Error("formDraftUsecase.SubmitFormDraft error calling LockerService.TryLock",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrSubmissionInProgress(nil, draftID)
	}
	defer func() {
		if err := uc.LockerService.Unlock(context.WithoutCancel(ctx), lockKey, lockValue); err != nil {
			uc.Log.Warn("formDraftUsecase.SubmitFormDraft error releasing lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, lockKey),
				zap.Error(err),
			)
		}
	}()

	draft, err := uc.findDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}

	result, err := uc.SubmissionUsecase.Submit(ctx, draft.Forms, draft.Context)
	if err != nil {
		uc.Log.Error("formDraftUsecase.SubmitFormDraft error calling SubmissionUsecase.Submit",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if result != nil {
			draft.LastState = result.State
			if saveErr := uc.saveDraft(context.WithoutCancel(ctx), draft); saveErr != nil {
				uc.Log.Warn("formDraftUsecase.SubmitFormDraft error recording failed state",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.Error(saveErr),
				)
			}
		}
		return nil, err
	}

	if result.State == models.SubmissionStateSucceeded {
		uc.publishSubmitted(ctx, requestID, draft, result)
		if err := uc.FormDraftRepository.Delete(ctx, draftID); err != nil {
			uc.Log.Warn("formDraftUsecase.SubmitFormDraft error deleting submitted draft",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	} else {
		draft.Forms = result.Forms
		draft.LastState = result.State
		if err := uc.saveDraft(ctx, draft); err != nil {
			uc.Log.Error("formDraftUsecase.SubmitFormDraft error calling FormDraftRepository.Update",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, err
		}
	}

	uc.Log.Info("formDraftUsecase.SubmitFormDraft succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubmissionStateKey, string(result.State)),
	)
	return result, nil
}

func (uc *formDraftUsecase) DeleteFormDraft(ctx context.Context, draftID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("formDraftUsecase.DeleteFormDraft called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDraftIDKey, draftID),
	)

	if _, err := uc.findDraft(ctx, draftID); err != nil {
		return err
	}

	if err := uc.FormDraftRepository.Delete(ctx, draftID); err != nil {
		uc.Log.Error("formDraftUsecase.DeleteFormDraft error calling FormDraftRepository.Delete",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.Log.Info("formDraftUsecase.DeleteFormDraft succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return nil
}

func (uc *formDraftUsecase) findDraft(ctx context.Context, draftID string) (*models.FormDraft, error) {
	draft, err := uc.FormDraftRepository.FindByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, exceptions.ErrFormDraftNotFound(nil, draftID)
	}
	return draft, nil
}

func (uc *formDraftUsecase) saveDraft(ctx context.Context, draft *models.FormDraft) error {
	draft.Touch(uc.draftTTL())
	return uc.FormDraftRepository.Update(ctx, draft)
}

func (uc *formDraftUsecase) draftTTL() time.Duration {
	return time.Duration(uc.InternalConfig.Questionnaire.DraftTTLInHours) * time.Hour
}

func (uc *formDraftUsecase) publishSubmitted(ctx context.Context, requestID string, draft *models.FormDraft, result *models.SubmissionResult) {
	questionnaireIDs := make([]string, len(draft.Forms))
	for i, form := range draft.Forms {
		questionnaireIDs[i] = form.Questionnaire.ID
	}
	event := models.SubmissionEvent{
		DraftID:          draft.ID,
		Context:          draft.Context,
		QuestionnaireIDs: questionnaireIDs,
		RequestCount:     len(result.Requests),
		SubmittedAt:      time.Now(),
	}
	if err := uc.EventPublisher.PublishSubmitted(ctx, event); err != nil {
		uc.Log.Warn("formDraftUsecase.SubmitFormDraft error publishing submission event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
}

func newFormState(questionnaire models.QuestionnaireDetail) models.QuestionnaireFormState {
	return models.QuestionnaireFormState{
		Questionnaire: questionnaire,
		Responses:     formResponses.InitializeResponses(questionnaire.Questions),
		Errors:        []models.QuestionValidationError{},
	}
}

// dropQuestionErrors removes errors raised for questionID; they are stale
// once its answer changes.
func dropQuestionErrors(errs []models.QuestionValidationError, questionID string) []models.QuestionValidationError {
	kept := make([]models.QuestionValidationError, 0, len(errs))
	for _, err := range errs {
		if err.QuestionID != questionID {
			kept = append(kept, err)
		}
	}
	return kept
}

func buildFormDraftResponse(draft *models.FormDraft) *responses.FormDraft {
	enabled := make(map[string]map[string]bool, len(draft.Forms))
	for _, form := range draft.Forms {
		enabled[form.Questionnaire.ID] = visibility.EnabledMap(form.Questionnaire.Questions, form.Responses)
	}
	return &responses.FormDraft{
		ID:        draft.ID,
		Context:   draft.Context,
		Forms:     draft.Forms,
		Enabled:   enabled,
		LastState: draft.LastState,
	}
}

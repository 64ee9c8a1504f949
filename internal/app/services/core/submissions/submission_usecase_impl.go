package submissions

import (
	"carecapture-service/internal/app/contracts"
	"carecapture-service/internal/app/models"
	questionWalker "carecapture-service/internal/app/services/core/question_walker"
	requestCompiler "carecapture-service/internal/app/services/core/request_compiler"
	"carecapture-service/internal/pkg/constvars"
	"carecapture-service/internal/pkg/exceptions"
	"carecapture-service/internal/pkg/utils"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type submissionUsecase struct {
	BatchClient contracts.BatchBackendClient
	Compiler    StructuredCompiler
	Log         *zap.Logger
}

func NewSubmissionUsecase(
	batchClient contracts.BatchBackendClient,
	compiler StructuredCompiler,
	logger *zap.Logger,
) contracts.SubmissionUsecase {
	return &submissionUsecase{
		BatchClient: batchClient,
		Compiler:    compiler,
		Log:         logger,
	}
}

// compileTask is one slot of the compile fan-out. Exactly one of value or
// plain is set.
type compileTask struct {
	formIndex  int
	questionID string
	value     models.StructuredValue
	plain     *models.Request
}

// Submit validates every form, compiles the enabled answers and sends them in
// one batch. Invalid forms stop the run before any network call. A non-nil
// error always comes with a result in the failed state.
func (uc *submissionUsecase) Submit(ctx context.Context, forms []models.QuestionnaireFormState, requestContext models.RequestContext) (*models.SubmissionResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("submissionUsecase.Submit called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, requestContext.PatientID),
		zap.String(constvars.LoggingEncounterIDKey, requestContext.EncounterID),
		zap.Int("form_count", len(forms)),
	)

	uc.logState(requestID, models.SubmissionStateValidating)
	validated, firstInvalid := questionWalker.ValidateForms(forms)
	if firstInvalid != "" {
		uc.Log.Info("submissionUsecase.Submit validation failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingFirstInvalidQuestID, firstInvalid),
			zap.Int(constvars.LoggingErrorCountKey, countErrors(validated)),
		)
		return &models.SubmissionResult{
			State:                  models.SubmissionStateInvalid,
			Forms:                  validated,
			FirstInvalidQuestionID: firstInvalid,
		}, nil
	}

	uc.logState(requestID, models.SubmissionStateCompiling)
	requests, origins, err := uc.compile(ctx, validated, requestContext)
	if err != nil {
		uc.Log.Error("submissionUsecase.Submit error compiling requests",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return failedResult(validated, nil, err), compileError(err)
	}

	if len(requests) == 0 {
		uc.Log.Info("submissionUsecase.Submit nothing to send",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return &models.SubmissionResult{State: models.SubmissionStateSucceeded, Forms: validated}, nil
	}

	uc.logState(requestID, models.SubmissionStateSubmitting)
	var response *models.BatchResponse
	err = utils.LogOperation(uc.Log, "batchBackendClient.ExecuteBatch", requestID, func() error {
		var executeErr error
		response, executeErr = uc.BatchClient.ExecuteBatch(ctx, models.BatchRequest{Requests: requests})
		return executeErr
	})
	if err != nil {
		uc.Log.Error("submissionUsecase.Submit error executing batch",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingRequestCountKey, len(requests)),
			zap.Error(err),
		)
		return failedResult(validated, requests, err), err
	}

	result := mapResults(validated, requests, origins, response.Results)
	uc.Log.Info("submissionUsecase.Submit succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubmissionStateKey, string(result.State)),
		zap.Int(constvars.LoggingRequestCountKey, len(requests)),
		zap.Int(constvars.LoggingFailedRequestsKey, len(result.ServerErrors)),
	)
	return result, nil
}

func (uc *submissionUsecase) logState(requestID string, state models.SubmissionState) {
	uc.Log.Debug("submissionUsecase.Submit state changed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubmissionStateKey, string(state)),
	)
}

// compile runs every task concurrently and joins the results in task order.
// origins[i] records the form and structured question requests[i] came from.
func (uc *submissionUsecase) compile(ctx context.Context, forms []models.QuestionnaireFormState, requestContext models.RequestContext) ([]models.Request, []requestOrigin, error) {
	tasks := collectTasks(forms, requestContext)
	slots := make([][]models.Request, len(tasks))

	g, gctx := errgroup.WithContext(ctx)
	for i, task := range tasks {
		if task.plain != nil {
			slots[i] = []models.Request{*task.plain}
			continue
		}
		i, task := i, task
		g.Go(func() error {
			compiled, err := uc.Compiler.Compile(gctx, task.value, requestContext)
			if err != nil {
				return err
			}
			slots[i] = compiled
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var requests []models.Request
	var origins []requestOrigin
	for i, slot := range slots {
		for _, request := range slot {
			requests = append(requests, request)
			origins = append(origins, requestOrigin{formIndex: tasks[i].formIndex, questionID: tasks[i].questionID})
		}
	}
	return requests, origins, nil
}

// collectTasks walks the forms in declaration order. Each form contributes its
// non-empty structured answers followed by its plain submission.
func collectTasks(forms []models.QuestionnaireFormState, requestContext models.RequestContext) []compileTask {
	var tasks []compileTask
	for formIndex, form := range forms {
		enabled := questionWalker.EnabledLeafResponses(form.Questionnaire.Questions, form.Responses)
		for _, response := range enabled {
			value, ok := response.StructuredValue()
			if !ok || value.Len() == 0 {
				continue
			}
			tasks = append(tasks, compileTask{formIndex: formIndex, questionID: response.QuestionID, value: value})
		}
		if plain, ok := requestCompiler.CompileQuestionnaireSubmission(form.Questionnaire, enabled, requestContext); ok {
			tasks = append(tasks, compileTask{formIndex: formIndex, plain: &plain})
		}
	}
	return tasks
}

func compileError(err error) error {
	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		return err
	}
	return exceptions.ErrCompileRequests(err)
}

func failedResult(forms []models.QuestionnaireFormState, requests []models.Request, err error) *models.SubmissionResult {
	message := err.Error()
	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		message = customErr.ClientMessage
	}
	return &models.SubmissionResult{
		State:          models.SubmissionStateFailed,
		Forms:          forms,
		Requests:       requests,
		FailureMessage: message,
	}
}

// mapResults aligns results with requests by position. Failed entries that
// name a question are merged into that question's form; every failed entry
// also becomes a top-level message.
func mapResults(forms []models.QuestionnaireFormState, requests []models.Request, origins []requestOrigin, results []models.BatchResult) *models.SubmissionResult {
	mapped := make([]models.QuestionnaireFormState, len(forms))
	for i, form := range forms {
		mapped[i] = form
		mapped[i].Errors = nil
	}

	result := &models.SubmissionResult{
		State:    models.SubmissionStateSucceeded,
		Requests: requests,
		Results:  results,
	}

	for i, request := range requests {
		var entry models.BatchResult
		if i < len(results) {
			entry = results[i]
		} else {
			entry = models.BatchResult{ReferenceID: request.ReferenceID}
		}
		if entry.IsSuccess() {
			continue
		}
		if entry.ReferenceID == "" {
			entry.ReferenceID = request.ReferenceID
		}
		result.ServerErrors = append(result.ServerErrors, mapFailure(mapped, origins[i], entry)...)
	}

	if len(result.ServerErrors) > 0 {
		result.State = models.SubmissionStatePartiallyFailed
		for _, serverErr := range result.ServerErrors {
			if serverErr.Attributed {
				result.FirstInvalidQuestionID = serverErr.QuestionID
				break
			}
		}
	}
	result.Forms = mapped
	return result
}

// requestOrigin points a compiled request back at its form and, for structured
// requests, the question whose answer produced it.
type requestOrigin struct {
	formIndex  int
	questionID string
}

// mapFailure merges question scoped errors into their form. Errors without a
// question id stay top-level but still carry the structured question the
// request came from, unattributed.
func mapFailure(forms []models.QuestionnaireFormState, origin requestOrigin, entry models.BatchResult) []models.ServerValidationError {
	entries, detail := entry.Errors()
	title, questionnaireID := titleFor(forms, entry.ReferenceID)

	var serverErrors []models.ServerValidationError
	for _, resultErr := range entries {
		message := resultErr.Message()
		if message == "" {
			message = detail
		}
		if resultErr.QuestionID == "" {
			serverErrors = append(serverErrors, models.ServerValidationError{
				ReferenceID:        entry.ReferenceID,
				QuestionnaireID:    questionnaireID,
				QuestionnaireTitle: title,
				QuestionID:         origin.questionID,
				StatusCode:         entry.StatusCode,
				Message:            message,
			})
			continue
		}

		formIndex := owningForm(forms, origin.formIndex, resultErr.QuestionID)
		forms[formIndex].Errors = append(forms[formIndex].Errors, models.QuestionValidationError{
			QuestionID: resultErr.QuestionID,
			Error:      message,
		})
		serverErrors = append(serverErrors, models.ServerValidationError{
			ReferenceID:        entry.ReferenceID,
			QuestionnaireID:    forms[formIndex].Questionnaire.ID,
			QuestionnaireTitle: forms[formIndex].Questionnaire.Title,
			QuestionID:         resultErr.QuestionID,
			StatusCode:         entry.StatusCode,
			Message:            message,
			Attributed:         true,
		})
	}

	if len(serverErrors) == 0 {
		message := detail
		if message == "" {
			message = failureMessage(entry.StatusCode)
		}
		serverErrors = append(serverErrors, models.ServerValidationError{
			ReferenceID:        entry.ReferenceID,
			QuestionnaireID:    questionnaireID,
			QuestionnaireTitle: title,
			QuestionID:         origin.questionID,
			StatusCode:         entry.StatusCode,
			Message:            message,
		})
	}
	return serverErrors
}

// owningForm prefers the form the request came from and falls back to any
// form that declares questionID.
func owningForm(forms []models.QuestionnaireFormState, origin int, questionID string) int {
	if declaresQuestion(forms[origin].Questionnaire.Questions, questionID) {
		return origin
	}
	for i, form := range forms {
		if declaresQuestion(form.Questionnaire.Questions, questionID) {
			return i
		}
	}
	return origin
}

func declaresQuestion(questions []models.Question, questionID string) bool {
	for _, question := range questions {
		if question.ID == questionID {
			return true
		}
		if declaresQuestion(question.Questions, questionID) {
			return true
		}
	}
	return false
}

// titleFor names a reference id: the questionnaire it identifies, or the id
// itself in title case.
func titleFor(forms []models.QuestionnaireFormState, referenceID string) (string, string) {
	for _, form := range forms {
		if form.Questionnaire.ID == referenceID {
			return form.Questionnaire.Title, form.Questionnaire.ID
		}
	}
	return TitleCase(referenceID), ""
}

// TitleCase turns an identifier such as "allergy_intolerance" into
// "Allergy Intolerance".
func TitleCase(identifier string) string {
	words := strings.NewReplacer("_", " ", "-", " ").Replace(identifier)
	return cases.Title(language.English).String(words)
}

func failureMessage(statusCode int) string {
	if statusCode == 0 {
		return "No response was received for this request"
	}
	return fmt.Sprintf("Request failed with status %d", statusCode)
}

func countErrors(forms []models.QuestionnaireFormState) int {
	total := 0
	for _, form := range forms {
		total += len(form.Errors)
	}
	return total
}

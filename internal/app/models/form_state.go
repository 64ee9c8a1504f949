package models

import (
	"time"

	"github.com/goccy/go-json"
)

// QuestionValidationError points at a question, optionally narrowed to one
// field of one item of a structured list.
type QuestionValidationError struct {
	QuestionID string `json:"question_id"`
	FieldKey   string `json:"field_key,omitempty"`
	Index      *int   `json:"index,omitempty"`
	Error      string `json:"error"`
}

type QuestionnaireFormState struct {
	Questionnaire QuestionnaireDetail       `json:"questionnaire"`
	Responses     []QuestionnaireResponse   `json:"responses"`
	Errors        []QuestionValidationError `json:"errors"`
}

// RequestContext identifies who and where structured writes belong to.
type RequestContext struct {
	PatientID   string `json:"patient_id" bson:"patientId"`
	EncounterID string `json:"encounter_id,omitempty" bson:"encounterId,omitempty"`
	FacilityID  string `json:"facility_id,omitempty" bson:"facilityId,omitempty"`
}

// Request is one backend write executed by the batch endpoint.
type Request struct {
	URL         string `json:"url"`
	Method      string `json:"method"`
	Body        any    `json:"body"`
	ReferenceID string `json:"reference_id"`
}

type BatchRequest struct {
	Requests []Request `json:"requests"`
}

type BatchResponse struct {
	Results []BatchResult `json:"results"`
}

type BatchResult struct {
	ReferenceID string          `json:"reference_id"`
	StatusCode  int             `json:"status_code"`
	Data        json.RawMessage `json:"data,omitempty"`
}

func (r BatchResult) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// BatchResultError is one entry of data.errors on a failed batch result.
type BatchResultError struct {
	QuestionID string `json:"question_id,omitempty"`
	Msg        string `json:"msg,omitempty"`
	Error      string `json:"error,omitempty"`
	Type       string `json:"type,omitempty"`
}

func (e BatchResultError) Message() string {
	if e.Msg != "" {
		return e.Msg
	}
	return e.Error
}

type batchResultData struct {
	Errors []BatchResultError `json:"errors"`
	Detail string             `json:"detail"`
}

// Errors decodes data.errors. Data of any other shape yields no entries and,
// when present, its detail message.
func (r BatchResult) Errors() ([]BatchResultError, string) {
	if len(r.Data) == 0 {
		return nil, ""
	}
	var data batchResultData
	if err := json.Unmarshal(r.Data, &data); err != nil {
		return nil, ""
	}
	return data.Errors, data.Detail
}

// ServerValidationError is a top-level message for one failed batch entry.
// When Attributed is false, QuestionID is the structured question whose
// request failed, if any.
type ServerValidationError struct {
	ReferenceID        string `json:"reference_id"`
	QuestionnaireID    string `json:"questionnaire_id,omitempty"`
	QuestionnaireTitle string `json:"questionnaire_title"`
	QuestionID         string `json:"question_id,omitempty"`
	StatusCode         int    `json:"status_code"`
	Message            string `json:"message"`
	Attributed         bool   `json:"attributed"`
}

type QuestionnaireSubmitResult struct {
	QuestionID string          `json:"question_id"`
	Values     []ResponseValue `json:"values"`
	Note       string          `json:"note,omitempty"`
	BodySite   *Coding         `json:"body_site,omitempty"`
	Method     *Coding         `json:"method,omitempty"`
}

type QuestionnaireSubmitRequest struct {
	ResourceID string                      `json:"resource_id"`
	Encounter  string                      `json:"encounter,omitempty"`
	Patient    string                      `json:"patient"`
	Results    []QuestionnaireSubmitResult `json:"results"`
}

type SubmissionState string

const (
	SubmissionStateIdle            SubmissionState = "idle"
	SubmissionStateValidating      SubmissionState = "validating"
	SubmissionStateInvalid         SubmissionState = "invalid"
	SubmissionStateCompiling       SubmissionState = "compiling"
	SubmissionStateSubmitting      SubmissionState = "submitting"
	SubmissionStateSucceeded       SubmissionState = "succeeded"
	SubmissionStatePartiallyFailed SubmissionState = "partially_failed"
	SubmissionStateFailed          SubmissionState = "failed"
)

type SubmissionResult struct {
	State                  SubmissionState          `json:"state"`
	Forms                  []QuestionnaireFormState `json:"forms"`
	FirstInvalidQuestionID string                   `json:"first_invalid_question_id,omitempty"`
	Requests               []Request                `json:"-"`
	Results                []BatchResult            `json:"results,omitempty"`
	ServerErrors           []ServerValidationError  `json:"server_errors,omitempty"`
	FailureMessage         string                   `json:"failure_message,omitempty"`
}

// DuplicateWarning flags a structured list holding the same code twice.
type DuplicateWarning struct {
	QuestionID string `json:"question_id"`
	Index      int    `json:"index"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

// SubmissionEvent is published once a draft has been submitted in full.
type SubmissionEvent struct {
	DraftID          string         `json:"draft_id"`
	Context          RequestContext `json:"context"`
	QuestionnaireIDs []string       `json:"questionnaire_ids"`
	RequestCount     int            `json:"request_count"`
	SubmittedAt      time.Time      `json:"submitted_at"`
}

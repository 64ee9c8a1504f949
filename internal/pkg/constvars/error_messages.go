package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":      "is required",
	"required_with": "is required when %s is present",
	"min":           "must be at least %s",
	"max":           "must be at most %s",
	"gt":            "must be greater than %s",
	"gte":           "must be greater than or equal to %s",
	"lt":            "must be less than %s",
	"lte":           "must be less than or equal to %s",
	"oneof":         "must be one of [%s]",
	"uuid":          "must be a valid UUID",
	"url":           "must be a valid URL",
	"dive":          "contains an invalid item",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"required_with": true,
	"min":           true,
	"max":           true,
	"gt":            true,
	"gte":           true,
	"lt":            true,
	"lte":           true,
	"oneof":         true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientQuestionnaireNotFound         = "questionnaire not found"
	ErrClientFormDraftNotFound             = "form draft not found"
	ErrClientQuestionNotFound              = "question not found in questionnaire"
	ErrClientSubmissionInProgress          = "this form is already being submitted"
	ErrClientFacilityRequired              = "a facility must be selected to save this information"
	ErrClientSubmissionFailed              = "failed to submit questionnaires, please try again"
	ErrClientFileEncoding                  = "one of the attached files could not be read"
	ErrClientTooManyRequests               = "too many requests, please slow down"
	ErrClientInvalidResponseValue          = "the answer does not fit this question"
)

// Error messages for developers
const (
	ErrDevInvalidInput             = "invalid input"
	ErrDevValidationFailed         = "validation failed"
	ErrDevCannotParseJSON          = "cannot parse JSON"
	ErrDevCannotMarshalJSON        = "cannot marshal JSON"
	ErrDevServerDeadlineExceeded   = "server deadline exceeded"
	ErrDevServerProcess            = "server failed to process the request"
	ErrDevURLParamValidationFailed = "url param %s validation failed"
	ErrDevCreateHTTPRequest        = "failed to create HTTP request"
	ErrDevSendHTTPRequest          = "failed to send HTTP request"
	ErrDevDecodeBackendResponse    = "failed to decode backend %s response"
	ErrDevBackendUnexpectedStatus  = "backend %s responded with unexpected status"
	ErrDevQuestionnaireNotFound    = "questionnaire %s not found"
	ErrDevFormDraftNotFound        = "form draft %s not found"
	ErrDevQuestionNotFound         = "question %s not found in questionnaire %s"
	ErrDevSubmissionInProgress     = "submission lock for draft %s is held"
	ErrDevFacilityRequired         = "facility id is required to compile %s requests"
	ErrDevCompileRequests          = "failed to compile structured requests"
	ErrDevBatchSubmission          = "batch submission failed"
	ErrDevEncodeFile               = "failed to encode file %s"
	ErrDevDBFailedToFindDocument   = "failed to find document"
	ErrDevDBFailedToInsertDocument = "failed to insert document"
	ErrDevDBFailedToUpdateDocument = "failed to update document"
	ErrDevDBFailedToDeleteDocument = "failed to delete document"
	ErrDevRedisGetData             = "failed to get data from redis"
	ErrDevRedisSetData             = "failed to set data to redis"
	ErrDevRedisDeleteData          = "failed to delete data from redis"
	ErrDevRedisUnlock              = "failed to release redis lock"
	ErrDevMinioFailedToGetObject   = "failed to get object from bucket %s"
	ErrDevRabbitMQFailedToPublish  = "failed to publish message to queue %s"
	ErrDevInvalidResponseValue     = "invalid response value for question %s"
	ErrDevMongoDBCreateIndex       = "failed to create index on collection %s"
	ErrDevTooManyRequests          = "rate limit exceeded for %s"
)

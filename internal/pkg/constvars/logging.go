package constvars

const (
	LoggingRequestIDKey        = "request_id"
	LoggingMethodKey           = "method"
	LoggingEndpointKey         = "endpoint"
	LoggingRemoteAddrKey       = "remote_addr"
	LoggingUserAgentKey        = "user_agent"
	LoggingQueryKey            = "query"
	LoggingStatusCodeKey       = "status_code"
	LoggingDurationKey         = "duration"
	LoggingSuccessKey          = "success"
	LoggingRedisKey            = "redis_key"
	LoggingLockValueKey        = "lock_value"
	LoggingLockExpirationKey   = "lock_expiration"
	LoggingQueueKey            = "queue"
	LoggingBucketKey           = "bucket"
	LoggingObjectNameKey       = "object_name"
	LoggingQuestionnaireIDKey  = "questionnaire_id"
	LoggingQuestionnaireSlug   = "questionnaire_slug"
	LoggingQuestionIDKey       = "question_id"
	LoggingDraftIDKey          = "draft_id"
	LoggingPatientIDKey        = "patient_id"
	LoggingEncounterIDKey      = "encounter_id"
	LoggingSubmissionStateKey  = "submission_state"
	LoggingRequestCountKey     = "request_count"
	LoggingResultCountKey      = "result_count"
	LoggingErrorCountKey       = "error_count"
	LoggingFailedRequestsKey   = "failed_requests"
	LoggingFirstInvalidQuestID = "first_invalid_question_id"
	LoggingCacheHitKey         = "cache_hit"
	LoggingOperationKey        = "operation"
	LoggingWarningCountKey     = "warning_count"
)

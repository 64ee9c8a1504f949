package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "CARECAP_SVC_"
)

const (
	AppEnvDevelopment = "development"
	AppEnvProduction  = "production"
)

const (
	MongoCollectionFormDrafts = "form_drafts"
)

const (
	RedisKeyQuestionnaireFormat  = "questionnaire:%s"
	RedisKeySubmissionLockFormat = "submission_lock:%s"
)

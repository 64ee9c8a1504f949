package config

type InternalConfig struct {
	App           App
	Backend       AppBackend
	Questionnaire AppQuestionnaire
	Minio         AppMinio
	RabbitMQ      AppRabbitMQ
	MongoDB       AppMongoDB
}

type App struct {
	Env                        string
	Port                       string
	Version                    string
	Address                    string
	Timezone                   string
	EndpointPrefix             string
	MaxRequests                int
	ShutdownTimeoutInSeconds   int
	MaxTimeRequestsPerSeconds  int
	RequestBodyLimitInMegabyte int
	RequestTimeoutInSeconds    int
	SubmitRequestsPerSecond    float64
	SubmitBurst                int
	AllowedOrigins             []string
}

// AppBackend points at the clinical backend that executes batch writes and
// serves questionnaire definitions.
type AppBackend struct {
	BaseUrl                 string
	AuthToken               string
	RequestTimeoutInSeconds int
}

type AppQuestionnaire struct {
	DefinitionCacheTTLInMinutes int
	DraftTTLInHours             int
	SubmissionLockTTLInSeconds  int
}

type AppMinio struct {
	BucketName string
}

type AppRabbitMQ struct {
	SubmissionEventQueue string
}

type AppMongoDB struct {
	DBName string
}

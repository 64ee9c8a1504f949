package questionnaires

import (
	"carecapture-service/internal/app/config"
	"carecapture-service/internal/app/contracts"
	"carecapture-service/internal/app/models"
	"carecapture-service/internal/pkg/constvars"
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type questionnaireUsecase struct {
	QuestionnaireClient contracts.QuestionnaireBackendClient
	RedisRepository     contracts.RedisRepository
	InternalConfig      *config.InternalConfig
	Log                 *zap.Logger
}

func NewQuestionnaireUsecase(
	questionnaireClient contracts.QuestionnaireBackendClient,
	redisRepository contracts.RedisRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.QuestionnaireUsecase {
	return &questionnaireUsecase{
		QuestionnaireClient: questionnaireClient,
		RedisRepository:     redisRepository,
		InternalConfig:      internalConfig,
		Log:                 logger,
	}
}

// FindQuestionnaire resolves slug against the built-in structured
// questionnaires, then the cache, then the backend. Backend answers are cached.
func (uc *questionnaireUsecase) FindQuestionnaire(ctx context.Context, slug string) (*models.QuestionnaireDetail, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("questionnaireUsecase.FindQuestionnaire called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireSlug, slug),
	)

	if builtin, ok := BuiltinQuestionnaire(slug); ok {
		return builtin, nil
	}

	cacheKey := fmt.Sprintf(constvars.RedisKeyQuestionnaireFormat, slug)
	cached, err := uc.RedisRepository.Get(ctx, cacheKey)
	if err != nil {
		uc.Log.Warn("questionnaireUsecase.FindQuestionnaire error reading cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, cacheKey),
			zap.Error(err),
		)
	}
	if cached != "" {
		var questionnaire models.QuestionnaireDetail
		if err := json.Unmarshal([]byte(cached), &questionnaire); err == nil {
			uc.Log.Info("questionnaireUsecase.FindQuestionnaire succeeded",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingQuestionnaireIDKey, questionnaire.ID),
				zap.Bool(constvars.LoggingCacheHitKey, true),
			)
			return &questionnaire, nil
		}
	}

	questionnaire, err := uc.QuestionnaireClient.FindQuestionnaireBySlug(ctx, slug)
	if err != nil {
		uc.Log.Error("questionnaireUsecase.FindQuestionnaire error calling QuestionnaireClient.FindQuestionnaireBySlug",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	ttl := time.Duration(uc.InternalConfig.Questionnaire.DefinitionCacheTTLInMinutes) * time.Minute
	if err := uc.RedisRepository.Set(ctx, cacheKey, questionnaire, ttl); err != nil {
		uc.Log.Warn("questionnaireUsecase.FindQuestionnaire error writing cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, cacheKey),
			zap.Error(err),
		)
	}

	uc.Log.Info("questionnaireUsecase.FindQuestionnaire succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireIDKey, questionnaire.ID),
		zap.Bool(constvars.LoggingCacheHitKey, false),
	)
	return questionnaire, nil
}

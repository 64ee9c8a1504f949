package questionnaires

import (
	"carecapture-service/internal/app/config"
	"carecapture-service/internal/app/models"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeQuestionnaireClient struct {
	calls int
	err   error
}

func (c *fakeQuestionnaireClient) FindQuestionnaireBySlug(ctx context.Context, slug string) (*models.QuestionnaireDetail, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &models.QuestionnaireDetail{ID: "qn-" + slug, Slug: slug, Title: "Intake"}, nil
}

type fakeCache struct {
	values map[string]string
	ttls   map[string]time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	delete(c.values, key)
	return nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.values[key] = string(encoded)
	c.ttls[key] = exp
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	return c.values[key], nil
}

func (c *fakeCache) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	return false, nil
}

func testConfig() *config.InternalConfig {
	cfg := &config.InternalConfig{}
	cfg.Questionnaire.DefinitionCacheTTLInMinutes = 15
	return cfg
}

func TestFindQuestionnaireBuiltin(t *testing.T) {
	client := &fakeQuestionnaireClient{}
	usecase := NewQuestionnaireUsecase(client, newFakeCache(), testConfig(), zap.NewNop())

	questionnaire, err := usecase.FindQuestionnaire(context.Background(), "medication_request")
	require.NoError(t, err)
	assert.Equal(t, "Medication Request", questionnaire.Title)
	require.Len(t, questionnaire.Questions, 1)
	assert.Equal(t, models.StructuredTypeMedicationRequest, questionnaire.Questions[0].StructuredType)
	assert.True(t, questionnaire.Questions[0].IsStructured())
	assert.Zero(t, client.calls)
}

func TestFindQuestionnaireCachesBackendAnswer(t *testing.T) {
	client := &fakeQuestionnaireClient{}
	cache := newFakeCache()
	usecase := NewQuestionnaireUsecase(client, cache, testConfig(), zap.NewNop())

	first, err := usecase.FindQuestionnaire(context.Background(), "intake")
	require.NoError(t, err)
	second, err := usecase.FindQuestionnaire(context.Background(), "intake")
	require.NoError(t, err)

	assert.Equal(t, 1, client.calls)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 15*time.Minute, cache.ttls["questionnaire:intake"])
}

func TestFindQuestionnaireBackendError(t *testing.T) {
	client := &fakeQuestionnaireClient{err: errors.New("backend down")}
	usecase := NewQuestionnaireUsecase(client, newFakeCache(), testConfig(), zap.NewNop())

	_, err := usecase.FindQuestionnaire(context.Background(), "intake")
	assert.Error(t, err)
}

func TestBuiltinQuestionnaireReturnsCopy(t *testing.T) {
	first, ok := BuiltinQuestionnaire("symptom")
	require.True(t, ok)
	first.Questions[0].Required = true

	second, ok := BuiltinQuestionnaire("symptom")
	require.True(t, ok)
	assert.False(t, second.Questions[0].Required)

	_, ok = BuiltinQuestionnaire("unknown")
	assert.False(t, ok)
}

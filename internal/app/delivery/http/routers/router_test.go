package routers

import (
	"carecapture-service/internal/app/config"
	"carecapture-service/internal/app/delivery/http/middlewares"
	"carecapture-service/internal/app/models"
	formDrafts "carecapture-service/internal/app/services/core/form_drafts"
	"carecapture-service/internal/app/services/core/questionnaires"
	"carecapture-service/internal/pkg/constvars"
	"carecapture-service/internal/pkg/dto/requests"
	"carecapture-service/internal/pkg/dto/responses"
	"carecapture-service/internal/pkg/exceptions"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const draftID = "0d8f3c52-7a1b-4e6d-9c3f-2b4a6e8d1f07"

type questionnaireUsecaseStub struct{}

func (questionnaireUsecaseStub) FindQuestionnaire(ctx context.Context, slug string) (*models.QuestionnaireDetail, error) {
	if slug != "intake" {
		return nil, exceptions.ErrQuestionnaireNotFound(nil, slug)
	}
	return &models.QuestionnaireDetail{ID: "qn-intake", Slug: slug}, nil
}

type formDraftUsecaseStub struct{}

func (formDraftUsecaseStub) CreateFormDraft(ctx context.Context, request *requests.CreateFormDraft) (*responses.FormDraft, error) {
	return &responses.FormDraft{ID: draftID}, nil
}

func (formDraftUsecaseStub) FindFormDraftByID(ctx context.Context, id string) (*responses.FormDraft, error) {
	return &responses.FormDraft{ID: id}, nil
}

func (formDraftUsecaseStub) AttachQuestionnaire(ctx context.Context, id string, request *requests.AttachQuestionnaire) (*responses.FormDraft, error) {
	return &responses.FormDraft{ID: id}, nil
}

func (formDraftUsecaseStub) UpdateQuestionResponse(ctx context.Context, id, questionnaireID, questionID string, request *requests.UpdateQuestionResponse) (*responses.UpdateQuestionResponse, error) {
	return &responses.UpdateQuestionResponse{}, nil
}

func (formDraftUsecaseStub) ValidateFormDraft(ctx context.Context, id string) (*responses.ValidateFormDraft, error) {
	return &responses.ValidateFormDraft{Valid: true}, nil
}

func (formDraftUsecaseStub) SubmitFormDraft(ctx context.Context, id string) (*models.SubmissionResult, error) {
	return &models.SubmissionResult{State: models.SubmissionStateSucceeded}, nil
}

func (formDraftUsecaseStub) DeleteFormDraft(ctx context.Context, id string) error {
	return nil
}

func newTestRouter() *chi.Mux {
	internalConfig := &config.InternalConfig{App: config.App{
		EndpointPrefix:             "api",
		Version:                    "v1",
		Timezone:                   "UTC",
		MaxRequests:                1000,
		MaxTimeRequestsPerSeconds:  60,
		RequestBodyLimitInMegabyte: 1,
		SubmitRequestsPerSecond:    0.001,
		SubmitBurst:                2,
		AllowedOrigins:             []string{"https://clinic.example.com"},
	}}
	logger := zap.NewNop()
	accessLog := logrus.New()
	accessLog.SetOutput(io.Discard)

	router := chi.NewRouter()
	SetupRoutes(
		router,
		internalConfig,
		middlewares.NewMiddlewares(logger, internalConfig),
		accessLog,
		questionnaires.NewQuestionnaireController(logger, questionnaireUsecaseStub{}, time.Second),
		formDrafts.NewFormDraftController(logger, formDraftUsecaseStub{}, time.Second),
	)
	return router
}

func request(router http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	req.RemoteAddr = "192.0.2.10:40000"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRoutes(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		method string
		target string
		code   int
	}{
		{http.MethodGet, "/api/v1/questionnaires/intake", http.StatusOK},
		{http.MethodGet, "/api/v1/questionnaires/unknown", http.StatusNotFound},
		{http.MethodGet, "/api/v1/form-drafts/" + draftID, http.StatusOK},
		{http.MethodDelete, "/api/v1/form-drafts/" + draftID, http.StatusOK},
		{http.MethodPost, "/api/v1/form-drafts/" + draftID + "/validate", http.StatusOK},
		{http.MethodGet, "/api/v1/unknown", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := request(router, tt.method, tt.target)
			assert.Equal(t, tt.code, rec.Code)
			assert.NotEmpty(t, rec.Header().Get(constvars.HeaderXRequestID))
		})
	}
}

func TestSubmitRouteIsRateLimited(t *testing.T) {
	router := newTestRouter()
	target := "/api/v1/form-drafts/" + draftID + "/submit"

	assert.Equal(t, http.StatusOK, request(router, http.MethodPost, target).Code)
	assert.Equal(t, http.StatusOK, request(router, http.MethodPost, target).Code)
	assert.Equal(t, http.StatusTooManyRequests, request(router, http.MethodPost, target).Code)

	assert.Equal(t, http.StatusOK, request(router, http.MethodPost, "/api/v1/form-drafts/"+draftID+"/validate").Code, "other routes are not limited by the submit limiter")
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/form-drafts", nil)
	req.Header.Set("Origin", "https://clinic.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "https://clinic.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

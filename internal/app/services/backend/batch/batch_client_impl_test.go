package batch

import (
	"carecapture-service/internal/app/models"
	"carecapture-service/internal/pkg/constvars"
	"carecapture-service/internal/pkg/exceptions"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExecuteBatch(t *testing.T) {
	var received models.BatchRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, constvars.BackendPathBatchRequests, r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get(constvars.HeaderAuthorization))
		assert.Equal(t, "req-1", r.Header.Get(constvars.HeaderXRequestID))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
		_, _ = w.Write([]byte(`{"results":[{"reference_id":"symptom","status_code":201,"data":{"id":"s1"}}]}`))
	}))
	defer server.Close()

	client := NewBatchBackendClient(server.URL, "secret", time.Second, zap.NewNop())
	ctx := context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "req-1")
	response, err := client.ExecuteBatch(ctx, models.BatchRequest{Requests: []models.Request{
		{URL: "/api/v1/patient/p1/symptom/upsert/", Method: http.MethodPost, Body: map[string]any{"datapoints": []any{}}, ReferenceID: "symptom"},
	}})
	require.NoError(t, err)

	require.Len(t, received.Requests, 1)
	assert.Equal(t, "symptom", received.Requests[0].ReferenceID)
	require.Len(t, response.Results, 1)
	assert.True(t, response.Results[0].IsSuccess())
	assert.JSONEq(t, `{"id":"s1"}`, string(response.Results[0].Data))
}

func TestExecuteBatchNonSuccessWithResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"results":[{"reference_id":"qn-1","status_code":400,"data":{"errors":[{"question_id":"q1","msg":"bad"}]}}]}`))
	}))
	defer server.Close()

	response, err := NewBatchBackendClient(server.URL, "", time.Second, zap.NewNop()).ExecuteBatch(context.Background(), models.BatchRequest{})
	require.NoError(t, err)
	require.Len(t, response.Results, 1)
	errs, _ := response.Results[0].Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "q1", errs[0].QuestionID)
}

func TestExecuteBatchTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`upstream exploded`))
	}))
	defer server.Close()

	_, err := NewBatchBackendClient(server.URL, "", time.Second, zap.NewNop()).ExecuteBatch(context.Background(), models.BatchRequest{})
	require.Error(t, err)
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, constvars.StatusBadGateway, customErr.StatusCode)
}

func TestExecuteBatchUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := NewBatchBackendClient(server.URL, "", time.Second, zap.NewNop()).ExecuteBatch(context.Background(), models.BatchRequest{})
	assert.Error(t, err)
}

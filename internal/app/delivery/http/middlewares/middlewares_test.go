package middlewares

import (
	"bytes"
	"carecapture-service/internal/app/config"
	"carecapture-service/internal/pkg/constvars"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMiddlewares() *Middlewares {
	return NewMiddlewares(zap.NewNop(), &config.InternalConfig{App: config.App{RequestBodyLimitInMegabyte: 1, Timezone: "UTC"}})
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	m := newTestMiddlewares()

	t.Run("generates an id", func(t *testing.T) {
		var seen string
		handler := m.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.True(t, strings.HasPrefix(seen, constvars.REQUEST_ID_PREFIX))
		assert.Equal(t, seen, rec.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("keeps the client id", func(t *testing.T) {
		var isClient bool
		handler := m.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			isClient, _ = r.Context().Value(constvars.CONTEXT_IS_CLIENT_REQUEST_ID_KEY).(bool)
		}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(constvars.HeaderXRequestID, "client-123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.True(t, isClient)
		assert.Equal(t, "client-123", rec.Header().Get(constvars.HeaderXRequestID))
	})
}

func TestErrorHandlerRecoversPanics(t *testing.T) {
	m := newTestMiddlewares()
	handler := m.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestBodyLimit(t *testing.T) {
	m := newTestMiddlewares()
	var readErr error
	handler := m.BodyLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	small := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"ok":true}`))
	handler.ServeHTTP(httptest.NewRecorder(), small)
	assert.NoError(t, readErr)

	large := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(make([]byte, 2<<20)))
	handler.ServeHTTP(httptest.NewRecorder(), large)
	assert.Error(t, readErr)
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(0.001, 2, time.Minute, zap.NewNop())
	handler := limiter.Limit(okHandler())

	send := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1:5001").Code)

	blocked := send("10.0.0.1:5002")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "1", blocked.Header().Get(constvars.HeaderRetryAfter))

	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:5003").Code, "blocked clients stay blocked")
	assert.Equal(t, http.StatusOK, send("10.0.0.2:5000").Code, "other clients are unaffected")
}

func TestRateLimiterPrunesIdleClients(t *testing.T) {
	limiter := NewRateLimiter(1, 1, time.Minute, zap.NewNop())
	clock := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return clock }
	handler := limiter.Limit(okHandler())

	send := func(remoteAddr string) int {
		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:5000"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:5001"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2:5000"))
	assert.Len(t, limiter.limiters, 2)
	assert.Len(t, limiter.blocked, 1)

	t.Run("recent clients are kept", func(t *testing.T) {
		clock = clock.Add(30 * time.Second)
		assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:5002"))
		assert.Len(t, limiter.limiters, 2)
	})

	t.Run("idle clients and expired blocks are dropped", func(t *testing.T) {
		clock = clock.Add(2 * time.Minute)
		assert.Equal(t, http.StatusOK, send("10.0.0.3:5000"))
		assert.Len(t, limiter.limiters, 1)
		assert.Empty(t, limiter.blocked)
		assert.Contains(t, limiter.limiters, "10.0.0.3")
	})

	t.Run("pruned clients start with a full bucket", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, send("10.0.0.1:5003"))
	})
}

func TestRequestLogger(t *testing.T) {
	m := newTestMiddlewares()
	var buffer bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buffer)
	log.SetFormatter(&logrus.JSONFormatter{})

	handler := m.RequestIDMiddleware(m.RequestLogger(m.InternalConfig.App, log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPut, "/api/v1/form-drafts", nil))

	line := buffer.String()
	assert.Contains(t, line, `"status_code":202`)
	assert.Contains(t, line, `"method":"PUT"`)
	assert.Contains(t, line, constvars.REQUEST_ID_PREFIX)
}

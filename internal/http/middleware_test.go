package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"log-analyzer/internal/shared/loggers"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMwRequestID_GeneratesIDWhenNotProvided(t *testing.T) {
	t.Parallel()

	mw := mwRequestID(loggers.Nop())

	var seen string
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestID(r)
		assert.NotNil(t, loggers.Ctx(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/reports/2017.06.30", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, seen, 26, "request ID should be a ULID")
	assert.Equal(t, seen, rr.Header().Get(headerRequestID))
}

func TestMwRequestID_UsesProvidedID(t *testing.T) {
	t.Parallel()

	mw := mwRequestID(loggers.Nop())

	providedID := "custom-request-id-12345"
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, providedID, requestID(r))
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/reports/2017.06.30", nil)
	req.Header.Set(headerRequestID, "  "+providedID+" ")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, providedID, rr.Header().Get(headerRequestID))
}

func TestMwRecoverer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		panicWith any
	}{
		{name: "string panic", panicWith: "renderer exploded"},
		{name: "error panic", panicWith: assert.AnError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := mwRequestID(loggers.Nop())(mwRecoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic(tt.panicWith)
			})))

			req := httptest.NewRequest(http.MethodPost, "/reports", nil)
			rr := httptest.NewRecorder()

			assert.NotPanics(t, func() {
				handler.ServeHTTP(rr, req)
			})

			assert.Equal(t, http.StatusInternalServerError, rr.Code)
			assert.Equal(t, contentTypeJSON, rr.Header().Get(headerContentType))

			var errorResponse ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errorResponse))
			assert.NotEmpty(t, errorResponse.RequestID)
			assert.Equal(t, "internal", errorResponse.ErrorCategory)
			assert.Equal(t, "SYS_9000", errorResponse.ErrorCode)
			assert.Equal(t, "internal server error", errorResponse.ErrorDescription)
		})
	}
}

func TestMwRecoverer_PassesThroughWhenNoPanic(t *testing.T) {
	t.Parallel()

	handler := mwRecoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("success"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/reports/2017.06.30", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "success", rr.Body.String())
}

func TestPanicError(t *testing.T) {
	t.Parallel()

	assert.Same(t, assert.AnError, panicError(assert.AnError))
	assert.EqualError(t, panicError(42), "42")
}

func TestSetupMiddleware_CompletionLog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := loggers.NewWithWriter("info", &buf)
	require.NoError(t, err)

	router := chi.NewRouter()
	setupMiddleware(router, logger)
	router.Post("/reports", errorHandlingAdapter(&testHandler{
		handleFunc: func(w http.ResponseWriter, r *http.Request) error {
			return errInvalidRequest("bad", nil)
		},
	}))

	req := httptest.NewRequest(http.MethodPost, "/reports", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, buf.String(), `"message":"request completed"`)
	assert.Contains(t, buf.String(), `"http_status":400`)
	assert.Contains(t, buf.String(), `"error_code":"HTTP_1000"`)
	assert.Contains(t, buf.String(), `"request_id":"`+rr.Header().Get(headerRequestID)+`"`)
}

func TestSetupMiddleware_Integration(t *testing.T) {
	t.Parallel()

	router := chi.NewRouter()
	setupMiddleware(router, loggers.Nop())

	router.Get("/test-id", func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, requestID(r))
		w.WriteHeader(http.StatusOK)
	})
	router.Get("/test-panic", func(w http.ResponseWriter, r *http.Request) {
		panic("integration test panic")
	})

	req := httptest.NewRequest(http.MethodGet, "/test-id", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/test-panic", nil)
	rr = httptest.NewRecorder()
	assert.NotPanics(t, func() {
		router.ServeHTTP(rr, req)
	})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var errorResponse ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errorResponse))
	assert.Equal(t, rr.Header().Get(headerRequestID), errorResponse.RequestID)
	assert.Equal(t, "SYS_9000", errorResponse.ErrorCode)
}

package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"farmalink-service/internal/app/config"
	"farmalink-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRequestIDMiddleware(t *testing.T) {
	middlewares := NewMiddlewares(zap.NewNop(), &config.InternalConfig{})

	t.Run("generates an id when the client sends none", func(t *testing.T) {
		var seenID string
		handler := middlewares.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
			assert.True(t, ok)
			seenID = requestID

			isClient, ok := r.Context().Value(constvars.CONTEXT_IS_CLIENT_REQUEST_ID_KEY).(bool)
			assert.True(t, ok)
			assert.False(t, isClient)
		}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/orders/order-1", nil))

		assert.True(t, strings.HasPrefix(seenID, constvars.REQUEST_ID_PREFIX))
		assert.Equal(t, seenID, rr.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("keeps the client supplied id", func(t *testing.T) {
		handler := middlewares.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
			assert.Equal(t, "client-supplied-id", requestID)

			isClient, _ := r.Context().Value(constvars.CONTEXT_IS_CLIENT_REQUEST_ID_KEY).(bool)
			assert.True(t, isClient)
		}))

		req := httptest.NewRequest("GET", "/api/v1/orders/order-1", nil)
		req.Header.Set(constvars.HeaderXRequestID, "client-supplied-id")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, "client-supplied-id", rr.Header().Get(constvars.HeaderXRequestID))
	})
}

func TestErrorHandler(t *testing.T) {
	middlewares := NewMiddlewares(zap.NewNop(), &config.InternalConfig{})

	handler := middlewares.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("POST", "/api/v1/orders", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), `"success":false`)
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"spotly/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type observed struct {
	requestID string
	logger    *logger.Logger
}

func newEngine(base *logger.Logger, seen *observed) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID(base))
	engine.GET("/ping", func(c *gin.Context) {
		seen.requestID = c.GetString(RequestIDKey)
		seen.logger = logger.FromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})
	return engine
}

func TestRequestIDGenerated(t *testing.T) {
	var seen observed
	engine := newEngine(logger.Discard(), &seen)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	_, err := uuid.Parse(seen.requestID)
	assert.NoError(t, err)
	assert.Equal(t, seen.requestID, w.Header().Get(RequestIDHeader))
	assert.NotSame(t, logger.GetDefault(), seen.logger)
}

func TestRequestIDPropagated(t *testing.T) {
	var seen observed
	engine := newEngine(logger.Discard(), &seen)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "gate-7-scan-42")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, "gate-7-scan-42", seen.requestID)
	assert.Equal(t, "gate-7-scan-42", w.Header().Get(RequestIDHeader))
}

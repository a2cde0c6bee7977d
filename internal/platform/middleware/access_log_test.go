package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessLogWritesStructuredLine(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), AccessLog(logger))
	r.GET("/api/v1/books/:book_id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/books/9", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec), buf.String())
	assert.Equal(t, "http request", rec["msg"])
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "GET", rec["method"])
	assert.Equal(t, "/api/v1/books/9", rec["path"])
	assert.EqualValues(t, 404, rec["status"])
	assert.Equal(t, w.Header().Get(HeaderRequestID), rec["request_id"])
}

package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LIBRARY-backend/internal/platform/db/dbtest"
	"LIBRARY-backend/internal/platform/middleware"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	RegisterRoutes(r.Group("/api/v1"), NewService(dbtest.Open(t)))
	return r
}

func do(r http.Handler, method, path, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHandlerBookLifecycle(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/v1/books", "application/json",
		`{"title":"Dune","author":"Frank Herbert","total_copies":2}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[BookResponse](t, w)
	assert.Equal(t, 2, created.AvailableCopies)
	loc := w.Header().Get("Location")
	assert.Equal(t, "/api/v1/books/1", loc)

	w = do(r, http.MethodGet, loc, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created, decode[BookResponse](t, w))

	w = do(r, http.MethodPut, loc, "application/json",
		`{"title":"Dune Messiah","author":"Frank Herbert","total_copies":1}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[BookResponse](t, w)
	assert.Equal(t, "Dune Messiah", updated.Title)
	assert.Equal(t, 1, updated.AvailableCopies)

	w = do(r, http.MethodGet, "/api/v1/books", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[ListBooksResponse](t, w)
	require.Len(t, list.Items, 1)
	assert.Equal(t, updated, list.Items[0])

	w = do(r, http.MethodDelete, loc, "", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodDelete, loc, "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, CodeNotFound, decode[errDTO](t, w).Error.Code)
}

func TestHandlerAddFromForm(t *testing.T) {
	r := newTestRouter(t)

	form := url.Values{"title": {"Emma"}, "author": {"Jane Austen"}, "total_copies": {"3"}}
	w := do(r, http.MethodPost, "/api/v1/books", "application/x-www-form-urlencoded", form.Encode())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	got := decode[BookResponse](t, w)
	assert.Equal(t, "Emma", got.Title)
	assert.Equal(t, 3, got.TotalCopies)
}

func TestHandlerErrors(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name, method, path, body string
		status                   int
		code                     Code
	}{
		{"missing fields", http.MethodPost, "/api/v1/books", `{"title":"x"}`, http.StatusBadRequest, CodeInvalidArgument},
		{"malformed json", http.MethodPost, "/api/v1/books", `{`, http.StatusBadRequest, CodeInvalidArgument},
		{"wrong type", http.MethodPost, "/api/v1/books", `{"title":"x","author":"y","total_copies":"many"}`, http.StatusBadRequest, CodeInvalidArgument},
		{"non-numeric id", http.MethodGet, "/api/v1/books/abc", "", http.StatusBadRequest, CodeInvalidArgument},
		{"unknown id", http.MethodGet, "/api/v1/books/7", "", http.StatusNotFound, CodeNotFound},
		{"update unknown", http.MethodPut, "/api/v1/books/7", `{"title":"x","author":"y","total_copies":1}`, http.StatusNotFound, CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct := ""
			if tt.body != "" {
				ct = "application/json"
			}
			w := do(r, tt.method, tt.path, ct, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, tt.code, decode[errDTO](t, w).Error.Code)
		})
	}
}

func TestHandlerEmptyListIsArray(t *testing.T) {
	r := newTestRouter(t)
	w := do(r, http.MethodGet, "/api/v1/books", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[]}`, w.Body.String())
}

func TestHandlerFormTotalCopies(t *testing.T) {
	r := newTestRouter(t)

	form := url.Values{"title": {"Emma"}, "author": {"Jane Austen"}, "total_copies": {"3"}}
	w := do(r, http.MethodPost, "/api/v1/books", "application/x-www-form-urlencoded", form.Encode())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	loc := w.Header().Get("Location")

	tests := []struct {
		name, method, path, total, msg string
	}{
		{"add blank", http.MethodPost, "/api/v1/books", "", "total_copies is required"},
		{"add spaces", http.MethodPost, "/api/v1/books", "   ", "total_copies is required"},
		{"add not a number", http.MethodPost, "/api/v1/books", "three", "total_copies must be an integer"},
		{"update blank", http.MethodPut, loc, "", "total_copies is required"},
		{"update not a number", http.MethodPut, loc, "2.5", "total_copies must be an integer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := url.Values{"title": {"Emma"}, "author": {"Jane Austen"}, "total_copies": {tt.total}}
			w := do(r, tt.method, tt.path, "application/x-www-form-urlencoded", body.Encode())
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			e := decode[errDTO](t, w)
			assert.Equal(t, CodeInvalidArgument, e.Error.Code)
			assert.Equal(t, tt.msg, e.Error.Message)
		})
	}

	// 在庫は変わっていない
	w = do(r, http.MethodGet, loc, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[BookResponse](t, w)
	assert.Equal(t, 3, got.TotalCopies)
	assert.Equal(t, 3, got.AvailableCopies)

	w = do(r, http.MethodGet, "/api/v1/books", "", "")
	require.Len(t, decode[ListBooksResponse](t, w).Items, 1)
}

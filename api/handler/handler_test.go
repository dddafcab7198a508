package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docreader/api/handler"
	"docreader/api/router"
	"docreader/logic/extraction"
	"docreader/service"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg, err := extraction.NewRegistry()
	require.NoError(t, err)
	// /extract 和 /health 不碰存储，repo 和 ES 传 nil 即可
	extractionSvc := service.NewExtractionService(nil, extraction.NewEngine(reg), nil)

	r := gin.New()
	router.RegisterRoutes(r, handler.NewDocumentHandler(extractionSvc, nil))
	return r
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestExtractTextEndpoint(t *testing.T) {
	r := newTestRouter(t)

	body := `{"text": "Notional: EUR 200 million", "source": "inline-test"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/document/extract", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Code int             `json:"code"`
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Code)

	var result struct {
		Filename    string `json:"filename"`
		EntityCount int    `json:"entity_count"`
		Entities    []struct {
			Entity     string  `json:"entity"`
			RawValue   string  `json:"raw_value"`
			Confidence float64 `json:"confidence"`
		} `json:"entities"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Equal(t, "inline-test", result.Filename)
	require.Equal(t, 1, result.EntityCount)
	assert.Equal(t, "Notional", result.Entities[0].Entity)
	assert.Equal(t, "EUR 200 million", result.Entities[0].RawValue)
	assert.GreaterOrEqual(t, result.Entities[0].Confidence, 0.9)
}

func TestExtractTextEndpointEmptyText(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/document/extract", strings.NewReader(`{"text": "  "}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/brokergpt/internal/brokergpt/biz"
	"github.com/kart-io/brokergpt/internal/brokergpt/router"
	"github.com/kart-io/brokergpt/internal/brokergpt/store"
)

type envelope struct {
	Code      int             `json:"code"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	RequestID string          `json:"request_id"`
}

func newTestServer() *gin.Engine {
	gin.SetMode(gin.TestMode)

	storage := store.NewFacade(nil, store.NewMemoryFactory())
	return router.New(&router.Services{
		Clients:  biz.NewClientService(storage),
		Carriers: biz.NewCarrierService(storage, nil),
		Policies: biz.NewPolicyService(storage),
		Records:  biz.NewRecordService(storage),
		Chat:     biz.NewChatService(storage, nil, nil, nil),
		Research: biz.NewResearchService(nil, nil, 1),
	})
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestHealthzReportsFallback(t *testing.T) {
	engine := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, true, body["fallback"])
}

func TestClientLifecycleOverHTTP(t *testing.T) {
	engine := newTestServer()

	rec, env := doJSON(t, engine, http.MethodPost, "/api/v1/clients", map[string]any{
		"name": "Acme Co",
		"city": "Vancouver",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, env.RequestID)

	var created struct {
		ID   uint64 `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotZero(t, created.ID)
	assert.Equal(t, "Acme Co", created.Name)

	rec, env = doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/v1/clients/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = doJSON(t, engine, http.MethodPut, fmt.Sprintf("/api/v1/clients/%d", created.ID), map[string]any{
		"city": "Victoria",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated struct {
		City string `json:"city"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Victoria", updated.City)
	assert.Equal(t, "Acme Co", updated.Name)

	rec, _ = doJSON(t, engine, http.MethodDelete, fmt.Sprintf("/api/v1/clients/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, engine, http.MethodDelete, fmt.Sprintf("/api/v1/clients/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClientValidation(t *testing.T) {
	engine := newTestServer()

	rec, _ := doJSON(t, engine, http.MethodPost, "/api/v1/clients", map[string]any{"city": "Nowhere"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doJSON(t, engine, http.MethodGet, "/api/v1/clients/not-a-number", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doJSON(t, engine, http.MethodGet, "/api/v1/clients/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClientSearchByName(t *testing.T) {
	engine := newTestServer()

	rec, env := doJSON(t, engine, http.MethodGet, "/api/v1/clients?name=harbourview", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var client struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &client))
	assert.Equal(t, "Harbourview Bistro Inc.", client.Name)

	rec, _ = doJSON(t, engine, http.MethodGet, "/api/v1/clients?name=nothing-here", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCarrierMatchEndpoint(t *testing.T) {
	engine := newTestServer()

	rec, env := doJSON(t, engine, http.MethodPost, "/api/v1/carriers/match", map[string]any{
		"industry": "Retail",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var carriers []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &carriers))

	var names []string
	for _, c := range carriers {
		names = append(names, c.Name)
	}
	assert.NotContains(t, names, "Dominion Mutual")
	assert.Contains(t, names, "Pacific Crest Insurance")
}

func TestRecommendationsEndpoint(t *testing.T) {
	engine := newTestServer()

	rec, env := doJSON(t, engine, http.MethodGet, "/api/v1/clients/1/recommendations", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var carriers []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &carriers))
	assert.NotEmpty(t, carriers)

	rec, _ = doJSON(t, engine, http.MethodGet, "/api/v1/clients/999/recommendations", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChatEndpointDegradesGracefully(t *testing.T) {
	engine := newTestServer()

	// No provider is configured: the assistant apologizes but the HTTP
	// request itself succeeds and the transcript grows.
	rec, env := doJSON(t, engine, http.MethodPost, "/api/v1/chat", map[string]any{
		"clientId": 1,
		"message":  "hello",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var reply struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &reply))
	assert.Equal(t, "assistant", reply.Role)
	assert.NotEmpty(t, reply.Content)

	rec, env = doJSON(t, engine, http.MethodGet, "/api/v1/chat?clientId=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var transcript []struct {
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &transcript))
	require.Len(t, transcript, 2)
	assert.Equal(t, "user", transcript[0].Role)
	assert.Equal(t, "assistant", transcript[1].Role)
}

func TestEmptyChatTranscriptOverHTTP(t *testing.T) {
	engine := newTestServer()

	rec, env := doJSON(t, engine, http.MethodGet, "/api/v1/chat?clientId=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var transcript []any
	require.NoError(t, json.Unmarshal(env.Data, &transcript))
	assert.Empty(t, transcript)
}

func TestPolicyByClientQuery(t *testing.T) {
	engine := newTestServer()

	rec, env := doJSON(t, engine, http.MethodGet, "/api/v1/policies?clientId=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var policies []struct {
		ClientID uint64 `json:"clientId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &policies))
	for _, p := range policies {
		assert.Equal(t, uint64(1), p.ClientID)
	}
}

func TestRecordTypesSeeded(t *testing.T) {
	engine := newTestServer()

	rec, env := doJSON(t, engine, http.MethodGet, "/api/v1/record-types", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var types []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &types))
	require.Len(t, types, 4)
	assert.Equal(t, "Property", types[0].Name)
}

func TestRequestIDPropagation(t *testing.T) {
	engine := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/carriers", nil)
	req.Header.Set("X-Request-ID", "test-request-42")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, "test-request-42", rec.Header().Get("X-Request-ID"))

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "test-request-42", env.RequestID)
}

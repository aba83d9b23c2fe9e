package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/archimate-engine/batchmut/internal/engine"
	"github.com/archimate-engine/batchmut/internal/idempotency"
	"github.com/archimate-engine/batchmut/internal/model"
	"github.com/archimate-engine/batchmut/internal/validation"
)

func testServer(t *testing.T, corsOrigins string) (*Server, *model.Model) {
	t.Helper()
	m := model.NewModel()
	host := engine.Host{
		Factory: engine.DefaultFactory{},
		Stack:   engine.NewDefaultStack(),
		Clock:   engine.RealClock{},
		Logger:  slog.New(slog.DiscardHandler),
	}
	engineCfg := engine.DefaultConfig()
	engineCfg.SettleTime = 0
	cache := idempotency.New(10, time.Minute)
	srv := New(m, host, engineCfg, validation.DefaultConfig(), cache, corsOrigins, slog.New(slog.DiscardHandler))
	return srv, m
}

func TestHandleHealth(t *testing.T) {
	srv, _ := testServer(t, "*")
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "ok", body["status"])
}

func TestHandlePlansSuccess(t *testing.T) {
	srv, m := testServer(t, "*")
	plan := `{"changes":[{"op":"createElement","type":"business-actor","name":"Alice"}]}`
	req := httptest.NewRequest(http.MethodPost, "/plans", strings.NewReader(plan))
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var result engine.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.Ops, 1)
	require.Len(t, m.Elements, 1)
}

func TestHandlePlansRejectsNonPost(t *testing.T) {
	srv, _ := testServer(t, "*")
	req := httptest.NewRequest(http.MethodGet, "/plans", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHandlePlansRejectsEmptyBody(t *testing.T) {
	srv, _ := testServer(t, "*")
	req := httptest.NewRequest(http.MethodPost, "/plans", strings.NewReader(""))
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlePlansMapsEngineErrorToStatus(t *testing.T) {
	srv, _ := testServer(t, "*")
	plan := `{"changes":[]}`
	req := httptest.NewRequest(http.MethodPost, "/plans", strings.NewReader(plan))
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body["code"])
}

func TestHandlePlansIdempotentReplayShortCircuits(t *testing.T) {
	srv, m := testServer(t, "*")
	plan := `{"idempotencyKey":"k1","changes":[{"op":"createElement","type":"business-actor","name":"Alice"}]}`

	req1 := httptest.NewRequest(http.MethodPost, "/plans", strings.NewReader(plan))
	w1 := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w1, req1)
	require.Equal(t, http.StatusOK, w1.Code)
	require.Len(t, m.Elements, 1)

	req2 := httptest.NewRequest(http.MethodPost, "/plans", strings.NewReader(plan))
	w2 := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w2, req2)
	require.Equal(t, http.StatusOK, w2.Code)
	require.Len(t, m.Elements, 1, "a replayed idempotency key must not re-execute the plan")
	require.JSONEq(t, w1.Body.String(), w2.Body.String())
}

func TestHandleOrphans(t *testing.T) {
	srv, m := testServer(t, "*")
	orphan := &model.Element{ID: "orphan-1", Kind: model.KindBusinessActor, Name: "Ghost"}
	m.Elements[orphan.ID] = orphan

	req := httptest.NewRequest(http.MethodGet, "/orphans", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.EqualValues(t, 1, body["orphan_count"])
}

func TestCORSWildcardEchoesAllowOrigin(t *testing.T) {
	srv, _ := testServer(t, "*")
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://example.com")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSAllowlistOnlyEchoesKnownOrigin(t *testing.T) {
	srv, _ := testServer(t, "https://allowed.example.com")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://allowed.example.com")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	require.Equal(t, "https://allowed.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.Header.Set("Origin", "https://evil.example.com")
	w2 := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w2, req2)
	require.Empty(t, w2.Header().Get("Access-Control-Allow-Origin"))
}

func TestOptionsPreflightShortCircuits(t *testing.T) {
	srv, _ := testServer(t, "*")
	req := httptest.NewRequest(http.MethodOptions, "/plans", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)
}

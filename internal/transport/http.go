// Package transport implements batchmutd's HTTP host surface (spec.md §6
// expansion): POST /plans submits a change plan, GET /orphans runs the
// diagnostic orphan sweep, GET /health answers deployment probes. Grounded
// on the teacher's internal/mcp/http.go — CORS handling, bearer-token
// context injection, and JSON response helpers carried over, generalised
// from the MCP JSON-RPC envelope to a plain REST shape.
package transport

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/archimate-engine/batchmut/internal/engine"
	"github.com/archimate-engine/batchmut/internal/engineerr"
	"github.com/archimate-engine/batchmut/internal/idempotency"
	"github.com/archimate-engine/batchmut/internal/maintenance"
	"github.com/archimate-engine/batchmut/internal/model"
	"github.com/archimate-engine/batchmut/internal/validation"
)

// authContextKey is the context key bearer tokens are stored under, for
// hosts that gate plan submission behind a token (spec.md leaves
// authentication to the host environment; this is a carried-over hook,
// not an engine requirement).
type authContextKey struct{}

// WithToken returns a context carrying the given bearer token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, authContextKey{}, token)
}

// TokenFromContext returns the bearer token stashed by WithToken, if any.
func TokenFromContext(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(authContextKey{}).(string)
	return tok, ok
}

// Server wraps the in-process model and engine collaborators behind an
// HTTP API. One Server serves one model; concurrent plan submissions are
// serialized by mu since the model and command stack are not safe for
// concurrent mutation.
type Server struct {
	mu sync.Mutex

	model         *model.Model
	host          engine.Host
	engineCfg     engine.Config
	validationCfg validation.Config
	cache         *idempotency.Cache
	sweep         *maintenance.OrphanSweep

	cors   string
	logger *slog.Logger
}

// New creates an HTTP Server over m, executing plans through host with the
// given engine/validation configuration. cache may be nil to disable
// idempotent-replay lookups.
func New(m *model.Model, host engine.Host, engineCfg engine.Config, validationCfg validation.Config, cache *idempotency.Cache, corsOrigins string, logger *slog.Logger) *Server {
	return &Server{
		model:         m,
		host:          host,
		engineCfg:     engineCfg,
		validationCfg: validationCfg,
		cache:         cache,
		sweep:         maintenance.NewOrphanSweep(m, logger),
		cors:          corsOrigins,
		logger:        logger,
	}
}

// Handler returns the mux serving this Server's endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/plans", s.withCORS(s.handlePlans))
	mux.HandleFunc("/orphans", s.withCORS(s.handleOrphans))
	mux.HandleFunc("/health", s.withCORS(s.handleHealth))
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handlePlans executes a submitted change plan (spec.md §4.6/§7).
func (s *Server) handlePlans(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST, OPTIONS")
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 10*1024*1024))
	if err != nil {
		http.Error(w, `{"error":"failed to read request body"}`, http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if len(body) == 0 {
		http.Error(w, `{"error":"empty request body"}`, http.StatusBadRequest)
		return
	}

	if key := idempotencyKeyPeek(body); key != "" && s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			s.logger.Info("returning cached plan result", "idempotency_key", key)
			s.writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	s.mu.Lock()
	result, cerr := engine.ExecutePlan(r.Context(), s.model, body, s.validationCfg, s.engineCfg, s.host)
	s.mu.Unlock()

	if cerr != nil {
		s.writeEngineError(w, cerr)
		return
	}

	if key := idempotencyKeyPeek(body); key != "" && s.cache != nil {
		s.cache.Put(key, result)
	}

	s.writeJSON(w, http.StatusOK, result)
}

// handleOrphans runs the read-only orphan sweep on demand (spec.md §4.8).
func (s *Server) handleOrphans(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET, OPTIONS")
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	report := maintenance.DetectOrphans(s.model)
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, report)
}

// idempotencyKeyPeek extracts the top-level "idempotencyKey" field from a
// raw plan body without running it through full validation, so a cache hit
// can short-circuit before Compile allocates anything.
func idempotencyKeyPeek(body []byte) string {
	var peek struct {
		IdempotencyKey string `json:"idempotencyKey"`
	}
	if err := json.Unmarshal(body, &peek); err != nil {
		return ""
	}
	return peek.IdempotencyKey
}

// writeEngineError maps an engineerr.Error to an HTTP status and a JSON
// body exposing its stable code (spec.md §7).
func (s *Server) writeEngineError(w http.ResponseWriter, err *engineerr.Error) {
	status := http.StatusBadRequest
	switch err.Code {
	case engineerr.CodeTimeout:
		status = http.StatusGatewayTimeout
	case engineerr.CodeHostError, engineerr.CodeSilentRollback:
		status = http.StatusInternalServerError
	case engineerr.CodeAmbiguousMatch, engineerr.CodeDuplicateElement, engineerr.CodeDuplicateRelationship:
		status = http.StatusConflict
	}
	s.writeJSON(w, status, map[string]any{
		"code":           err.Code,
		"message":        err.Message,
		"operationIndex": err.OperationIndex,
		"details":        err.Details,
	})
}

// withCORS wraps handler with CORS header handling and OPTIONS preflight
// short-circuiting, mirroring the teacher's setCORS/handleMCP split.
func (s *Server) withCORS(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.setCORS(w, r)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		handler(w, r)
	}
}

func (s *Server) setCORS(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return
	}
	if s.cors == "*" {
		w.Header().Set("Access-Control-Allow-Origin", "*")
	} else {
		for _, allowed := range strings.Split(s.cors, ",") {
			if strings.TrimSpace(allowed) == origin {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				break
			}
		}
	}
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to write JSON response", "error", err)
	}
}

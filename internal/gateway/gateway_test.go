package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/trustline-ai/divt-gateway/internal/trustapi"
)

// fakeTrustAPI is an in-process stand-in for the remote trust API. It records
// every request so tests can assert that validation failures never reach the
// network, and it can be told to fail specific endpoints.
type fakeTrustAPI struct {
	mu       sync.Mutex
	requests []capturedRequest

	failAttestations bool
	failEvents       bool
	notFoundKeys     bool
}

type capturedRequest struct {
	Method string
	Path   string
	Body   map[string]any
}

func (f *fakeTrustAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}
	f.mu.Lock()
	f.requests = append(f.requests, capturedRequest{Method: r.Method, Path: r.URL.Path, Body: body})
	f.mu.Unlock()

	if r.Header.Get("X-API-Key") == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "missing API key"})
		return
	}

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/v1/divts":
		if f.failAttestations {
			writeJSON(w, http.StatusBadGateway, map[string]any{"message": "signing backend unavailable"})
			return
		}
		hash, _ := body["content_hash"].(string)
		objectID, _ := body["object_id"].(string)
		writeJSON(w, http.StatusOK, map[string]any{
			"divt_id":       "divt_" + shortHash(hash),
			"object_id":     objectID,
			"content_hash":  hash,
			"signatures":    map[string]any{"server": "sig-server", "user": "sig-user"},
			"ledger_status": trustapi.LedgerPending,
		})
	case r.Method == http.MethodPost && r.URL.Path == "/v1/divts/verify":
		writeJSON(w, http.StatusOK, map[string]any{
			"valid":                  true,
			"hash_match":             body["content_hash"] != nil,
			"server_signature_valid": true,
			"user_signature_valid":   true,
			"revoked":                false,
			"ledger_status":          trustapi.LedgerAnchored,
		})
	case r.Method == http.MethodPost && r.URL.Path == "/v1/events":
		if f.failEvents {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"message": "ledger write rejected"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"event_id":      fmt.Sprintf("evt_%d", f.callCount()),
			"stored":        true,
			"storage_ref":   "s3://worldstate/evt",
			"ledger_status": trustapi.LedgerPending,
		})
	case r.Method == http.MethodPost && r.URL.Path == "/v1/score/privacy":
		writeJSON(w, http.StatusOK, map[string]any{
			"confidence":              map[string]any{"overall": 0.91, "semantic_similarity": 0.88, "content_integrity": 1.0},
			"evidence_count":          2,
			"verified_evidence_count": 2,
			"explanation":             "all evidence verified",
		})
	case r.Method == http.MethodPost && r.URL.Path == "/v1/score":
		writeJSON(w, http.StatusOK, map[string]any{
			"confidence":              map[string]any{"overall": 0.85, "semantic_similarity": 0.8, "content_integrity": 0.9},
			"evidence_count":          1,
			"verified_evidence_count": 1,
			"support_score":           0.82,
			"faithfulness_score":      0.9,
			"event_id":                "evt_score",
		})
	case r.Method == http.MethodPost && r.URL.Path == "/v1/keys":
		writeJSON(w, http.StatusOK, map[string]any{"key_id": "key_1", "name": body["name"], "secret": "sk_test"})
	case r.Method == http.MethodGet && r.URL.Path == "/v1/keys":
		writeJSON(w, http.StatusOK, map[string]any{"keys": []any{map[string]any{"key_id": "key_1"}}})
	case r.Method == http.MethodPost && r.URL.Path == "/v1/keys/missing/revoke":
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "key not found: missing"})
	case r.Method == http.MethodPost && len(r.URL.Path) > len("/v1/keys/") && r.URL.Path[:len("/v1/keys/")] == "/v1/keys/":
		writeJSON(w, http.StatusOK, map[string]any{"key_id": "key_1", "revoked": true, "revoked_at": "2026-01-01T00:00:00Z"})
	case r.Method == http.MethodDelete:
		writeJSON(w, http.StatusOK, map[string]any{"event_id": "evt_1", "erased": true, "ledger_tx": "tx_9"})
	case r.Method == http.MethodPost && len(r.URL.Path) > len("/v1/divts/") && r.URL.Path[:len("/v1/divts/")] == "/v1/divts/":
		writeJSON(w, http.StatusOK, map[string]any{"divt_id": "divt_x", "revoked": true, "ledger_tx": "tx_7"})
	default:
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "no such endpoint: " + r.URL.Path})
	}
}

func (f *fakeTrustAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeTrustAPI) requestCount() int {
	return f.callCount()
}

func (f *fakeTrustAPI) lastRequest() capturedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func (f *fakeTrustAPI) requestTo(path string) (capturedRequest, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, req := range f.requests {
		if req.Path == path {
			return req, true
		}
	}
	return capturedRequest{}, false
}

func writeJSON(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}

// newTestGateway builds a Gateway backed by the fake trust API.
func newTestGateway(t *testing.T) (*Gateway, *fakeTrustAPI) {
	t.Helper()
	fake := &fakeTrustAPI{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	client := trustapi.NewClient(srv.URL, "tk_test", 5*time.Second, zap.NewNop())
	return New(client, zap.NewNop()), fake
}

func args(t *testing.T, v map[string]any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

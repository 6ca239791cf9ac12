package trustapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// APIError is a non-success response from the trust API. The message prefers
// the remote-supplied error body over the generic status phrase.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("trust API error (status %d): %s", e.StatusCode, e.Message)
}

// Client issues single requests against the trust API. Every call carries the
// static API key header; there is no retry, pooling beyond net/http's own, or
// response caching.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a trust API client. baseURL must not have a trailing slash.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// CreateAttestation issues a DIVT for a content hash.
func (c *Client) CreateAttestation(ctx context.Context, req *CreateAttestationRequest) (*Attestation, error) {
	var out Attestation
	if err := c.do(ctx, http.MethodPost, "/v1/divts", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyAttestation checks an existing DIVT, optionally against a content hash.
func (c *Client) VerifyAttestation(ctx context.Context, req *VerifyRequest) (*VerifyResult, error) {
	var out VerifyResult
	if err := c.do(ctx, http.MethodPost, "/v1/divts/verify", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateEvent appends one record to the event ledger.
func (c *Client) CreateEvent(ctx context.Context, req *CreateEventRequest) (*EventRecord, error) {
	var out EventRecord
	if err := c.do(ctx, http.MethodPost, "/v1/events", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ScorePrivacy forwards a hash-only scoring request.
func (c *Client) ScorePrivacy(ctx context.Context, req *PrivacyScoreRequest) (*ScoreResult, error) {
	var out ScoreResult
	if err := c.do(ctx, http.MethodPost, "/v1/score/privacy", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ScoreAnswer forwards a full-text scoring request.
func (c *Client) ScoreAnswer(ctx context.Context, req *AnswerScoreRequest) (*AnswerScoreResult, error) {
	var out AnswerScoreResult
	if err := c.do(ctx, http.MethodPost, "/v1/score", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateKey provisions a signing key.
func (c *Client) CreateKey(ctx context.Context, req *CreateKeyRequest) (*SigningKey, error) {
	var out SigningKey
	if err := c.do(ctx, http.MethodPost, "/v1/keys", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListKeys returns all signing keys for the credential's project.
func (c *Client) ListKeys(ctx context.Context) (*KeyList, error) {
	var out KeyList
	if err := c.do(ctx, http.MethodGet, "/v1/keys", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RevokeKey revokes a signing key.
func (c *Client) RevokeKey(ctx context.Context, keyID, reason string) (*RevokeKeyResult, error) {
	body := map[string]string{}
	if reason != "" {
		body["reason"] = reason
	}
	var out RevokeKeyResult
	path := "/v1/keys/" + url.PathEscape(keyID) + "/revoke"
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EraseEvent deletes an event from worldstate (GDPR-style erasure).
func (c *Client) EraseEvent(ctx context.Context, eventID, reason string) (*EraseResult, error) {
	body := map[string]string{}
	if reason != "" {
		body["reason"] = reason
	}
	var out EraseResult
	path := "/v1/events/" + url.PathEscape(eventID)
	if err := c.do(ctx, http.MethodDelete, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RevokeAttestation revokes a DIVT.
func (c *Client) RevokeAttestation(ctx context.Context, divtID, reason string) (*RevokeResult, error) {
	body := map[string]string{}
	if reason != "" {
		body["reason"] = reason
	}
	var out RevokeResult
	path := "/v1/divts/" + url.PathEscape(divtID) + "/revoke"
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// errorBody is the shape the trust API uses for error responses. Only one of
// the fields is typically set.
type errorBody struct {
	Message string `json:"message"`
	Err     string `json:"error"`
	Detail  string `json:"detail"`
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("trustapi: encode %s %s request: %w", method, path, err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("trustapi: build %s %s request: %w", method, path, err)
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("trustapi: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("trustapi: read %s %s response: %w", method, path, err)
	}

	c.logger.Debug("trust API call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.StatusCode, respBody),
		}
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("trustapi: decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}

// errorMessage prefers the remote-supplied message over the status phrase.
func errorMessage(status int, body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		for _, m := range []string{eb.Message, eb.Err, eb.Detail} {
			if strings.TrimSpace(m) != "" {
				return m
			}
		}
	}
	if trimmed := strings.TrimSpace(string(body)); trimmed != "" && len(trimmed) <= 512 {
		return trimmed
	}
	return http.StatusText(status)
}

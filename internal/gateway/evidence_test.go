package gateway

import (
	"context"
	"strings"
	"testing"

	"github.com/trustline-ai/divt-gateway/internal/trustapi"
)

func TestScorePrivacyRequiresEvidence(t *testing.T) {
	g, fake := newTestGateway(t)
	ctx := context.Background()

	for _, raw := range []map[string]any{
		{},
		{"evidence": []any{}},
	} {
		_, err := g.ScorePrivacy(ctx, args(t, raw))
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "evidence") {
			t.Fatalf("message does not name evidence: %v", err)
		}
	}
	if fake.requestCount() != 0 {
		t.Fatal("validation failure reached the remote API")
	}
}

func TestScorePrivacyEvidenceItemChecks(t *testing.T) {
	g, _ := newTestGateway(t)
	ctx := context.Background()

	_, err := g.ScorePrivacy(ctx, args(t, map[string]any{
		"evidence": []any{map[string]any{"divt_id": "divt_1"}},
	}))
	if err == nil || !strings.Contains(err.Error(), "item 0 is missing similarity") {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = g.ScorePrivacy(ctx, args(t, map[string]any{
		"evidence": []any{map[string]any{"divt_id": "divt_1", "similarity": 1.5}},
	}))
	if err == nil || !strings.Contains(err.Error(), "similarity must be between 0 and 1") {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = g.ScorePrivacy(ctx, args(t, map[string]any{
		"evidence": []any{map[string]any{"divt_id": "divt_1", "similarity": 0.9, "chunk_confidence": -0.1}},
	}))
	if err == nil || !strings.Contains(err.Error(), "chunk_confidence must be between 0 and 1") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestScorePrivacyForwardsHashOnlyShape(t *testing.T) {
	g, fake := newTestGateway(t)

	result, err := g.ScorePrivacy(context.Background(), args(t, map[string]any{
		"evidence": []any{
			map[string]any{"divt_id": "divt_1", "hash": "aa", "similarity": 0.9},
			map[string]any{"id": "chunk-2", "hash": "bb", "similarity": 0.8, "chunk_confidence": 0.7},
		},
		"query_id": "q-1",
	}))
	if err != nil {
		t.Fatal(err)
	}
	score := result.(*trustapi.ScoreResult)
	if score.Confidence.Overall == 0 {
		t.Fatal("empty confidence")
	}

	req := fake.lastRequest()
	if req.Path != "/v1/score/privacy" {
		t.Fatalf("wrong endpoint %s", req.Path)
	}
	items, _ := req.Body["evidence"].([]any)
	if len(items) != 2 {
		t.Fatalf("evidence count %d", len(items))
	}
	first, _ := items[0].(map[string]any)
	if _, hasText := first["text"]; hasText {
		t.Fatal("privacy evidence leaked literal text")
	}
}

func TestScoreAnswerRequiredFields(t *testing.T) {
	g, fake := newTestGateway(t)
	ctx := context.Background()

	evidence := []any{map[string]any{"text": "the sky is blue", "similarity": 0.9}}
	cases := []struct {
		name string
		args map[string]any
		want string
	}{
		{"query", map[string]any{"answer": "blue", "evidence": evidence}, "query is required"},
		{"answer", map[string]any{"query": "sky?", "evidence": evidence}, "answer is required"},
		{"evidence", map[string]any{"query": "sky?", "answer": "blue"}, "evidence"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := g.ScoreAnswer(ctx, args(t, tc.args))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("unexpected message: %v", err)
			}
		})
	}
	if fake.requestCount() != 0 {
		t.Fatal("validation failures reached the remote API")
	}
}

func TestScoreAnswerEvidenceNeedsText(t *testing.T) {
	g, _ := newTestGateway(t)

	_, err := g.ScoreAnswer(context.Background(), args(t, map[string]any{
		"query":    "sky?",
		"answer":   "blue",
		"evidence": []any{map[string]any{"similarity": 0.9}},
	}))
	if err == nil || !strings.Contains(err.Error(), "item 0 is missing text") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestScoreAnswerLogEventTier(t *testing.T) {
	g, _ := newTestGateway(t)
	ctx := context.Background()
	evidence := []any{map[string]any{"text": "the sky is blue", "similarity": 0.9}}

	_, err := g.ScoreAnswer(ctx, args(t, map[string]any{
		"query": "sky?", "answer": "blue", "evidence": evidence, "log_event": "verbose",
	}))
	if err == nil || !strings.Contains(err.Error(), "log_event") {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, tier := range []string{"", EventTierNone, EventTierMinimal, EventTierFull} {
		result, err := g.ScoreAnswer(ctx, args(t, map[string]any{
			"query": "sky?", "answer": "blue", "evidence": evidence, "log_event": tier,
		}))
		if err != nil {
			t.Fatalf("tier %q rejected: %v", tier, err)
		}
		if result.(*trustapi.AnswerScoreResult).SupportScore == 0 {
			t.Fatalf("tier %q: empty score", tier)
		}
	}
}

package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/trustline-ai/divt-gateway/internal/trustapi"
)

// Event-logging tiers accepted by divt.score_answer.
const (
	EventTierNone    = "none"
	EventTierMinimal = "minimal"
	EventTierFull    = "full"
)

type privacyEvidenceItem struct {
	ID              string   `json:"id"`
	DIVTID          string   `json:"divt_id"`
	Hash            string   `json:"hash"`
	Similarity      *float64 `json:"similarity"`
	ChunkConfidence *float64 `json:"chunk_confidence"`
}

type scorePrivacyArgs struct {
	Evidence     []privacyEvidenceItem `json:"evidence"`
	QueryID      string                `json:"query_id"`
	AnswerID     string                `json:"answer_id"`
	ModelID      string                `json:"model_id"`
	ModelVersion string                `json:"model_version"`
}

// ScorePrivacy forwards a privacy-preserving scoring request. Only
// identifiers, attestation references and hash material are permitted as
// signals; the shape itself keeps literal text out.
func (g *Gateway) ScorePrivacy(ctx context.Context, raw json.RawMessage) (any, error) {
	var args scorePrivacyArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if len(args.Evidence) == 0 {
		return nil, invalidField("evidence", "is required and must be non-empty")
	}

	items := make([]trustapi.PrivacyEvidence, 0, len(args.Evidence))
	for i, item := range args.Evidence {
		sim, err := evidenceSimilarity(item.Similarity, i)
		if err != nil {
			return nil, err
		}
		if item.ChunkConfidence != nil && (*item.ChunkConfidence < 0 || *item.ChunkConfidence > 1) {
			return nil, invalidField("evidence",
				fmt.Sprintf("item %d chunk_confidence must be between 0 and 1", i))
		}
		items = append(items, trustapi.PrivacyEvidence{
			ID:              item.ID,
			DIVTID:          item.DIVTID,
			Hash:            item.Hash,
			Similarity:      sim,
			ChunkConfidence: item.ChunkConfidence,
		})
	}

	return g.api.ScorePrivacy(ctx, &trustapi.PrivacyScoreRequest{
		Evidence:     items,
		QueryID:      args.QueryID,
		AnswerID:     args.AnswerID,
		ModelID:      args.ModelID,
		ModelVersion: args.ModelVersion,
	})
}

type fullEvidenceItem struct {
	ID         string   `json:"id"`
	DIVTID     string   `json:"divt_id"`
	Text       string   `json:"text"`
	Similarity *float64 `json:"similarity"`
}

type scoreAnswerArgs struct {
	Query    string             `json:"query"`
	Answer   string             `json:"answer"`
	Evidence []fullEvidenceItem `json:"evidence"`
	LogEvent string             `json:"log_event"`
}

// ScoreAnswer forwards a full-text scoring request. Every evidence item must
// carry literal text and a similarity score.
func (g *Gateway) ScoreAnswer(ctx context.Context, raw json.RawMessage) (any, error) {
	var args scoreAnswerArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if args.Query == "" {
		return nil, missingField("query")
	}
	if args.Answer == "" {
		return nil, missingField("answer")
	}
	if len(args.Evidence) == 0 {
		return nil, invalidField("evidence", "is required and must be non-empty")
	}
	switch args.LogEvent {
	case "", EventTierNone, EventTierMinimal, EventTierFull:
	default:
		return nil, invalidField("log_event",
			fmt.Sprintf("must be one of %q, %q or %q", EventTierNone, EventTierMinimal, EventTierFull))
	}

	items := make([]trustapi.FullEvidence, 0, len(args.Evidence))
	for i, item := range args.Evidence {
		if item.Text == "" {
			return nil, invalidField("evidence", fmt.Sprintf("item %d is missing text", i))
		}
		sim, err := evidenceSimilarity(item.Similarity, i)
		if err != nil {
			return nil, err
		}
		items = append(items, trustapi.FullEvidence{
			ID:         item.ID,
			DIVTID:     item.DIVTID,
			Text:       item.Text,
			Similarity: sim,
		})
	}

	return g.api.ScoreAnswer(ctx, &trustapi.AnswerScoreRequest{
		Query:    args.Query,
		Answer:   args.Answer,
		Evidence: items,
		LogEvent: args.LogEvent,
	})
}

func evidenceSimilarity(value *float64, index int) (float64, error) {
	if value == nil {
		return 0, invalidField("evidence", fmt.Sprintf("item %d is missing similarity", index))
	}
	if *value < 0 || *value > 1 {
		return 0, invalidField("evidence",
			fmt.Sprintf("item %d similarity must be between 0 and 1", index))
	}
	return *value, nil
}

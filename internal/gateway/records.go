package gateway

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/trustline-ai/divt-gateway/internal/canonical"
	"github.com/trustline-ai/divt-gateway/internal/trustapi"
)

// Record kinds tag what a logged event represents.
const (
	KindPromptReceipt = "prompt_receipt"
	KindSnapshot      = "kb_snapshot"
	KindAgentAction   = "agent_action"
)

// AttestOutcome names what happened to the optional secondary write.
type AttestOutcome string

const (
	// AttestSkipped: the caller did not request attestation.
	AttestSkipped AttestOutcome = "skipped"
	// AttestFull: both the event write and the attestation write succeeded.
	AttestFull AttestOutcome = "full"
	// AttestPrimaryOnly: the event write succeeded but the attestation write
	// failed; the record is still valid and the call still succeeds.
	AttestPrimaryOnly AttestOutcome = "primary_only"
)

// RecordResult is the payload shared by the linked-write tools.
type RecordResult struct {
	EventID           string        `json:"event_id"`
	Stored            bool          `json:"stored"`
	StorageRef        string        `json:"storage_ref,omitempty"`
	LedgerStatus      string        `json:"ledger_status"`
	AttestationStatus AttestOutcome `json:"attestation_status"`
	DIVTID            string        `json:"divt_id,omitempty"`
}

// writeRecord sequences the primary event write and, when requested, the
// secondary attested registration. The attestation subject is always
// "{kind}:{event id}", so it can be traced back to the primary record without
// a separate foreign key. A secondary failure never rolls back or fails the
// call: the outcome is downgraded to AttestPrimaryOnly and logged.
func (g *Gateway) writeRecord(ctx context.Context, kind string, payload map[string]any, attest bool) (*RecordResult, error) {
	event, err := g.api.CreateEvent(ctx, &trustapi.CreateEventRequest{
		Kind: kind,
		Data: payload,
	})
	if err != nil {
		return nil, err
	}

	result := &RecordResult{
		EventID:           event.EventID,
		Stored:            event.Stored,
		StorageRef:        event.StorageRef,
		LedgerStatus:      event.LedgerStatus,
		AttestationStatus: AttestSkipped,
	}
	if !attest {
		return result, nil
	}

	hash, err := canonical.HashJSON(payload)
	if err == nil {
		var att *trustapi.Attestation
		att, err = g.api.CreateAttestation(ctx, &trustapi.CreateAttestationRequest{
			ObjectID:    kind + ":" + event.EventID,
			DataType:    "application/json",
			ContentHash: hash,
			HashVersion: canonical.HashVersion,
		})
		if err == nil {
			result.AttestationStatus = AttestFull
			result.DIVTID = att.DIVTID
			return result, nil
		}
	}

	g.logger.Warn("attestation write failed after event create",
		zap.String("kind", kind),
		zap.String("event_id", event.EventID),
		zap.Error(err),
	)
	result.AttestationStatus = AttestPrimaryOnly
	return result, nil
}

// timestampOrNow returns the caller's timestamp or the current time in RFC3339.
func timestampOrNow(supplied string) string {
	if supplied != "" {
		return supplied
	}
	return time.Now().UTC().Format(time.RFC3339)
}

type promptReceiptArgs struct {
	attestFlags
	Prompt   string         `json:"prompt"`
	Response string         `json:"response"`
	Model    string         `json:"model"`
	Metadata map[string]any `json:"metadata"`
}

// CreatePromptReceipt records a prompt/response exchange in the event ledger.
func (g *Gateway) CreatePromptReceipt(ctx context.Context, raw json.RawMessage) (any, error) {
	var args promptReceiptArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if args.Prompt == "" {
		return nil, missingField("prompt")
	}
	if args.Response == "" {
		return nil, missingField("response")
	}

	payload := map[string]any{
		"kind":      KindPromptReceipt,
		"prompt":    args.Prompt,
		"response":  args.Response,
		"timestamp": timestampOrNow(""),
	}
	if args.Model != "" {
		payload["model"] = args.Model
	}
	if len(args.Metadata) > 0 {
		payload["metadata"] = args.Metadata
	}
	return g.writeRecord(ctx, KindPromptReceipt, payload, args.resolve())
}

type snapshotArgs struct {
	attestFlags
	IndexHash   string         `json:"index_hash"`
	DocHashes   []string       `json:"doc_hashes"`
	SourcePaths []string       `json:"source_paths"`
	Metadata    map[string]any `json:"metadata"`
}

// CreateSnapshot records a knowledge-base snapshot in the event ledger.
func (g *Gateway) CreateSnapshot(ctx context.Context, raw json.RawMessage) (any, error) {
	var args snapshotArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if args.IndexHash == "" {
		return nil, missingField("index_hash")
	}

	payload := map[string]any{
		"kind":       KindSnapshot,
		"index_hash": args.IndexHash,
		"timestamp":  timestampOrNow(""),
	}
	if len(args.DocHashes) > 0 {
		payload["doc_hashes"] = args.DocHashes
	}
	if len(args.SourcePaths) > 0 {
		payload["source_paths"] = args.SourcePaths
	}
	if len(args.Metadata) > 0 {
		payload["metadata"] = args.Metadata
	}
	return g.writeRecord(ctx, KindSnapshot, payload, args.resolve())
}

type agentActionArgs struct {
	attestFlags
	Action   string         `json:"action"`
	Actor    string         `json:"actor"`
	Params   map[string]any `json:"params"`
	Context  map[string]any `json:"context"`
	Metadata map[string]any `json:"metadata"`
}

// LogAgentAction records one agent action in the event ledger.
func (g *Gateway) LogAgentAction(ctx context.Context, raw json.RawMessage) (any, error) {
	var args agentActionArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if args.Action == "" {
		return nil, missingField("action")
	}
	if args.Actor == "" {
		return nil, missingField("actor")
	}

	payload := map[string]any{
		"kind":      KindAgentAction,
		"action":    args.Action,
		"actor":     args.Actor,
		"timestamp": timestampOrNow(""),
	}
	if len(args.Params) > 0 {
		payload["params"] = args.Params
	}
	if len(args.Context) > 0 {
		payload["context"] = args.Context
	}
	if len(args.Metadata) > 0 {
		payload["metadata"] = args.Metadata
	}
	return g.writeRecord(ctx, KindAgentAction, payload, args.resolve())
}

type logEventArgs struct {
	Kind      string         `json:"kind"`
	Data      map[string]any `json:"data"`
	Metadata  map[string]any `json:"metadata"`
	Timestamp string         `json:"timestamp"`
}

// LogEvent records a generic event. It shares the orchestrator with the
// other record tools but never requests attestation.
func (g *Gateway) LogEvent(ctx context.Context, raw json.RawMessage) (any, error) {
	var args logEventArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if args.Kind == "" {
		return nil, missingField("kind")
	}
	if args.Data == nil {
		return nil, missingField("data")
	}

	payload := map[string]any{
		"kind":      args.Kind,
		"data":      args.Data,
		"timestamp": timestampOrNow(args.Timestamp),
	}
	if len(args.Metadata) > 0 {
		payload["metadata"] = args.Metadata
	}
	return g.writeRecord(ctx, args.Kind, payload, false)
}

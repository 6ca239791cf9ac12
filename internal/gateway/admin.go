package gateway

import (
	"context"
	"encoding/json"

	"github.com/trustline-ai/divt-gateway/internal/trustapi"
)

// The admin and compliance tools have no orchestration: required identifiers
// are checked, then the call is forwarded to one remote endpoint.

type createKeyArgs struct {
	Name     string         `json:"name"`
	Metadata map[string]any `json:"metadata"`
}

// CreateKey provisions a new signing key.
func (g *Gateway) CreateKey(ctx context.Context, raw json.RawMessage) (any, error) {
	var args createKeyArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if args.Name == "" {
		return nil, missingField("name")
	}
	return g.api.CreateKey(ctx, &trustapi.CreateKeyRequest{
		Name:     args.Name,
		Metadata: args.Metadata,
	})
}

// ListKeys lists the signing keys for the configured credential.
func (g *Gateway) ListKeys(ctx context.Context, raw json.RawMessage) (any, error) {
	return g.api.ListKeys(ctx)
}

type revokeKeyArgs struct {
	KeyID  string `json:"key_id"`
	Reason string `json:"reason"`
}

// RevokeKey revokes a signing key.
func (g *Gateway) RevokeKey(ctx context.Context, raw json.RawMessage) (any, error) {
	var args revokeKeyArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if args.KeyID == "" {
		return nil, missingField("key_id")
	}
	return g.api.RevokeKey(ctx, args.KeyID, args.Reason)
}

type eraseEventArgs struct {
	EventID string `json:"event_id"`
	Reason  string `json:"reason"`
}

// EraseEvent removes an event from worldstate.
func (g *Gateway) EraseEvent(ctx context.Context, raw json.RawMessage) (any, error) {
	var args eraseEventArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if args.EventID == "" {
		return nil, missingField("event_id")
	}
	return g.api.EraseEvent(ctx, args.EventID, args.Reason)
}

type revokeDIVTArgs struct {
	DIVTID string `json:"divt_id"`
	Reason string `json:"reason"`
}

// RevokeDIVT revokes an attestation.
func (g *Gateway) RevokeDIVT(ctx context.Context, raw json.RawMessage) (any, error) {
	var args revokeDIVTArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if args.DIVTID == "" {
		return nil, missingField("divt_id")
	}
	return g.api.RevokeAttestation(ctx, args.DIVTID, args.Reason)
}

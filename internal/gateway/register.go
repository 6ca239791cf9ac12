package gateway

import (
	"context"
	"encoding/json"

	"github.com/trustline-ai/divt-gateway/internal/trustapi"
)

type registerContentArgs struct {
	ObjectID string          `json:"object_id"`
	DataType string          `json:"data_type"`
	Mode     string          `json:"mode"`
	HashMode string          `json:"hash_mode"` // deprecated alias for mode
	Content  json.RawMessage `json:"content"`
	Hash     string          `json:"hash"`
	HashVer  string          `json:"hash_version"`
	Metadata map[string]any  `json:"metadata"`
}

// RegisterContentResult is the payload for divt.register_content.
type RegisterContentResult struct {
	DIVTID       string              `json:"divt_id"`
	ContentHash  string              `json:"content_hash"`
	HashVersion  string              `json:"hash_version"`
	Signatures   trustapi.Signatures `json:"signatures"`
	LedgerStatus string              `json:"ledger_status"`
}

// RegisterContent creates a DIVT for caller-supplied content. The mode value
// selects the canonicalization strategy; all validation happens before the
// remote call.
func (g *Gateway) RegisterContent(ctx context.Context, raw json.RawMessage) (any, error) {
	var args registerContentArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if args.ObjectID == "" {
		return nil, missingField("object_id")
	}
	if args.DataType == "" {
		return nil, missingField("data_type")
	}

	value, field := resolveModeField(args.Mode, args.HashMode)
	if value == "" {
		return nil, missingField("mode")
	}
	mode, err := ParseMode(value, field)
	if err != nil {
		return nil, err
	}
	d, err := computeDigest(mode, args.Content, args.Hash, args.HashVer)
	if err != nil {
		return nil, err
	}

	att, err := g.api.CreateAttestation(ctx, &trustapi.CreateAttestationRequest{
		ObjectID:    args.ObjectID,
		DataType:    args.DataType,
		ContentHash: d.Hash,
		HashVersion: d.HashVersion,
		Metadata:    args.Metadata,
	})
	if err != nil {
		return nil, err
	}

	return &RegisterContentResult{
		DIVTID:       att.DIVTID,
		ContentHash:  att.ContentHash,
		HashVersion:  d.HashVersion,
		Signatures:   att.Signatures,
		LedgerStatus: att.LedgerStatus,
	}, nil
}

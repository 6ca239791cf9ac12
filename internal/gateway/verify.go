package gateway

import (
	"context"
	"encoding/json"

	"github.com/trustline-ai/divt-gateway/internal/trustapi"
)

type verifyContentArgs struct {
	DIVTID   string          `json:"divt_id"`
	Mode     string          `json:"mode"`
	HashMode string          `json:"hash_mode"` // deprecated alias for mode
	Content  json.RawMessage `json:"content"`
	Hash     string          `json:"hash"`
}

// VerifyContent checks an existing attestation. Verification mirrors
// registration: a precomputed hash is used directly; otherwise content plus
// mode recomputes the registration-time canonicalization locally; otherwise
// the check is identifier-only (existence, revocation, signatures).
func (g *Gateway) VerifyContent(ctx context.Context, raw json.RawMessage) (any, error) {
	var args verifyContentArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if args.DIVTID == "" {
		return nil, missingField("divt_id")
	}

	req := &trustapi.VerifyRequest{DIVTID: args.DIVTID}
	value, field := resolveModeField(args.Mode, args.HashMode)
	switch {
	case args.Hash != "":
		req.ContentHash = args.Hash
	case len(args.Content) > 0 && value != "":
		mode, err := ParseMode(value, field)
		if err != nil {
			return nil, err
		}
		d, err := computeDigest(mode, args.Content, args.Hash, "")
		if err != nil {
			return nil, err
		}
		req.ContentHash = d.Hash
	}

	return g.api.VerifyAttestation(ctx, req)
}

// Package gateway implements the tool handlers: argument normalization,
// mode dispatch, the linked-write orchestration for ledger records, evidence
// aggregation for scoring, and the pass-through admin operations. Handlers
// validate their own contracts before any remote call; the remote API is
// reached only through the trustapi client.
package gateway

import (
	"go.uber.org/zap"

	"github.com/trustline-ai/divt-gateway/internal/trustapi"
)

// Gateway holds the dependencies shared by all tool handlers. It carries no
// mutable state; every invocation is independent.
type Gateway struct {
	api    *trustapi.Client
	logger *zap.Logger
}

// New creates a Gateway.
func New(api *trustapi.Client, logger *zap.Logger) *Gateway {
	return &Gateway{api: api, logger: logger}
}

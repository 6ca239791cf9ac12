package registry

import (
	"context"
	"encoding/json"
)

// Handler executes one tool call. Arguments arrive as the raw JSON payload
// from the transport; each handler is responsible for its own contract.
type Handler func(ctx context.Context, args json.RawMessage) (any, error)

// ToolDefinition describes one tool in the catalog. Definitions are immutable
// and created once at process start.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema map[string]any
}

// Entry pairs a definition with the handler it dispatches to.
type Entry struct {
	Definition ToolDefinition
	Handler    Handler
}

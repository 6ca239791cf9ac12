package server

import (
	"encoding/json"
	"errors"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/trustline-ai/divt-gateway/internal/gateway"
	"github.com/trustline-ai/divt-gateway/internal/trustapi"
)

// Error classes recorded in the audit trail.
const (
	classValidation  = "validation"
	classUnknownTool = "unknown_tool"
	classUnknownMode = "unknown_mode"
	classRemote      = "remote"
	classInternal    = "internal"
)

// successEnvelope wraps a handler payload as the single structured content
// item of a non-error result.
func successEnvelope(payload any) (*mcpsdk.CallToolResult, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &mcpsdk.CallToolResult{
		Content:           []mcpsdk.Content{&mcpsdk.TextContent{Text: string(encoded)}},
		StructuredContent: payload,
	}, nil
}

// errorEnvelope maps any handler failure to an error result with exactly one
// human-readable message. The mapping is total: no error class escapes it.
func errorEnvelope(err error) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		IsError: true,
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: err.Error()}},
	}
}

// errorClass buckets an error for the audit trail.
func errorClass(err error) string {
	var (
		validationErr *gateway.ValidationError
		unknownTool   *gateway.UnknownToolError
		unknownMode   *gateway.UnknownModeError
		remoteErr     *trustapi.APIError
	)
	switch {
	case errors.As(err, &validationErr):
		return classValidation
	case errors.As(err, &unknownTool):
		return classUnknownTool
	case errors.As(err, &unknownMode):
		return classUnknownMode
	case errors.As(err, &remoteErr):
		return classRemote
	default:
		return classInternal
	}
}

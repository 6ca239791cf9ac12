// Package server exposes the tool catalog over the MCP list-tools/call-tool
// contract and maps every handler outcome to exactly one result envelope.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/trustline-ai/divt-gateway/internal/audit"
	"github.com/trustline-ai/divt-gateway/internal/gateway"
	"github.com/trustline-ai/divt-gateway/internal/registry"
)

// Name and Version identify the gateway in the MCP handshake.
const (
	Name    = "divt-gateway"
	Version = "1.2.0"
)

// GatewayServer dispatches tool calls against the registry.
type GatewayServer struct {
	registry *registry.Registry
	writer   audit.Writer
	logger   *zap.Logger
}

// New creates a GatewayServer with the given dependencies.
func New(reg *registry.Registry, writer audit.Writer, logger *zap.Logger) *GatewayServer {
	return &GatewayServer{
		registry: reg,
		writer:   writer,
		logger:   logger,
	}
}

// Dispatch resolves a tool name, runs its handler and returns the result
// envelope. It never returns a transport-level fault: unknown tools, handler
// errors and panics all become error envelopes, and every call produces one
// audit record.
func (s *GatewayServer) Dispatch(ctx context.Context, name string, args json.RawMessage) *mcpsdk.CallToolResult {
	start := time.Now()
	requestID := uuid.New().String()

	result := s.dispatch(ctx, name, args)

	outcome := "ok"
	class := ""
	if result.errClass != "" {
		outcome = "error"
		class = result.errClass
	}
	s.writer.Write(&audit.Record{
		RequestID:  requestID,
		Tool:       name,
		Outcome:    outcome,
		ErrorClass: class,
		Timestamp:  start,
		LatencyMs:  float64(time.Since(start)) / float64(time.Millisecond),
	})
	return result.envelope
}

type dispatchResult struct {
	envelope *mcpsdk.CallToolResult
	errClass string
}

func (s *GatewayServer) dispatch(ctx context.Context, name string, args json.RawMessage) (out dispatchResult) {
	// A panicking handler must still produce an envelope.
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("internal error: %v", r)
			s.logger.Error("handler panic",
				zap.String("tool", name),
				zap.Any("panic", r),
			)
			out = dispatchResult{envelope: errorEnvelope(err), errClass: classInternal}
		}
	}()

	entry, ok := s.registry.Get(name)
	if !ok {
		err := &gateway.UnknownToolError{Name: name}
		return dispatchResult{envelope: errorEnvelope(err), errClass: classUnknownTool}
	}

	payload, err := entry.Handler(ctx, args)
	if err != nil {
		class := errorClass(err)
		if class == classRemote || class == classInternal {
			s.logger.Warn("tool call failed",
				zap.String("tool", name),
				zap.String("class", class),
				zap.Error(err),
			)
		}
		return dispatchResult{envelope: errorEnvelope(err), errClass: class}
	}

	envelope, err := successEnvelope(payload)
	if err != nil {
		s.logger.Error("result encoding failed",
			zap.String("tool", name),
			zap.Error(err),
		)
		return dispatchResult{envelope: errorEnvelope(err), errClass: classInternal}
	}
	return dispatchResult{envelope: envelope}
}

// MCPServer builds the SDK server with every catalog tool registered.
func (s *GatewayServer) MCPServer() *mcpsdk.Server {
	srv := mcpsdk.NewServer(&mcpsdk.Implementation{Name: Name, Version: Version}, nil)
	for _, def := range s.registry.Definitions() {
		name := def.Name
		srv.AddTool(&mcpsdk.Tool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.InputSchema,
		}, func(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
			return s.Dispatch(ctx, name, req.Params.Arguments), nil
		})
	}
	return srv
}

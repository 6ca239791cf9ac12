// Package registry holds the static tool catalog: names, input schemas
// expressed as data, and the handler each name dispatches to. The registry is
// built once at startup and read-only thereafter.
package registry

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/trustline-ai/divt-gateway/internal/gateway"
)

// Registry maps tool names to definitions and handlers.
type Registry struct {
	entries map[string]Entry
	order   []string
}

// New builds the full catalog against the given gateway.
func New(g *gateway.Gateway) *Registry {
	r := &Registry{entries: make(map[string]Entry)}

	r.add(ToolDefinition{
		Name: "divt.register_content",
		Description: "Register content with the trust API and receive a signed DIVT " +
			"(attestation). The mode field selects canonicalization: content, json, " +
			"embedding, image, or custom (caller-supplied hash). The deprecated " +
			"hash_mode field and the legacy values text/hash are still accepted.",
		InputSchema: registerContentSchema,
	}, g.RegisterContent)

	r.add(ToolDefinition{
		Name: "divt.verify_content",
		Description: "Verify an existing DIVT. Supply hash for a direct check, or " +
			"content plus mode to recompute the registration-time hash, or neither " +
			"for an identifier-only check.",
		InputSchema: verifyContentSchema,
	}, g.VerifyContent)

	r.add(ToolDefinition{
		Name: "divt.create_prompt_receipt",
		Description: "Record a prompt/response exchange in the trust event ledger. " +
			"Set register_divt (deprecated: also_register_divt) to also attest the receipt.",
		InputSchema: promptReceiptSchema,
	}, g.CreatePromptReceipt)

	r.add(ToolDefinition{
		Name: "divt.create_snapshot",
		Description: "Record a knowledge-base snapshot in the trust event ledger. " +
			"Set register_divt to also attest the snapshot.",
		InputSchema: snapshotSchema,
	}, g.CreateSnapshot)

	r.add(ToolDefinition{
		Name: "divt.log_agent_action",
		Description: "Record an agent action in the trust event ledger. " +
			"Set register_divt to also attest the action record.",
		InputSchema: agentActionSchema,
	}, g.LogAgentAction)

	r.add(ToolDefinition{
		Name:        "divt.log_event",
		Description: "Record a generic event in the trust event ledger.",
		InputSchema: logEventSchema,
	}, g.LogEvent)

	r.add(ToolDefinition{
		Name: "divt.score_privacy",
		Description: "Score answer confidence from hash-only evidence. Evidence items " +
			"carry identifiers, DIVT references and hashes, never literal text.",
		InputSchema: scorePrivacySchema,
	}, g.ScorePrivacy)

	r.add(ToolDefinition{
		Name: "divt.score_answer",
		Description: "Score answer confidence from full-text evidence. Optionally logs " +
			"the scoring call as a ledger event (log_event: none, minimal or full).",
		InputSchema: scoreAnswerSchema,
	}, g.ScoreAnswer)

	r.add(ToolDefinition{
		Name:        "divt.create_key",
		Description: "Create a signing key.",
		InputSchema: createKeySchema,
	}, g.CreateKey)

	r.add(ToolDefinition{
		Name:        "divt.list_keys",
		Description: "List signing keys.",
		InputSchema: emptySchema,
	}, g.ListKeys)

	r.add(ToolDefinition{
		Name:        "divt.revoke_key",
		Description: "Revoke a signing key.",
		InputSchema: revokeKeySchema,
	}, g.RevokeKey)

	r.add(ToolDefinition{
		Name:        "divt.erase_event",
		Description: "Erase an event from worldstate (compliance erasure).",
		InputSchema: eraseEventSchema,
	}, g.EraseEvent)

	r.add(ToolDefinition{
		Name:        "divt.revoke",
		Description: "Revoke a DIVT attestation.",
		InputSchema: revokeDIVTSchema,
	}, g.RevokeDIVT)

	return r
}

func (r *Registry) add(def ToolDefinition, h Handler) {
	if _, exists := r.entries[def.Name]; exists {
		panic("registry: duplicate tool name " + def.Name)
	}
	r.entries[def.Name] = Entry{Definition: def, Handler: h}
	r.order = append(r.order, def.Name)
}

// Get resolves a tool name.
func (r *Registry) Get(name string) (Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Definitions returns all tool definitions in registration order.
func (r *Registry) Definitions() []ToolDefinition {
	defs := make([]ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.entries[name].Definition)
	}
	return defs
}

// CompileSchemas compiles every input schema, catching authoring errors at
// startup rather than at call time. Runtime narrowing stays in the handlers.
func (r *Registry) CompileSchemas() error {
	for _, name := range r.order {
		// Round-trip through encoding/json so the compiler sees pure JSON
		// values rather than Go literals.
		encoded, err := json.Marshal(r.entries[name].Definition.InputSchema)
		if err != nil {
			return fmt.Errorf("registry: encode schema for %s: %w", name, err)
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(encoded))
		if err != nil {
			return fmt.Errorf("registry: decode schema for %s: %w", name, err)
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(name+".json", doc); err != nil {
			return fmt.Errorf("registry: add schema for %s: %w", name, err)
		}
		if _, err := c.Compile(name + ".json"); err != nil {
			return fmt.Errorf("registry: compile schema for %s: %w", name, err)
		}
	}
	return nil
}

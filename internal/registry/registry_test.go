package registry

import (
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/trustline-ai/divt-gateway/internal/gateway"
	"github.com/trustline-ai/divt-gateway/internal/trustapi"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	client := trustapi.NewClient("http://127.0.0.1:1", "tk", time.Second, zap.NewNop())
	return New(gateway.New(client, zap.NewNop()))
}

func TestCatalogNamesAndHandlers(t *testing.T) {
	r := newTestRegistry(t)
	defs := r.Definitions()
	if len(defs) != 13 {
		t.Fatalf("catalog has %d tools", len(defs))
	}

	seen := map[string]bool{}
	for _, def := range defs {
		if !strings.HasPrefix(def.Name, "divt.") {
			t.Fatalf("tool name %q lacks the divt. prefix", def.Name)
		}
		if seen[def.Name] {
			t.Fatalf("duplicate tool %q", def.Name)
		}
		seen[def.Name] = true
		if def.Description == "" {
			t.Fatalf("tool %q has no description", def.Name)
		}
		entry, ok := r.Get(def.Name)
		if !ok || entry.Handler == nil {
			t.Fatalf("tool %q has no handler", def.Name)
		}
	}

	for _, name := range []string{
		"divt.register_content", "divt.verify_content",
		"divt.create_prompt_receipt", "divt.create_snapshot",
		"divt.log_agent_action", "divt.log_event",
		"divt.score_privacy", "divt.score_answer",
		"divt.create_key", "divt.list_keys", "divt.revoke_key",
		"divt.erase_event", "divt.revoke",
	} {
		if !seen[name] {
			t.Fatalf("catalog is missing %q", name)
		}
	}
}

func TestGetUnknownTool(t *testing.T) {
	r := newTestRegistry(t)
	if _, ok := r.Get("divt.nonexistent"); ok {
		t.Fatal("unknown name resolved")
	}
}

func TestDefinitionsOrderStable(t *testing.T) {
	r := newTestRegistry(t)
	first := r.Definitions()
	second := r.Definitions()
	for i := range first {
		if first[i].Name != second[i].Name {
			t.Fatal("definition order not stable")
		}
	}
	if first[0].Name != "divt.register_content" {
		t.Fatalf("first tool is %q", first[0].Name)
	}
}

func TestCompileSchemas(t *testing.T) {
	r := newTestRegistry(t)
	if err := r.CompileSchemas(); err != nil {
		t.Fatal(err)
	}
}

func TestRegisterContentSchemaAcceptsLegacyModeValues(t *testing.T) {
	r := newTestRegistry(t)
	entry, ok := r.Get("divt.register_content")
	if !ok {
		t.Fatal("missing divt.register_content")
	}
	props := entry.Definition.InputSchema["properties"].(map[string]any)
	enum := props["mode"].(map[string]any)["enum"].([]any)

	want := map[string]bool{"content": false, "json": false, "embedding": false,
		"image": false, "custom": false, "text": false, "hash": false}
	for _, v := range enum {
		if _, ok := want[v.(string)]; ok {
			want[v.(string)] = true
		}
	}
	for value, found := range want {
		if !found {
			t.Fatalf("mode enum is missing %q", value)
		}
	}
}

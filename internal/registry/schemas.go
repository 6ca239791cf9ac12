package registry

// Input schemas, expressed as data. These describe each tool's contract to
// callers; the handlers enforce it.

func objectSchema(props map[string]any, required ...string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		req := make([]any, len(required))
		for i, r := range required {
			req[i] = r
		}
		s["required"] = req
	}
	return s
}

func stringProp(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func boolProp(desc string) map[string]any {
	return map[string]any{"type": "boolean", "description": desc}
}

func objProp(desc string) map[string]any {
	return map[string]any{"type": "object", "description": desc}
}

func enumProp(desc string, values ...any) map[string]any {
	return map[string]any{"type": "string", "description": desc, "enum": values}
}

func arrayProp(desc string, items map[string]any) map[string]any {
	return map[string]any{"type": "array", "description": desc, "items": items}
}

func scoreProp(desc string) map[string]any {
	return map[string]any{"type": "number", "description": desc, "minimum": 0, "maximum": 1}
}

var emptySchema = objectSchema(map[string]any{})

var registerContentSchema = objectSchema(map[string]any{
	"object_id": stringProp("Caller-assigned identifier for the object being attested."),
	"data_type": stringProp("Logical type of the content, e.g. a MIME type."),
	"mode": enumProp("Canonicalization mode. Legacy values text and hash map to content and custom.",
		"content", "json", "embedding", "image", "custom", "text", "hash"),
	"hash_mode":    stringProp("Deprecated alias for mode."),
	"content":      map[string]any{"description": "The content to canonicalize and hash; shape depends on mode."},
	"hash":         stringProp("Precomputed hash, required for mode custom."),
	"hash_version": stringProp("Version tag for a precomputed hash."),
	"metadata":     objProp("Free-form metadata stored with the attestation."),
}, "object_id", "data_type", "mode")

var verifyContentSchema = objectSchema(map[string]any{
	"divt_id":   stringProp("Identifier of the attestation to verify."),
	"mode":      stringProp("Canonicalization mode used at registration time."),
	"hash_mode": stringProp("Deprecated alias for mode."),
	"content":   map[string]any{"description": "Content to recompute the hash from; shape depends on mode."},
	"hash":      stringProp("Precomputed hash to verify directly."),
}, "divt_id")

var attestFlagProps = map[string]any{
	"register_divt":      boolProp("Also create a DIVT attesting the record."),
	"also_register_divt": boolProp("Deprecated alias for register_divt."),
}

func withAttestFlags(props map[string]any) map[string]any {
	for k, v := range attestFlagProps {
		props[k] = v
	}
	return props
}

var promptReceiptSchema = objectSchema(withAttestFlags(map[string]any{
	"prompt":   stringProp("The prompt sent to the model."),
	"response": stringProp("The model's response."),
	"model":    stringProp("Model identifier."),
	"metadata": objProp("Free-form metadata stored with the receipt."),
}), "prompt", "response")

var snapshotSchema = objectSchema(withAttestFlags(map[string]any{
	"index_hash":   stringProp("Hash of the knowledge-base index."),
	"doc_hashes":   arrayProp("Hashes of individual documents.", stringProp("")),
	"source_paths": arrayProp("Source paths covered by the snapshot.", stringProp("")),
	"metadata":     objProp("Free-form metadata stored with the snapshot."),
}), "index_hash")

var agentActionSchema = objectSchema(withAttestFlags(map[string]any{
	"action":   stringProp("Name of the action taken."),
	"actor":    stringProp("Identifier of the acting agent."),
	"params":   objProp("Arguments the action was invoked with."),
	"context":  objProp("Ambient context at the time of the action."),
	"metadata": objProp("Free-form metadata stored with the record."),
}), "action", "actor")

var logEventSchema = objectSchema(map[string]any{
	"kind":      stringProp("Record-kind discriminator for the event."),
	"data":      objProp("Event payload."),
	"metadata":  objProp("Free-form metadata stored with the event."),
	"timestamp": stringProp("RFC 3339 timestamp; defaults to the current time."),
}, "kind", "data")

var privacyEvidenceItemSchema = objectSchema(map[string]any{
	"id":               stringProp("Evidence chunk identifier."),
	"divt_id":          stringProp("Attestation reference for the chunk."),
	"hash":             stringProp("Content hash of the chunk."),
	"similarity":       scoreProp("Similarity between the chunk and the answer."),
	"chunk_confidence": scoreProp("Chunk-level confidence."),
}, "similarity")

var scorePrivacySchema = objectSchema(map[string]any{
	"evidence":      arrayProp("Hash-only evidence items.", privacyEvidenceItemSchema),
	"query_id":      stringProp("Identifier of the query."),
	"answer_id":     stringProp("Identifier of the answer."),
	"model_id":      stringProp("Model identifier."),
	"model_version": stringProp("Model version."),
}, "evidence")

var fullEvidenceItemSchema = objectSchema(map[string]any{
	"id":         stringProp("Evidence chunk identifier."),
	"divt_id":    stringProp("Attestation reference for the chunk."),
	"text":       stringProp("Literal chunk text."),
	"similarity": scoreProp("Similarity between the chunk and the answer."),
}, "text", "similarity")

var scoreAnswerSchema = objectSchema(map[string]any{
	"query":     stringProp("The question that was asked."),
	"answer":    stringProp("The answer to score."),
	"evidence":  arrayProp("Full-text evidence items.", fullEvidenceItemSchema),
	"log_event": enumProp("Whether the scoring call also logs a ledger event.", "none", "minimal", "full"),
}, "query", "answer", "evidence")

var createKeySchema = objectSchema(map[string]any{
	"name":     stringProp("Human-readable key name."),
	"metadata": objProp("Free-form metadata stored with the key."),
}, "name")

var revokeKeySchema = objectSchema(map[string]any{
	"key_id": stringProp("Identifier of the key to revoke."),
	"reason": stringProp("Reason for revocation."),
}, "key_id")

var eraseEventSchema = objectSchema(map[string]any{
	"event_id": stringProp("Identifier of the event to erase."),
	"reason":   stringProp("Reason for erasure."),
}, "event_id")

var revokeDIVTSchema = objectSchema(map[string]any{
	"divt_id": stringProp("Identifier of the attestation to revoke."),
	"reason":  stringProp("Reason for revocation."),
}, "divt_id")

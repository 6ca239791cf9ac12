package trustapi

// Ledger status values reported by the trust API for any write.
const (
	LedgerPending  = "pending"
	LedgerAnchored = "anchored"
)

// Signatures holds the two signatures attached to an attestation.
type Signatures struct {
	Server string `json:"server,omitempty"`
	User   string `json:"user,omitempty"`
}

// CreateAttestationRequest creates a DIVT binding an object id to a content hash.
type CreateAttestationRequest struct {
	ObjectID    string         `json:"object_id"`
	DataType    string         `json:"data_type"`
	ContentHash string         `json:"content_hash"`
	HashVersion string         `json:"hash_version,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Attestation is the record returned by a successful DIVT creation.
type Attestation struct {
	DIVTID       string     `json:"divt_id"`
	ObjectID     string     `json:"object_id,omitempty"`
	ContentHash  string     `json:"content_hash"`
	HashVersion  string     `json:"hash_version,omitempty"`
	Signatures   Signatures `json:"signatures"`
	LedgerStatus string     `json:"ledger_status"`
}

// VerifyRequest checks an existing attestation. ContentHash is optional;
// when empty the API performs existence/revocation/signature checks only.
type VerifyRequest struct {
	DIVTID      string `json:"divt_id"`
	ContentHash string `json:"content_hash,omitempty"`
}

// VerifyResult is the outcome of an attestation verification.
type VerifyResult struct {
	Valid                bool   `json:"valid"`
	HashMatch            bool   `json:"hash_match"`
	ServerSignatureValid bool   `json:"server_signature_valid"`
	UserSignatureValid   bool   `json:"user_signature_valid"`
	Revoked              bool   `json:"revoked"`
	LedgerStatus         string `json:"ledger_status"`
}

// CreateEventRequest appends one record to the trust event ledger.
type CreateEventRequest struct {
	Kind string         `json:"kind"`
	Data map[string]any `json:"data"`
}

// EventRecord is the result of one event write. EventID is the only durable
// linkage the gateway produces.
type EventRecord struct {
	EventID      string `json:"event_id"`
	Stored       bool   `json:"stored"`
	StorageRef   string `json:"storage_ref,omitempty"`
	LedgerStatus string `json:"ledger_status"`
}

// PrivacyEvidence is the hash-only evidence shape. No literal text crosses
// this boundary.
type PrivacyEvidence struct {
	ID              string   `json:"id,omitempty"`
	DIVTID          string   `json:"divt_id,omitempty"`
	Hash            string   `json:"hash,omitempty"`
	Similarity      float64  `json:"similarity"`
	ChunkConfidence *float64 `json:"chunk_confidence,omitempty"`
}

// FullEvidence carries literal text for full-mode scoring.
type FullEvidence struct {
	ID         string  `json:"id,omitempty"`
	DIVTID     string  `json:"divt_id,omitempty"`
	Text       string  `json:"text"`
	Similarity float64 `json:"similarity"`
}

// PrivacyScoreRequest asks the remote scorer for a confidence verdict using
// identifiers and hashes only.
type PrivacyScoreRequest struct {
	Evidence     []PrivacyEvidence `json:"evidence"`
	QueryID      string            `json:"query_id,omitempty"`
	AnswerID     string            `json:"answer_id,omitempty"`
	ModelID      string            `json:"model_id,omitempty"`
	ModelVersion string            `json:"model_version,omitempty"`
}

// AnswerScoreRequest asks the remote scorer for a full-text confidence verdict.
// LogEvent selects whether the scoring call also produces a ledger event
// ("none", "minimal" or "full").
type AnswerScoreRequest struct {
	Query    string         `json:"query"`
	Answer   string         `json:"answer"`
	Evidence []FullEvidence `json:"evidence"`
	LogEvent string         `json:"log_event,omitempty"`
}

// Confidence is the remote scorer's verdict breakdown.
type Confidence struct {
	Overall            float64 `json:"overall"`
	SemanticSimilarity float64 `json:"semantic_similarity"`
	ContentIntegrity   float64 `json:"content_integrity"`
}

// ScoreResult is the privacy-mode scoring response.
type ScoreResult struct {
	Confidence            Confidence `json:"confidence"`
	EvidenceCount         int        `json:"evidence_count"`
	VerifiedEvidenceCount int        `json:"verified_evidence_count"`
	Explanation           string     `json:"explanation,omitempty"`
}

// AnswerScoreResult extends ScoreResult with full-mode fields.
type AnswerScoreResult struct {
	ScoreResult
	SupportScore      float64 `json:"support_score"`
	FaithfulnessScore float64 `json:"faithfulness_score"`
	EventID           string  `json:"event_id,omitempty"`
}

// CreateKeyRequest provisions a new signing key.
type CreateKeyRequest struct {
	Name     string         `json:"name"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// SigningKey describes one API signing key. The key material itself is
// returned only on creation.
type SigningKey struct {
	KeyID     string `json:"key_id"`
	Name      string `json:"name,omitempty"`
	PublicKey string `json:"public_key,omitempty"`
	Secret    string `json:"secret,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	Revoked   bool   `json:"revoked,omitempty"`
}

// KeyList is the response to a key listing.
type KeyList struct {
	Keys []SigningKey `json:"keys"`
}

// RevokeKeyResult confirms a key revocation.
type RevokeKeyResult struct {
	KeyID     string `json:"key_id"`
	Revoked   bool   `json:"revoked"`
	RevokedAt string `json:"revoked_at,omitempty"`
}

// EraseResult confirms an event erasure.
type EraseResult struct {
	EventID  string `json:"event_id"`
	Erased   bool   `json:"erased"`
	ErasedAt string `json:"erased_at,omitempty"`
	LedgerTx string `json:"ledger_tx,omitempty"`
}

// RevokeResult confirms an attestation revocation.
type RevokeResult struct {
	DIVTID    string `json:"divt_id"`
	Revoked   bool   `json:"revoked"`
	RevokedAt string `json:"revoked_at,omitempty"`
	LedgerTx  string `json:"ledger_tx,omitempty"`
}

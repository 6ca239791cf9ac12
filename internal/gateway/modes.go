package gateway

import (
	"encoding/json"
	"fmt"

	"github.com/trustline-ai/divt-gateway/internal/canonical"
)

// Mode selects the canonicalization/registration strategy for content.
type Mode string

const (
	ModeContent   Mode = "content"
	ModeJSON      Mode = "json"
	ModeEmbedding Mode = "embedding"
	ModeImage     Mode = "image"
	ModeCustom    Mode = "custom"
)

// CustomHashVersion tags caller-supplied hashes that arrive without an
// explicit version.
const CustomHashVersion = "custom-v1"

// Deprecated mode values still accepted on the wire, independent of which
// field name carried them.
var legacyModeValues = map[string]Mode{
	"text": ModeContent,
	"hash": ModeCustom,
}

// ParseMode resolves a mode value, applying the legacy value aliases. field
// names the argument the value arrived in so the error message matches what
// callers pattern-match on.
func ParseMode(value, field string) (Mode, error) {
	switch Mode(value) {
	case ModeContent, ModeJSON, ModeEmbedding, ModeImage, ModeCustom:
		return Mode(value), nil
	}
	if m, ok := legacyModeValues[value]; ok {
		return m, nil
	}
	return "", &UnknownModeError{Field: field, Value: value}
}

// digest is the outcome of one canonicalization strategy.
type digest struct {
	Hash        string
	HashVersion string
}

// computeDigest applies the strategy for mode to the raw content. All type
// mismatches are reported before any remote call is attempted.
func computeDigest(mode Mode, content json.RawMessage, suppliedHash, suppliedVersion string) (digest, error) {
	switch mode {
	case ModeContent:
		if len(content) == 0 {
			return digest{}, invalidField("content", fmt.Sprintf("is required when mode is %q", mode))
		}
		var text string
		if err := json.Unmarshal(content, &text); err != nil {
			return digest{}, invalidField("content", fmt.Sprintf("must be a string when mode is %q", mode))
		}
		return digest{Hash: canonical.HashText(text), HashVersion: canonical.HashVersion}, nil

	case ModeJSON:
		if len(content) == 0 {
			return digest{}, invalidField("content", fmt.Sprintf("is required when mode is %q", mode))
		}
		var obj map[string]any
		if err := json.Unmarshal(content, &obj); err != nil {
			return digest{}, invalidField("content", fmt.Sprintf("must be a JSON object when mode is %q", mode))
		}
		hash, err := canonical.HashJSON(obj)
		if err != nil {
			return digest{}, invalidField("content", "could not be canonicalized: "+err.Error())
		}
		return digest{Hash: hash, HashVersion: canonical.HashVersion}, nil

	case ModeEmbedding:
		if len(content) == 0 {
			return digest{}, invalidField("content", fmt.Sprintf("is required when mode is %q", mode))
		}
		var vector []float64
		if err := json.Unmarshal(content, &vector); err != nil {
			return digest{}, invalidField("content", fmt.Sprintf("must be an array of numbers when mode is %q", mode))
		}
		if len(vector) == 0 {
			return digest{}, invalidField("content", fmt.Sprintf("must be non-empty when mode is %q", mode))
		}
		return digest{Hash: canonical.HashVector(vector), HashVersion: canonical.HashVersion}, nil

	case ModeImage:
		if len(content) == 0 {
			return digest{}, invalidField("content", fmt.Sprintf("is required when mode is %q", mode))
		}
		var encoded string
		if err := json.Unmarshal(content, &encoded); err != nil {
			return digest{}, invalidField("content", fmt.Sprintf("must be a base64 string when mode is %q", mode))
		}
		hash, err := canonical.HashImage(encoded)
		if err != nil {
			return digest{}, invalidField("content", fmt.Sprintf("must be valid base64 when mode is %q", mode))
		}
		return digest{Hash: hash, HashVersion: canonical.HashVersion}, nil

	case ModeCustom:
		if suppliedHash == "" {
			return digest{}, invalidField("hash", fmt.Sprintf("is required when mode is %q", mode))
		}
		version := suppliedVersion
		if version == "" {
			version = CustomHashVersion
		}
		return digest{Hash: suppliedHash, HashVersion: version}, nil
	}
	// Unreachable for modes produced by ParseMode.
	return digest{}, &UnknownModeError{Field: "mode", Value: string(mode)}
}

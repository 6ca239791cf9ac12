// Package canonical provides the deterministic serialization and hashing
// helpers used before registering or verifying content. Identical logical
// content always hashes identically, regardless of key order or encoding
// incidentals.
package canonical

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"

	"golang.org/x/crypto/sha3"
)

// HashVersion tags every hash computed by this package.
const HashVersion = "sha3-256-v1"

// HashBytes returns the hex SHA3-256 of raw bytes.
func HashBytes(b []byte) string {
	sum := sha3.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// HashText hashes opaque text.
func HashText(s string) string {
	return HashBytes([]byte(s))
}

// MarshalJSON renders v as canonical JSON: object keys sorted recursively,
// no insignificant whitespace, numbers preserved as written.
func MarshalJSON(v any) ([]byte, error) {
	// Round-trip through encoding/json so arbitrary Go values collapse to
	// the JSON data model before ordering is applied.
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := writeCanonical(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// HashJSON canonicalizes v and hashes the result.
func HashJSON(v any) (string, error) {
	b, err := MarshalJSON(v)
	if err != nil {
		return "", err
	}
	return HashBytes(b), nil
}

// HashVector hashes an ordered numeric sequence. Each element is encoded as
// a big-endian IEEE-754 double so the byte stream is order- and
// precision-exact.
func HashVector(v []float64) string {
	buf := make([]byte, 8*len(v))
	for i, f := range v {
		binary.BigEndian.PutUint64(buf[i*8:], math.Float64bits(f))
	}
	return HashBytes(buf)
}

// HashImage decodes base64-encoded binary and hashes the decoded bytes.
func HashImage(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decode base64 image data: %w", err)
	}
	return HashBytes(raw), nil
}

func writeCanonical(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		buf.WriteString(strconv.FormatBool(val))
	case json.Number:
		buf.WriteString(val.String())
	case string:
		encoded, err := json.Marshal(val)
		if err != nil {
			return err
		}
		buf.Write(encoded)
	case []any:
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonical(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			encodedKey, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(encodedKey)
			buf.WriteByte(':')
			if err := writeCanonical(buf, val[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("canonical: unsupported value of type %T", v)
	}
	return nil
}

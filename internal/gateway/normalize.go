package gateway

import "encoding/json"

// Parameter names have drifted over the adapter's life; the rules here
// reconcile old and new spellings deterministically. When both names are
// present the new name wins; when only the deprecated name is present its
// value is adopted under the new name. Value-level aliases for the mode field
// live in modes.go.

// decodeArgs unmarshals a raw argument payload into a per-tool struct. A
// missing or empty payload leaves the struct zeroed; required-field checks
// belong to the handler.
func decodeArgs(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return invalidField("arguments", "are not a valid JSON object: "+err.Error())
	}
	return nil
}

// attestFlags is embedded by the linked-write tools to carry the attestation
// request flag under both its current and deprecated names. Pointers
// distinguish "absent" from "false" so the new name is authoritative whenever
// it is present at all.
type attestFlags struct {
	RegisterDIVT     *bool `json:"register_divt"`
	AlsoRegisterDIVT *bool `json:"also_register_divt"`
}

func (f attestFlags) resolve() bool {
	if f.RegisterDIVT != nil {
		return *f.RegisterDIVT
	}
	if f.AlsoRegisterDIVT != nil {
		return *f.AlsoRegisterDIVT
	}
	return false
}

// resolveModeField picks the authoritative mode value and reports which field
// carried it, so downstream errors name the field the caller actually used.
func resolveModeField(mode, hashMode string) (value, field string) {
	if mode != "" {
		return mode, "mode"
	}
	return hashMode, "hash_mode"
}

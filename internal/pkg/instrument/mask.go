package instrument

import (
	"slices"
	"strings"
)

// SensitiveFields are masked in logs whether or not they are configured.
// Admin credentials, one-time codes and access cookies travel under these keys.
var SensitiveFields = []string{
	"password",
	"otp",
	"email",
	"token",
	"access_token",
	"authorization",
	"cookie",
	"set-cookie",
}

// MaskKeys returns the lookup set of lower-cased field names to mask:
// SensitiveFields plus fields.
func MaskKeys(fields []string) map[string]struct{} {
	keys := make(map[string]struct{}, len(SensitiveFields)+len(fields))
	for _, field := range slices.Concat(SensitiveFields, fields) {
		field = strings.TrimSpace(strings.ToLower(field))
		if field == "" {
			continue
		}
		keys[field] = struct{}{}
	}
	return keys
}

// MaskData replaces the value of every masked key found in decoded JSON.
func MaskData(v any, keys map[string]struct{}) any {
	switch val := v.(type) {
	case map[string]any:
		masked := make(map[string]any, len(val))
		for k, v2 := range val {
			if _, found := keys[strings.ToLower(k)]; found {
				masked[k] = "***"
			} else {
				masked[k] = MaskData(v2, keys)
			}
		}
		return masked
	case []any:
		res := make([]any, len(val))
		for i, v2 := range val {
			res[i] = MaskData(v2, keys)
		}
		return res
	default:
		return v
	}
}

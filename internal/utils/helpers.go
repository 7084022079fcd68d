// Package utils holds the helpers shared by the HTTP layer: error values and
// their JSON rendering, request decoding and validation, and logging.
package utils

import (
	"strings"

	"github.com/iamyashsharma43/SENTIFY/internal/constants"
)

// sensitiveKeys lists field names whose values must never reach the logs.
// Lookups are case-insensitive.
var sensitiveKeys = map[string]struct{}{
	"password":      {},
	"passwd":        {},
	"api_key":       {},
	"apikey":        {},
	"secret":        {},
	"secret_key":    {},
	"token":         {},
	"access_token":  {},
	"authorization": {},
}

// TruncateString shortens s to at most maxLen bytes, ending in "..." when
// there is room for it.
func TruncateString(s string, maxLen int) string {
	switch {
	case len(s) <= maxLen:
		return s
	case maxLen <= 3:
		return s[:maxLen]
	default:
		return s[:maxLen-3] + "..."
	}
}

// IsSensitiveKey reports whether a field name carries a credential.
func IsSensitiveKey(key string) bool {
	_, ok := sensitiveKeys[strings.ToLower(key)]
	return ok
}

// SanitizeKeys returns a copy of data with credential values replaced.
// Nested maps, and slices of maps or values, are copied and masked as well.
func SanitizeKeys(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		if IsSensitiveKey(k) {
			out[k] = constants.LogRedactedValue
			continue
		}
		out[k] = sanitizeValue(v)
	}
	return out
}

func sanitizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return SanitizeKeys(val)
	case []map[string]interface{}:
		masked := make([]map[string]interface{}, len(val))
		for i, m := range val {
			masked[i] = SanitizeKeys(m)
		}
		return masked
	case []interface{}:
		masked := make([]interface{}, len(val))
		for i, item := range val {
			masked[i] = sanitizeValue(item)
		}
		return masked
	default:
		return v
	}
}

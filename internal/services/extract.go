package services

import "strings"

// Upstream card APIs are operator-configured and come in several
// response shapes. The extractor walks a decoded payload depth-first
// and returns the first plausible card code, or "" when none is found.
//
// Precedence is fixed: direct value keys are probed before nested
// containers, first match wins, and arrays are scanned left to right.
// The ordered slices below are the contract; map iteration order is
// never relied on.
var (
	directCardKeys    = []string{"cardKey", "card", "key", "code"}
	nestedContainKeys = []string{"data", "result", "item"}
)

func extractCardKey(payload any) string {
	switch v := payload.(type) {
	case string:
		return strings.TrimSpace(v)
	case []any:
		for _, el := range v {
			if key := extractCardKey(el); key != "" {
				return key
			}
		}
	case map[string]any:
		for _, k := range directCardKeys {
			if s, ok := v[k].(string); ok {
				if key := strings.TrimSpace(s); key != "" {
					return key
				}
			}
		}
		for _, k := range nestedContainKeys {
			if nested, ok := v[k]; ok {
				if key := extractCardKey(nested); key != "" {
					return key
				}
			}
		}
	}
	// numbers, booleans, null: nothing usable at this branch
	return ""
}

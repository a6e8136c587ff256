package events

import "strings"

// Helpers for walking untyped JSON payloads. Missing or mistyped fields
// resolve to zero values so callers can degrade instead of erroring.

func getMap(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	value, _ := m[key].(map[string]any)
	return value
}

func getString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	value, _ := m[key].(string)
	return value
}

// getBool accepts both JSON booleans and their string renditions, since the
// gateway is not consistent about the fromMe flag's type
func getBool(m map[string]any, key string) bool {
	if m == nil {
		return false
	}
	switch value := m[key].(type) {
	case bool:
		return value
	case string:
		return strings.EqualFold(value, "true")
	}
	return false
}

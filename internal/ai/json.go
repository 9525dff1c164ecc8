package ai

import (
	"regexp"
	"strings"
)

var jsonObjectRe = regexp.MustCompile(`\{[\s\S]*\}`)

// StripFences removes a markdown code fence wrapper from a model response.
// Models often wrap JSON in ```json ... ``` blocks even when instructed not to.
func StripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

// ExtractJSONObject returns the JSON object contained in a model response,
// tolerating code fences and stray prose around it. The outermost {...}
// span is the last resort.
func ExtractJSONObject(raw string) string {
	cleaned := StripFences(raw)
	if strings.HasPrefix(cleaned, "{") {
		return cleaned
	}
	if match := jsonObjectRe.FindString(cleaned); match != "" {
		return match
	}
	return cleaned
}

// ExtractJSONArray returns the JSON array contained in a model response.
// The span between the first '[' and the last ']' is used, matching how
// loosely models follow "return only a JSON array" instructions.
func ExtractJSONArray(raw string) (string, bool) {
	cleaned := StripFences(raw)
	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return cleaned[start : end+1], true
}

// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import (
	"encoding/json"
	"strings"
)

// CleanJSONBlock removes markdown code block wrappers and any conversational
// text around the first JSON object or array in an LLM response.
func CleanJSONBlock(text string) string {
	text = stripCodeFence(strings.TrimSpace(text))

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}

	var extracted string
	if text[start] == '{' {
		extracted = extractJSONObject(text[start:])
	} else {
		extracted = extractJSONArray(text[start:])
	}
	if extracted == "" {
		return text
	}
	return extracted
}

func stripCodeFence(text string) string {
	// Handle ```json ... ``` blocks
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	// Handle generic ``` ... ``` blocks
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip potential language identifier on first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}

// extractJSONObject returns the balanced object at the start of text, or ""
func extractJSONObject(text string) string {
	return extractBalanced(text, '{', '}')
}

// extractJSONArray returns the balanced array at the start of text, or ""
func extractJSONArray(text string) string {
	return extractBalanced(text, '[', ']')
}

func extractBalanced(text string, open, close byte) string {
	if text == "" || text[0] != open {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return text[:i+1]
			}
		}
	}
	return ""
}

// ParseDocument decodes an untrusted completion into a JSON object. Anything
// that does not decode to an object, including arrays and truncated output,
// yields an empty document. It never fails.
func ParseDocument(content string) map[string]any {
	text := CleanJSONBlock(content)

	var doc map[string]any
	if err := json.Unmarshal([]byte(text), &doc); err == nil && doc != nil {
		return doc
	}

	if strings.HasPrefix(text, "[") {
		return map[string]any{}
	}

	// Last resort: the outermost braces of the raw content
	start, end := strings.Index(content, "{"), strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		doc = nil
		if err := json.Unmarshal([]byte(content[start:end+1]), &doc); err == nil && doc != nil {
			return doc
		}
	}

	return map[string]any{}
}

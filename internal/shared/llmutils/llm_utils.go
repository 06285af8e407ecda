package llmutils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/RomanEngeler1805/deep-research-agent/internal/schema"
)

var reThink = regexp.MustCompile(`(?s)<think>.*?</think>`)

// Truncate shortens a string to at most n runes, adding "..." if it was truncated.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

// StripThink removes <think>…</think> blocks that some models embed.
func StripThink(s string) string {
	return strings.TrimSpace(reThink.ReplaceAllString(s, ""))
}

// ToolHint generates a short hint string for a list of tool calls, e.g. `google_search("weather in London")`.
// The first string argument in declaration order is shown.
func ToolHint(tcs []schema.ToolCall) string {
	parts := make([]string, 0, len(tcs))
	for _, tc := range tcs {
		firstVal := firstStringArg(tc.Arguments)
		if firstVal == "" {
			parts = append(parts, tc.Name)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s(%q)", tc.Name, Truncate(firstVal, 40)))
	}
	return strings.Join(parts, ", ")
}

var reFirstString = regexp.MustCompile(`^\s*\{\s*"[^"]*"\s*:\s*"((?:[^"\\]|\\.)*)"`)

// firstStringArg returns the value of the first member of a JSON object
// when that value is a string.
func firstStringArg(raw string) string {
	m := reFirstString.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	var s string
	if _, err := fmt.Sscanf(`"`+m[1]+`"`, "%q", &s); err != nil {
		return m[1]
	}
	return s
}

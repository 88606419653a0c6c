package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// CompleteJSON asks the provider for a JSON-only answer and decodes it into v.
// Models often wrap payloads in markdown code fences despite instructions, so
// fences are stripped before decoding.
func CompleteJSON(ctx context.Context, p Provider, system, user string, v interface{}) error {
	raw, err := p.Complete(ctx, []Message{
		{Role: RoleSystem, Content: system},
		{Role: RoleUser, Content: user},
	})
	if err != nil {
		return err
	}

	payload := StripFences(raw)
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return fmt.Errorf("model returned malformed JSON: %w", err)
	}
	return nil
}

// StripFences removes a surrounding markdown code fence, with or without a
// language tag, and returns the trimmed payload.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		// Drop the language tag line, e.g. "json"
		first := strings.TrimSpace(s[:idx])
		if len(first) <= 10 && !strings.ContainsAny(first, "{}[]") {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

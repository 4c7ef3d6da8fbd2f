package llm

import "strings"

// StripCodeFence removes a single surrounding markdown code fence from s:
// one opening line beginning with three backticks (optionally followed by a
// language tag) and one matching closing fence, then trims surrounding
// whitespace. Input without a fence is returned trimmed, so the function
// is idempotent. Nested fences inside the body are left alone.
func StripCodeFence(s string) string {
	out := strings.TrimSpace(s)
	if !strings.HasPrefix(out, "```") {
		return out
	}

	nl := strings.IndexByte(out, '\n')
	if nl == -1 {
		// A lone fence line has no content.
		return ""
	}
	body := out[nl+1:]

	// Drop the closing fence only when it starts a line and nothing but
	// whitespace follows it.
	if j := strings.LastIndex(body, "```"); j >= 0 {
		tail := body[j+3:]
		if strings.TrimSpace(tail) == "" && (j == 0 || body[j-1] == '\n') {
			body = body[:j]
		}
	}

	return strings.TrimSpace(body)
}

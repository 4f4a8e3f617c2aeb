package quiz

import (
	"net/url"
	"strconv"
	"strings"
)

// BuildURL returns the request URL for cfg. limit is always present; the
// other filters are appended only when non-empty, in a fixed order:
// limit, period, topic, difficulty, examKey.
func BuildURL(cfg Config) string {
	base := cfg.Endpoint
	if base == "" {
		base = DefaultEndpoint
	}

	limit := cfg.Limit
	if limit < 1 {
		limit = DefaultLimit
	}

	var b strings.Builder
	b.WriteString(base)

	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
		if strings.HasSuffix(base, "?") || strings.HasSuffix(base, "&") {
			sep = ""
		}
	}

	add := func(key, value string) {
		b.WriteString(sep)
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(value))
		sep = "&"
	}

	add("limit", strconv.Itoa(limit))
	for _, p := range []struct{ key, value string }{
		{"period", cfg.Period},
		{"topic", cfg.Topic},
		{"difficulty", cfg.Difficulty},
		{"examKey", cfg.ExamKey},
	} {
		if p.value != "" {
			add(p.key, p.value)
		}
	}

	return b.String()
}

package frontmatter

import (
	"fmt"
	"strings"
	"time"
)

// Fields is decoded frontmatter. Accessors never fail: absent or mistyped
// values fall back to the supplied default.
type Fields map[string]any

// String returns the string value of key, or def when absent or empty.
// Scalars that YAML decoded as numbers or booleans are formatted back to text.
func (f Fields) String(key, def string) string {
	switch v := f[key].(type) {
	case nil:
		return def
	case string:
		if v == "" {
			return def
		}
		return v
	case time.Time:
		return v.Format(time.RFC3339)
	case int, int64, float64, bool:
		return fmt.Sprint(v)
	default:
		return def
	}
}

// StringList returns key as an ordered list. A scalar string becomes a one-element
// list; empty entries are dropped; absence yields an empty (non-nil) slice.
func (f Fields) StringList(key string) []string {
	out := []string{}
	switch v := f[key].(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	case []string:
		for _, s := range v {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, item := range v {
			if item == nil {
				continue
			}
			if s := strings.TrimSpace(fmt.Sprint(item)); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// IsFalse reports whether key holds the boolean false. Strings such as "false"
// do not count.
func (f Fields) IsFalse(key string) bool {
	b, ok := f[key].(bool)
	return ok && !b
}

// dateLayouts are tried in order when a date is given as text.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Time parses key as a date. The raw text is returned alongside so callers can
// keep what the author wrote; ok is false when the value is absent or unparseable.
func (f Fields) Time(key string) (t time.Time, raw string, ok bool) {
	switch v := f[key].(type) {
	case time.Time:
		return v, v.Format("2006-01-02"), true
	case string:
		raw = strings.TrimSpace(v)
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, raw); err == nil {
				return parsed, raw, true
			}
		}
		return time.Time{}, raw, false
	default:
		return time.Time{}, "", false
	}
}

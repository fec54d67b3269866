package schema

import (
	"strings"
	"time"

	"github.com/spf13/cast"
)

const dangerousChars = `<>'"`

// Sanitize returns a cleaned copy of the record: declared numbers are
// coerced, strings trimmed and stripped of markup-breaking characters,
// dates normalized to their ISO encoding, and absent optional fields filled
// with their schema default. Runs before Validate on every write path, so
// Validate always sees canonical shapes.
func Sanitize(rec map[string]interface{}, s *Schema) map[string]interface{} {
	sanitized := make(map[string]interface{}, len(rec))
	for k, v := range rec {
		sanitized[k] = v
	}

	for _, field := range s.Fields {
		rules := s.Rules[field]
		value, present := sanitized[field]

		if !present || value == nil {
			if rules.Default != nil {
				sanitized[field] = rules.Default
			}
			continue
		}

		switch rules.Type {
		case TypeNumber:
			if num, err := cast.ToFloat64E(strings.TrimSpace(cast.ToString(value))); err == nil {
				sanitized[field] = num
			}
		case TypeDate:
			if t, ok := ParseDate(strings.TrimSpace(cast.ToString(value))); ok {
				sanitized[field] = t.Format("2006-01-02")
			}
		case TypeDateTime:
			if t, ok := ParseDate(strings.TrimSpace(cast.ToString(value))); ok {
				sanitized[field] = t.UTC().Format(time.RFC3339)
			}
		default:
			if str, ok := value.(string); ok {
				sanitized[field] = SanitizeString(str)
			}
		}

		if str, ok := sanitized[field].(string); ok && str == "" && rules.Default != nil {
			sanitized[field] = rules.Default
		}
	}

	return sanitized
}

// SanitizeString strips characters that could break HTML or JSON contexts
// and trims surrounding whitespace.
func SanitizeString(str string) string {
	var b strings.Builder
	b.Grow(len(str))
	for _, r := range str {
		if !strings.ContainsRune(dangerousChars, r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

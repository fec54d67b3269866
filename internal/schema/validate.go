package schema

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cast"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// dateLayouts are the accepted calendar date / datetime encodings, most
// specific first.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ValidationError carries the accumulated field messages of a rejected write.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, ", ")
}

// Validate checks a record against a rule table and returns the accumulated
// error messages, empty when the record is acceptable. Per field: the
// required check short-circuits the rest, the type check short-circuits the
// rest, and every remaining rule is evaluated so the caller sees all
// length/range/enum/pattern violations at once.
func Validate(rec map[string]interface{}, s *Schema) []string {
	var errs []string

	for _, field := range s.Fields {
		rules := s.Rules[field]
		value, present := rec[field]
		missing := !present || value == nil || value == ""

		if rules.Required && missing {
			errs = append(errs, fmt.Sprintf("%s is required", field))
			continue
		}
		if !rules.Required && missing {
			continue
		}

		if !checkType(value, rules.Type) {
			errs = append(errs, fmt.Sprintf("%s must be of type %s", field, rules.Type))
			continue
		}

		str := cast.ToString(value)

		if rules.MinLength > 0 && len(str) < rules.MinLength {
			errs = append(errs, fmt.Sprintf("%s must be at least %d characters", field, rules.MinLength))
		}
		if rules.MaxLength > 0 && len(str) > rules.MaxLength {
			errs = append(errs, fmt.Sprintf("%s must be no more than %d characters", field, rules.MaxLength))
		}
		if rules.Min != nil || rules.Max != nil {
			num := cast.ToFloat64(value)
			if rules.Min != nil && num < *rules.Min {
				errs = append(errs, fmt.Sprintf("%s must be at least %v", field, *rules.Min))
			}
			if rules.Max != nil && num > *rules.Max {
				errs = append(errs, fmt.Sprintf("%s must be no more than %v", field, *rules.Max))
			}
		}
		if len(rules.Enum) > 0 && !contains(rules.Enum, str) {
			errs = append(errs, fmt.Sprintf("%s must be one of: %s", field, strings.Join(rules.Enum, ", ")))
		}
		if rules.Pattern != nil && !rules.Pattern.MatchString(str) {
			errs = append(errs, fmt.Sprintf("%s format is invalid", field))
		}
	}

	return errs
}

func checkType(value interface{}, t FieldType) bool {
	switch t {
	case TypeString:
		_, ok := value.(string)
		return ok
	case TypeNumber:
		num, err := cast.ToFloat64E(value)
		return err == nil && !math.IsNaN(num) && !math.IsInf(num, 0)
	case TypeDate, TypeDateTime:
		_, ok := ParseDate(cast.ToString(value))
		return ok
	case TypeEmail:
		return emailPattern.MatchString(cast.ToString(value))
	case TypePhone:
		return phonePattern.MatchString(cast.ToString(value))
	case TypeURL:
		u, err := url.ParseRequestURI(cast.ToString(value))
		return err == nil && u.Scheme != "" && u.Host != ""
	default:
		return true
	}
}

// ParseDate accepts any of the supported date encodings.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

package wizard

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Section holds the raw values of one form data section. Values arrive from
// JSON, so they are strings, booleans, numbers, or arrays of strings.
type Section map[string]any

func (s Section) String(id string) string {
	if s == nil {
		return ""
	}
	value, _ := s[id].(string)
	return strings.TrimSpace(value)
}

func (s Section) Bool(id string) bool {
	if s == nil {
		return false
	}
	value, _ := s[id].(bool)
	return value
}

func (s Section) Float(id string) float64 {
	if s == nil {
		return 0
	}
	switch value := s[id].(type) {
	case float64:
		return value
	case int:
		return float64(value)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

func (s Section) Strings(id string) []string {
	if s == nil {
		return nil
	}
	switch value := s[id].(type) {
	case []string:
		return value
	case []any:
		items := make([]string, 0, len(value))
		for _, item := range value {
			if text, ok := item.(string); ok {
				items = append(items, text)
			}
		}
		return items
	default:
		return nil
	}
}

// Validate checks the given fields against a section's current values and
// returns a map of field id to error message. Fields hidden by their
// conditional rule are never validated.
func Validate(fields []FieldDefinition, section Section) map[string]string {
	errs := make(map[string]string)

	for _, field := range fields {
		if !fieldVisible(field, section) {
			continue
		}

		value := section[field.ID]
		if field.Required && isEmptyValue(value) {
			errs[field.ID] = fmt.Sprintf("%s is required", field.Label)
			continue
		}
		if field.Pattern == "" || isEmptyValue(value) {
			continue
		}

		re, err := regexp.Compile(field.Pattern)
		if err != nil {
			continue
		}
		if !re.MatchString(coerceString(value)) {
			errs[field.ID] = fmt.Sprintf("Invalid format for %s", field.Label)
		}
	}

	return errs
}

func fieldVisible(field FieldDefinition, section Section) bool {
	if field.Conditional == nil {
		return true
	}
	if section == nil {
		return false
	}
	return valuesEqual(section[field.Conditional.Field], field.Conditional.Value)
}

func valuesEqual(actual, expected any) bool {
	if actual == expected {
		return true
	}
	return coerceString(actual) == coerceString(expected)
}

func isEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case bool:
		return !v
	case float64:
		return v == 0
	case int:
		return v == 0
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	default:
		return false
	}
}

func coerceString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

package schema

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// Issue codes reported by the Validator.
const (
	IssueRequiredFieldMissing = "REQUIRED_FIELD_MISSING"
	IssueNullValue            = "NULL_VALUE"
	IssueTypeMismatch         = "TYPE_MISMATCH"
	IssueInvalidEnumValue     = "INVALID_ENUM_VALUE"
	IssueUnexpectedField      = "UNEXPECTED_FIELD"
)

// Validator checks documents against a schema: required fields, field types
// (with string coercion), enum membership and unexpected fields.
// A Validator holds no per-call state and is safe for concurrent use.
type Validator struct {
	schema *SchemaDefinition
}

// NewValidator creates a new Validator for the given schema.
func NewValidator(schema *SchemaDefinition) *Validator {
	return &Validator{schema: schema}
}

// Validate checks if a given data map conforms to the validator's schema.
// It returns whether validation succeeded and the issues found. With loose set,
// missing required fields are ignored, which is what partial updates need.
func (v *Validator) Validate(data map[string]any, loose bool) (bool, []Issue) {
	issues := make([]Issue, 0)

	names := make([]string, 0, len(v.schema.Fields))
	for name := range v.schema.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		def := v.schema.Fields[name]
		value, exists := data[name]
		if !exists {
			if def.Required && !loose {
				issues = append(issues, newIssue(IssueRequiredFieldMissing, fmt.Sprintf("Required field '%s' is missing", name), name))
			}
			continue
		}
		issues = append(issues, v.validateFieldValue(value, def, name)...)
	}

	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, ok := v.schema.Fields[key]; !ok {
			issues = append(issues, newIssue(IssueUnexpectedField, fmt.Sprintf("Unexpected field '%s' not defined in schema", key), key))
		}
	}

	return len(issues) == 0, issues
}

func newIssue(code, message, path string) Issue {
	return Issue{Code: code, Message: message, Path: path, Severity: "error"}
}

// validateFieldValue validates a single field's value against its definition.
func (v *Validator) validateFieldValue(value any, def *FieldDefinition, path string) []Issue {
	if value == nil || isStringNull(value) {
		if def.Required {
			return []Issue{newIssue(IssueNullValue, "Field cannot be null", path)}
		}
		return nil
	}

	value = coerceValue(value, def.Type)

	switch def.Type {
	case FieldTypeString, FieldTypeDate:
		if _, ok := value.(string); !ok {
			return []Issue{newIssue(IssueTypeMismatch, fmt.Sprintf("Expected string, got %T", value), path)}
		}
	case FieldTypeNumber:
		if !isNumericType(value) {
			return []Issue{newIssue(IssueTypeMismatch, fmt.Sprintf("Expected number, got %T", value), path)}
		}
	case FieldTypeInteger:
		if !isIntegerType(value) {
			return []Issue{newIssue(IssueTypeMismatch, fmt.Sprintf("Expected integer, got %T", value), path)}
		}
	case FieldTypeBoolean:
		if _, ok := value.(bool); !ok {
			return []Issue{newIssue(IssueTypeMismatch, fmt.Sprintf("Expected boolean, got %T", value), path)}
		}
	case FieldTypeArray:
		if !isArrayType(value) {
			return []Issue{newIssue(IssueTypeMismatch, fmt.Sprintf("Expected array, got %T", value), path)}
		}
	case FieldTypeEnum:
		str := fmt.Sprint(value)
		if len(def.Values) > 0 && !slices.Contains(def.Values, str) {
			return []Issue{newIssue(IssueInvalidEnumValue, fmt.Sprintf("Value '%s' is not one of %v", str, def.Values), path)}
		}
	}
	return nil
}

// coerceValue attempts to convert a string value to the expected type. Values
// that cannot be coerced are returned unchanged.
func coerceValue(value any, expectedType FieldType) any {
	str, ok := value.(string)
	if !ok {
		return value
	}

	switch expectedType {
	case FieldTypeBoolean:
		switch strings.ToLower(str) {
		case "true":
			return true
		case "false":
			return false
		}
	case FieldTypeInteger:
		if intVal, err := strconv.ParseInt(str, 10, 64); err == nil {
			return int(intVal)
		}
	case FieldTypeNumber:
		if floatVal, err := strconv.ParseFloat(str, 64); err == nil {
			return floatVal
		}
	}
	return value
}

// isStringNull checks if a value is the string "null", case-insensitively.
func isStringNull(value any) bool {
	if str, ok := value.(string); ok {
		return strings.ToLower(str) == "null"
	}
	return false
}

func isNumericType(value any) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	}
	return false
}

// isIntegerType accepts integral floats too, since JSON decoding produces
// float64 for every number.
func isIntegerType(value any) bool {
	switch n := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float64:
		return n == math.Trunc(n)
	case float32:
		return float64(n) == math.Trunc(float64(n))
	}
	return false
}

func isArrayType(value any) bool {
	kind := reflect.TypeOf(value).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}

// Package schema describes the shape of portal records and validates documents
// against it before they reach a store.
package schema

// LogicalOperator defines how multiple conditions are combined.
type LogicalOperator string

const (
	LogicalAnd LogicalOperator = "and" // All conditions must be true
	LogicalOr  LogicalOperator = "or"  // At least one condition must be true
	LogicalNot LogicalOperator = "not" // Negates a condition or group of conditions
	LogicalNor LogicalOperator = "nor" // None of the conditions must be true
)

// FieldType is the primitive type of a record field.
type FieldType string

const (
	FieldTypeString  FieldType = "string"  // Text data
	FieldTypeNumber  FieldType = "number"  // Numeric data
	FieldTypeInteger FieldType = "integer" // Whole numbers
	FieldTypeBoolean FieldType = "boolean" // True/false values
	FieldTypeDate    FieldType = "date"    // Date or timestamp carried as a string
	FieldTypeEnum    FieldType = "enum"    // One out of a set of pre-defined items
	FieldTypeArray   FieldType = "array"   // Ordered list of items
)

// FieldDefinition defines a field within a schema.
type FieldDefinition struct {
	Name string    `json:"name"`
	Type FieldType `json:"type"`
	// Required indicates if the field is mandatory.
	Required bool `json:"required,omitempty"`
	// Values lists the allowed values for an enum field.
	Values []string `json:"values,omitempty"`
	// Description provides a brief explanation of the field.
	Description string `json:"description,omitempty"`
}

// SchemaDefinition defines the fields of one record collection.
type SchemaDefinition struct {
	Name        string                      `json:"name"`
	Version     string                      `json:"version"`
	Description string                      `json:"description,omitempty"`
	Fields      map[string]*FieldDefinition `json:"fields"`
}

// NewSchema builds a SchemaDefinition from a list of field definitions.
func NewSchema(name, version string, fields ...*FieldDefinition) *SchemaDefinition {
	s := &SchemaDefinition{
		Name:    name,
		Version: version,
		Fields:  make(map[string]*FieldDefinition, len(fields)),
	}
	for _, f := range fields {
		s.Fields[f.Name] = f
	}
	return s
}

// Issue represents a validation or operational issue.
type Issue struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Path     string `json:"path,omitempty"`
	Severity string `json:"severity,omitempty"` // e.g., "error", "warning"
}

type ValidationResult struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues"`
}

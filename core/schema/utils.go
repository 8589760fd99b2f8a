package schema

import "sort"

// FindField returns the definition of the named field, or nil.
func (s *SchemaDefinition) FindField(name string) *FieldDefinition {
	if s == nil {
		return nil
	}
	return s.Fields[name]
}

// FieldNames returns the schema's field names, sorted.
func (s *SchemaDefinition) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for name := range s.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Optional returns an optional field of the given type.
func Optional(name string, typ FieldType) *FieldDefinition {
	return &FieldDefinition{Name: name, Type: typ}
}

// Required returns a mandatory field of the given type.
func Required(name string, typ FieldType) *FieldDefinition {
	return &FieldDefinition{Name: name, Type: typ, Required: true}
}

// Enum returns a field restricted to values.
func Enum(name string, required bool, values ...string) *FieldDefinition {
	return &FieldDefinition{Name: name, Type: FieldTypeEnum, Required: required, Values: values}
}

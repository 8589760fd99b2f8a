package utils

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/asaidimu/go-portal/core/schema"
)

// StructToMap converts a Go struct into a schema.Document.
//
// The struct is marshaled to JSON and decoded back into a map, so `json` tags
// and `omitempty` decide the keys. Nested values come back as plain JSON
// values (maps, []any, float64, string, bool), which is what the store
// persists and what the query engine compares.
//
// The input must be a struct or a non-nil pointer to one.
//
// Example:
//
//	type Employee struct {
//		ID   string `json:"id"`
//		Name string `json:"name"`
//	}
//	doc, err := StructToMap(Employee{ID: "HH001", Name: "Lan"})
//	// doc == schema.Document{"id": "HH001", "name": "Lan"}
func StructToMap[T any](record T) (schema.Document, error) {
	val := reflect.ValueOf(record)
	if !val.IsValid() {
		return nil, fmt.Errorf("input record cannot be nil")
	}
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil, fmt.Errorf("input record cannot be a nil pointer to a struct")
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil, fmt.Errorf("input record must be a struct or a pointer to a struct, got %s", val.Kind())
	}

	jsonBytes, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("StructToMap: failed to marshal input record to JSON: %w", err)
	}

	var doc schema.Document
	if err := json.Unmarshal(jsonBytes, &doc); err != nil {
		return nil, fmt.Errorf("StructToMap: failed to unmarshal JSON to document: %w", err)
	}
	return doc, nil
}

// StructsToMaps converts a slice of structs with StructToMap, preserving order.
func StructsToMaps[T any](records []T) ([]schema.Document, error) {
	docs := make([]schema.Document, 0, len(records))
	for i, record := range records {
		doc, err := StructToMap(record)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// MapToStruct is the inverse of StructToMap: it decodes a document into a new
// value of the struct type T (or *T).
//
// Example:
//
//	emp, err := MapToStruct[Employee](schema.Document{"id": "HH001", "name": "Lan"})
//	// emp == Employee{ID: "HH001", Name: "Lan"}
func MapToStruct[T any](input map[string]any) (T, error) {
	var zero T

	if input == nil {
		return zero, fmt.Errorf("MapToStruct: input map cannot be nil")
	}

	typ := reflect.TypeOf(zero)
	if typ == nil {
		return zero, fmt.Errorf("MapToStruct: generic type T must be a struct type (or pointer to struct), got interface")
	}
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return zero, fmt.Errorf("MapToStruct: generic type T must be a struct type (or pointer to struct), got %s", typ.Kind())
	}

	jsonBytes, err := json.Marshal(input)
	if err != nil {
		return zero, fmt.Errorf("MapToStruct: failed to marshal input map to JSON: %w", err)
	}

	var result T
	if err := json.Unmarshal(jsonBytes, &result); err != nil {
		return zero, fmt.Errorf("MapToStruct: failed to unmarshal JSON to target struct: %w", err)
	}
	return result, nil
}

// MapsToStructs converts a slice of documents with MapToStruct, preserving order.
func MapsToStructs[T any, D ~map[string]any](docs []D) ([]T, error) {
	out := make([]T, 0, len(docs))
	for i, doc := range docs {
		v, err := MapToStruct[T](doc)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Package query defines the declarative criteria that list screens use to ask
// for records, and the engine that evaluates them. A criteria value combines
// free-text search, equality filters, a named tab and a sort; the engine turns
// it into an ordered subset of the input without ever mutating a record.
package query

import (
	"github.com/asaidimu/go-portal/core/schema"
)

// AllValue is the sentinel meaning "no constraint" for filters and tabs.
const AllValue = "All"

// Record is anything the engine can read fields from. Records are never
// mutated by the engine.
type Record interface {
	// RecordID returns the externally supplied unique id.
	RecordID() string
	// Field returns the named field and whether it is present.
	Field(name string) (any, bool)
}

var _ Record = schema.Document{}

// Logical operators for combining filter conditions.
const (
	LogicalOperatorAnd = schema.LogicalAnd
	LogicalOperatorOr  = schema.LogicalOr
	LogicalOperatorNot = schema.LogicalNot
	LogicalOperatorNor = schema.LogicalNor
)

// ComparisonOperator defines the set of operators that can be used in a filter condition.
type ComparisonOperator string

// Supported comparison operators.
const (
	ComparisonOperatorEq          ComparisonOperator = "eq"
	ComparisonOperatorNeq         ComparisonOperator = "neq"
	ComparisonOperatorLt          ComparisonOperator = "lt"
	ComparisonOperatorLte         ComparisonOperator = "lte"
	ComparisonOperatorGt          ComparisonOperator = "gt"
	ComparisonOperatorGte         ComparisonOperator = "gte"
	ComparisonOperatorIn          ComparisonOperator = "in"
	ComparisonOperatorNin         ComparisonOperator = "nin"
	ComparisonOperatorContains    ComparisonOperator = "contains"
	ComparisonOperatorNotContains ComparisonOperator = "ncontains"
	ComparisonOperatorStartsWith  ComparisonOperator = "startswith"
	ComparisonOperatorEndsWith    ComparisonOperator = "endswith"
	ComparisonOperatorExists      ComparisonOperator = "exists"
	ComparisonOperatorNotExists   ComparisonOperator = "nexists"
)

// FilterValue represents the value used in a filter condition.
type FilterValue any

// FilterCondition defines a single condition on one field.
type FilterCondition struct {
	Field    string             `json:"field"`
	Operator ComparisonOperator `json:"operator"`
	Value    FilterValue        `json:"value,omitempty"`
}

// FilterGroup combines multiple filter conditions using a logical operator.
type FilterGroup struct {
	Operator   schema.LogicalOperator `json:"operator"`
	Conditions []QueryFilter          `json:"conditions"`
}

// QueryFilter is a union type that can represent either a single filter condition
// or a group of conditions.
type QueryFilter struct {
	Condition *FilterCondition `json:"condition,omitempty"`
	Group     *FilterGroup     `json:"group,omitempty"`
}

// SortDirection specifies the direction for sorting.
type SortDirection string

// Supported sort directions.
const (
	SortDirectionAsc  SortDirection = "asc"
	SortDirectionDesc SortDirection = "desc"
)

// Valid reports whether d is a known direction. The empty direction is valid
// and means ascending.
func (d SortDirection) Valid() bool {
	switch d {
	case "", SortDirectionAsc, SortDirectionDesc:
		return true
	}
	return false
}

// SortSpec orders the result either by a field and direction or by a named
// comparator registered on the view. The zero value asks for the view's
// default order.
type SortSpec struct {
	Field      string        `json:"field,omitempty"`
	Direction  SortDirection `json:"direction,omitempty"`
	Comparator string        `json:"comparator,omitempty"`
}

// IsZero reports whether no explicit sort was requested.
func (s SortSpec) IsZero() bool {
	return s.Field == "" && s.Comparator == ""
}

// Criteria is what a screen currently wants displayed.
type Criteria struct {
	// SearchText is matched case-insensitively as a substring against the
	// view's search fields. Empty matches everything.
	SearchText string `json:"searchText,omitempty"`
	// Filters maps a field name to the accepted value, or AllValue.
	Filters map[string]string `json:"filters,omitempty"`
	// Tab names one of the view's tab predicates, or AllValue.
	Tab  string   `json:"tab,omitempty"`
	Sort SortSpec `json:"sort,omitempty"`
}

// TabPredicate is a named, fixed composite filter representing a top-level
// view mode such as "Open" or "Expired".
type TabPredicate struct {
	Name   string      `json:"name"`
	Filter QueryFilter `json:"filter"`
}

// standardComparisonOperators is a set of all the standard, built-in comparison operators.
var standardComparisonOperators = map[ComparisonOperator]struct{}{
	ComparisonOperatorEq:          {},
	ComparisonOperatorNeq:         {},
	ComparisonOperatorLt:          {},
	ComparisonOperatorLte:         {},
	ComparisonOperatorGt:          {},
	ComparisonOperatorGte:         {},
	ComparisonOperatorIn:          {},
	ComparisonOperatorNin:         {},
	ComparisonOperatorContains:    {},
	ComparisonOperatorNotContains: {},
	ComparisonOperatorStartsWith:  {},
	ComparisonOperatorEndsWith:    {},
	ComparisonOperatorExists:      {},
	ComparisonOperatorNotExists:   {},
}

// IsStandard checks if a comparison operator is one of the standard, built-in operators.
func (c ComparisonOperator) IsStandard() bool {
	_, ok := standardComparisonOperators[c]
	return ok
}

// GetStandardComparisonOperators returns a copy of the standard comparison operators.
func GetStandardComparisonOperators() map[ComparisonOperator]struct{} {
	out := make(map[ComparisonOperator]struct{}, len(standardComparisonOperators))
	for op := range standardComparisonOperators {
		out[op] = struct{}{}
	}
	return out
}

package query

import (
	"fmt"
	"maps"
	"sort"
	"strings"

	"github.com/asaidimu/go-portal/core/schema"
)

// CriteriaBuilder provides a fluent API for building Criteria values.
type CriteriaBuilder struct {
	criteria Criteria
}

// NewCriteriaBuilder creates a new, empty criteria builder.
func NewCriteriaBuilder() *CriteriaBuilder {
	return &CriteriaBuilder{}
}

// Build returns the constructed Criteria. The returned value does not share
// its filter map with the builder.
func (cb *CriteriaBuilder) Build() Criteria {
	out := cb.criteria
	if cb.criteria.Filters != nil {
		out.Filters = maps.Clone(cb.criteria.Filters)
	}
	return out
}

// Clone creates a copy of the builder that can be changed independently.
func (cb *CriteriaBuilder) Clone() *CriteriaBuilder {
	return &CriteriaBuilder{criteria: cb.Build()}
}

// Reset clears the builder.
func (cb *CriteriaBuilder) Reset() *CriteriaBuilder {
	cb.criteria = Criteria{}
	return cb
}

// Search sets the free-text search.
func (cb *CriteriaBuilder) Search(text string) *CriteriaBuilder {
	cb.criteria.SearchText = text
	return cb
}

// Filter constrains field to value. Passing AllValue removes the constraint.
func (cb *CriteriaBuilder) Filter(field, value string) *CriteriaBuilder {
	if value == AllValue {
		delete(cb.criteria.Filters, field)
		return cb
	}
	if cb.criteria.Filters == nil {
		cb.criteria.Filters = make(map[string]string)
	}
	cb.criteria.Filters[field] = value
	return cb
}

// Tab selects a tab predicate by name.
func (cb *CriteriaBuilder) Tab(name string) *CriteriaBuilder {
	cb.criteria.Tab = name
	return cb
}

// OrderBy sorts by a field in the given direction.
func (cb *CriteriaBuilder) OrderBy(field string, direction SortDirection) *CriteriaBuilder {
	cb.criteria.Sort = SortSpec{Field: field, Direction: direction}
	return cb
}

// OrderByAsc adds an ascending sort order for a specific field.
func (cb *CriteriaBuilder) OrderByAsc(field string) *CriteriaBuilder {
	return cb.OrderBy(field, SortDirectionAsc)
}

// OrderByDesc adds a descending sort order for a specific field.
func (cb *CriteriaBuilder) OrderByDesc(field string) *CriteriaBuilder {
	return cb.OrderBy(field, SortDirectionDesc)
}

// OrderByComparator sorts with a named comparator of the view.
func (cb *CriteriaBuilder) OrderByComparator(name string) *CriteriaBuilder {
	cb.criteria.Sort = SortSpec{Comparator: name}
	return cb
}

// String returns a human-readable representation of the built criteria.
func (cb *CriteriaBuilder) String() string {
	var parts []string
	if cb.criteria.SearchText != "" {
		parts = append(parts, fmt.Sprintf("search=%q", cb.criteria.SearchText))
	}
	keys := make([]string, 0, len(cb.criteria.Filters))
	for k := range cb.criteria.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%q", k, cb.criteria.Filters[k]))
	}
	if cb.criteria.Tab != "" {
		parts = append(parts, fmt.Sprintf("tab=%q", cb.criteria.Tab))
	}
	switch s := cb.criteria.Sort; {
	case s.Comparator != "":
		parts = append(parts, fmt.Sprintf("sort=%s", s.Comparator))
	case s.Field != "":
		dir := s.Direction
		if dir == "" {
			dir = SortDirectionAsc
		}
		parts = append(parts, fmt.Sprintf("sort=%s:%s", s.Field, dir))
	}
	if len(parts) == 0 {
		return "Criteria{}"
	}
	return "Criteria{" + strings.Join(parts, ", ") + "}"
}

// TabBuilder builds a TabPredicate whose conditions are joined with AND.
type TabBuilder struct {
	name       string
	conditions []QueryFilter
}

// NewTab starts a tab predicate.
func NewTab(name string) *TabBuilder {
	return &TabBuilder{name: name}
}

// Where begins a condition on field.
func (tb *TabBuilder) Where(field string) *TabConditionBuilder {
	return &TabConditionBuilder{parent: tb, field: field}
}

// Any adds a nested group satisfied when any of filters is.
func (tb *TabBuilder) Any(filters ...QueryFilter) *TabBuilder {
	tb.conditions = append(tb.conditions, CreateFilterGroup(LogicalOperatorOr, filters...))
	return tb
}

// Build returns the tab predicate.
func (tb *TabBuilder) Build() TabPredicate {
	tab := TabPredicate{Name: tb.name}
	switch len(tb.conditions) {
	case 0:
	case 1:
		tab.Filter = tb.conditions[0]
	default:
		tab.Filter = CreateFilterGroup(LogicalOperatorAnd, tb.conditions...)
	}
	return tab
}

// TabConditionBuilder builds a single condition of a tab.
type TabConditionBuilder struct {
	parent *TabBuilder
	field  string
}

// Eq adds an equality condition.
func (tcb *TabConditionBuilder) Eq(value FilterValue) *TabBuilder {
	return tcb.add(ComparisonOperatorEq, value)
}

// Neq adds a not-equal condition. Records without the field satisfy it.
func (tcb *TabConditionBuilder) Neq(value FilterValue) *TabBuilder {
	return tcb.add(ComparisonOperatorNeq, value)
}

// In adds an "in" condition.
func (tcb *TabConditionBuilder) In(values ...FilterValue) *TabBuilder {
	return tcb.add(ComparisonOperatorIn, toAnySlice(values))
}

// Nin adds a "not in" condition.
func (tcb *TabConditionBuilder) Nin(values ...FilterValue) *TabBuilder {
	return tcb.add(ComparisonOperatorNin, toAnySlice(values))
}

// Lt adds a less-than condition.
func (tcb *TabConditionBuilder) Lt(value FilterValue) *TabBuilder {
	return tcb.add(ComparisonOperatorLt, value)
}

// Gte adds a greater-than-or-equal condition.
func (tcb *TabConditionBuilder) Gte(value FilterValue) *TabBuilder {
	return tcb.add(ComparisonOperatorGte, value)
}

// Exists adds a condition requiring the field to be present.
func (tcb *TabConditionBuilder) Exists() *TabBuilder {
	return tcb.add(ComparisonOperatorExists, true)
}

// NotExists adds a condition requiring the field to be absent.
func (tcb *TabConditionBuilder) NotExists() *TabBuilder {
	return tcb.add(ComparisonOperatorNotExists, true)
}

// Custom adds a condition with a registered custom operator.
func (tcb *TabConditionBuilder) Custom(operator ComparisonOperator, value FilterValue) *TabBuilder {
	return tcb.add(operator, value)
}

func (tcb *TabConditionBuilder) add(operator ComparisonOperator, value FilterValue) *TabBuilder {
	tcb.parent.conditions = append(tcb.parent.conditions, CreateSimpleFilter(tcb.field, operator, value))
	return tcb.parent
}

func toAnySlice(values []FilterValue) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// CreateSimpleFilter is a helper function to create a simple filter condition.
func CreateSimpleFilter(field string, operator ComparisonOperator, value FilterValue) QueryFilter {
	return QueryFilter{
		Condition: &FilterCondition{
			Field:    field,
			Operator: operator,
			Value:    value,
		},
	}
}

// CreateFilterGroup is a helper function to create a filter group.
func CreateFilterGroup(operator schema.LogicalOperator, conditions ...QueryFilter) QueryFilter {
	return QueryFilter{
		Group: &FilterGroup{
			Operator:   operator,
			Conditions: conditions,
		},
	}
}

package query

import (
	"testing"

	"github.com/asaidimu/go-portal/core/schema"
	"github.com/stretchr/testify/assert"
)

func TestNewCriteriaBuilder(t *testing.T) {
	cb := NewCriteriaBuilder()
	assert.NotNil(t, cb)
	assert.Equal(t, Criteria{}, cb.Build())
}

func TestCriteriaBuilder_Build(t *testing.T) {
	cb := NewCriteriaBuilder().Search("lan").Filter("department", "Ban Truyền Thông").Tab("Open")
	c := cb.Build()

	assert.Equal(t, "lan", c.SearchText)
	assert.Equal(t, map[string]string{"department": "Ban Truyền Thông"}, c.Filters)
	assert.Equal(t, "Open", c.Tab)

	// Changing the built criteria must not leak back into the builder.
	c.Filters["status"] = "Active"
	assert.NotContains(t, cb.Build().Filters, "status")
}

func TestCriteriaBuilder_Clone(t *testing.T) {
	cb := NewCriteriaBuilder().Filter("tier", "Gold").OrderByAsc("name")
	cloned := cb.Clone()

	assert.Equal(t, cb.Build(), cloned.Build())

	cloned.Filter("tier", "Silver").OrderByDesc("name")
	assert.Equal(t, "Gold", cb.Build().Filters["tier"])
	assert.Equal(t, SortDirectionAsc, cb.Build().Sort.Direction)
	assert.Equal(t, "Silver", cloned.Build().Filters["tier"])
}

func TestCriteriaBuilder_Reset(t *testing.T) {
	cb := NewCriteriaBuilder().Search("x").Filter("a", "b").Tab("t").OrderByComparator("c")
	cb.Reset()
	assert.Equal(t, Criteria{}, cb.Build())
}

func TestCriteriaBuilder_FilterAllRemovesConstraint(t *testing.T) {
	cb := NewCriteriaBuilder().Filter("status", "Active").Filter("tier", "Gold")
	cb.Filter("status", AllValue)

	assert.Equal(t, map[string]string{"tier": "Gold"}, cb.Build().Filters)

	// Removing from an empty builder is a no-op.
	assert.Nil(t, NewCriteriaBuilder().Filter("status", AllValue).Build().Filters)

	// The empty string is a literal value, not a wildcard.
	assert.Equal(t, "", NewCriteriaBuilder().Filter("unit", "").Build().Filters["unit"])
}

func TestCriteriaBuilder_Sort(t *testing.T) {
	tests := []struct {
		name     string
		cb       *CriteriaBuilder
		expected SortSpec
	}{
		{"asc", NewCriteriaBuilder().OrderByAsc("date"), SortSpec{Field: "date", Direction: SortDirectionAsc}},
		{"desc", NewCriteriaBuilder().OrderByDesc("date"), SortSpec{Field: "date", Direction: SortDirectionDesc}},
		{"explicit", NewCriteriaBuilder().OrderBy("name", ""), SortSpec{Field: "name"}},
		{"comparator", NewCriteriaBuilder().OrderByComparator("ending-soon"), SortSpec{Comparator: "ending-soon"}},
		{"last wins", NewCriteriaBuilder().OrderByComparator("ending-soon").OrderByDesc("date"), SortSpec{Field: "date", Direction: SortDirectionDesc}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cb.Build().Sort)
		})
	}
}

func TestCriteriaBuilder_String(t *testing.T) {
	tests := []struct {
		name     string
		buildFn  func() *CriteriaBuilder
		expected string
	}{
		{
			name:     "Empty criteria",
			buildFn:  NewCriteriaBuilder,
			expected: "Criteria{}",
		},
		{
			name: "Search only",
			buildFn: func() *CriteriaBuilder {
				return NewCriteriaBuilder().Search("lan")
			},
			expected: `Criteria{search="lan"}`,
		},
		{
			name: "Filters are sorted",
			buildFn: func() *CriteriaBuilder {
				return NewCriteriaBuilder().Filter("tier", "Gold").Filter("department", "HR")
			},
			expected: `Criteria{department="HR", tier="Gold"}`,
		},
		{
			name: "Field sort defaults to asc",
			buildFn: func() *CriteriaBuilder {
				return NewCriteriaBuilder().OrderBy("name", "")
			},
			expected: "Criteria{sort=name:asc}",
		},
		{
			name: "Complex criteria",
			buildFn: func() *CriteriaBuilder {
				return NewCriteriaBuilder().Search("kh").Filter("category", "Event").Tab("Open").OrderByComparator("ending-soon")
			},
			expected: `Criteria{search="kh", category="Event", tab="Open", sort=ending-soon}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.buildFn().String())
		})
	}
}

func TestTabBuilder(t *testing.T) {
	t.Run("no conditions", func(t *testing.T) {
		tab := NewTab("Everything").Build()
		assert.Equal(t, "Everything", tab.Name)
		assert.Nil(t, tab.Filter.Condition)
		assert.Nil(t, tab.Filter.Group)
	})

	t.Run("single condition is used directly", func(t *testing.T) {
		tab := NewTab("Completed").Where("userStatus").Eq("Completed").Build()
		assert.Nil(t, tab.Filter.Group)
		assert.Equal(t, &FilterCondition{Field: "userStatus", Operator: ComparisonOperatorEq, Value: "Completed"}, tab.Filter.Condition)
	})

	t.Run("several conditions are joined with AND", func(t *testing.T) {
		tab := NewTab("Open").Where("status").Eq("Open").Where("userStatus").Neq("Completed").Build()
		assert.Nil(t, tab.Filter.Condition)
		assert.Equal(t, schema.LogicalAnd, tab.Filter.Group.Operator)
		assert.Len(t, tab.Filter.Group.Conditions, 2)
		assert.Equal(t, ComparisonOperatorNeq, tab.Filter.Group.Conditions[1].Condition.Operator)
	})

	t.Run("operators", func(t *testing.T) {
		tab := NewTab("ops").
			Where("a").In("x", "y").
			Where("b").Nin("z").
			Where("c").Lt(5).
			Where("d").Gte(1).
			Where("e").Exists().
			Where("f").NotExists().
			Any(CreateSimpleFilter("g", ComparisonOperatorEq, 1), CreateSimpleFilter("h", ComparisonOperatorEq, 2)).
			Build()

		conds := tab.Filter.Group.Conditions
		assert.Len(t, conds, 7)
		assert.Equal(t, []any{"x", "y"}, conds[0].Condition.Value)
		assert.Equal(t, ComparisonOperatorNin, conds[1].Condition.Operator)
		assert.Equal(t, ComparisonOperatorLt, conds[2].Condition.Operator)
		assert.Equal(t, ComparisonOperatorGte, conds[3].Condition.Operator)
		assert.Equal(t, ComparisonOperatorExists, conds[4].Condition.Operator)
		assert.Equal(t, ComparisonOperatorNotExists, conds[5].Condition.Operator)
		assert.Equal(t, schema.LogicalOr, conds[6].Group.Operator)
	})
}

func TestCreateSimpleFilter(t *testing.T) {
	filter := CreateSimpleFilter("field", ComparisonOperatorEq, "value")
	assert.NotNil(t, filter.Condition)
	assert.Equal(t, "field", filter.Condition.Field)
	assert.Equal(t, ComparisonOperatorEq, filter.Condition.Operator)
	assert.Equal(t, "value", filter.Condition.Value)
	assert.Nil(t, filter.Group)
}

func TestCreateFilterGroup(t *testing.T) {
	group := CreateFilterGroup(schema.LogicalAnd,
		CreateSimpleFilter("field1", ComparisonOperatorEq, "value1"),
		CreateSimpleFilter("field2", ComparisonOperatorGt, 10),
	)
	assert.NotNil(t, group.Group)
	assert.Equal(t, schema.LogicalAnd, group.Group.Operator)
	assert.Len(t, group.Group.Conditions, 2)
	assert.NotNil(t, group.Group.Conditions[0].Condition)
	assert.NotNil(t, group.Group.Conditions[1].Condition)
	assert.Nil(t, group.Condition)
}

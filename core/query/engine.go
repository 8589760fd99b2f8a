package query

import (
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/asaidimu/go-portal/core/schema"
	"go.uber.org/zap"
)

// PredicateFunction performs custom filtering logic for a non-standard
// operator. It receives the resolved field value (derived fields included),
// whether the field is present, and the condition's value.
type PredicateFunction func(value any, present bool, args FilterValue) (bool, error)

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used for derived, time-dependent fields.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithMetrics makes the engine record query metrics.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// Engine evaluates criteria against records. It owns no records and keeps no
// per-query state; the only shared state is the registry of custom operators.
type Engine struct {
	filterFunctions map[ComparisonOperator]PredicateFunction
	mu              sync.RWMutex
	logger          *zap.Logger
	now             func() time.Time
	metrics         *Metrics
}

// NewEngine creates a new Engine instance.
func NewEngine(logger *zap.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		filterFunctions: make(map[ComparisonOperator]PredicateFunction),
		logger:          logger,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Now returns the engine clock reading.
func (e *Engine) Now() time.Time {
	return e.now()
}

// RegisterFilterFunction registers a Go function for a custom operator.
func (e *Engine) RegisterFilterFunction(operator ComparisonOperator, fn PredicateFunction) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filterFunctions[operator] = fn
	e.logger.Info("Registered filter function", zap.String("operator", string(operator)))
}

// RegisterFilterFunctions registers multiple custom operators from a map.
func (e *Engine) RegisterFilterFunctions(functionMap map[ComparisonOperator]PredicateFunction) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for operator, fn := range functionMap {
		e.filterFunctions[operator] = fn
		e.logger.Info("Registered filter function", zap.String("operator", string(operator)))
	}
}

// filterFunction looks up a custom operator. The registry lock is released
// before the predicate runs, so predicates may register operators themselves.
func (e *Engine) filterFunction(operator ComparisonOperator) (PredicateFunction, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	fn, ok := e.filterFunctions[operator]
	return fn, ok
}

// Plan is a criteria resolved against a view: one filter tree and the
// effective sort.
type Plan struct {
	View *View
	// Filter is nil when every record matches.
	Filter *QueryFilter
	// Sort is the effective sort. The zero value keeps input order.
	Sort SortSpec
	// Fallbacks lists the criteria parts that were ignored.
	Fallbacks []string

	comparator Comparator
}

// Compile resolves c against v. The filter is the conjunction of the search
// group (any-of over the view's search fields), every equality filter that is
// not AllValue, and the tab predicate. Unknown tabs, unknown comparators and
// invalid directions are ignored and recorded in Plan.Fallbacks.
func (e *Engine) Compile(v *View, c Criteria) *Plan {
	plan := &Plan{View: v}
	var conditions []QueryFilter

	if c.SearchText != "" && len(v.searchFields) > 0 {
		search := make([]QueryFilter, 0, len(v.searchFields))
		for _, field := range v.searchFields {
			search = append(search, CreateSimpleFilter(field, ComparisonOperatorContains, c.SearchText))
		}
		conditions = append(conditions, CreateFilterGroup(LogicalOperatorOr, search...))
	} else if c.SearchText != "" {
		plan.Fallbacks = append(plan.Fallbacks, FallbackSearchUnsupported)
	}

	keys := make([]string, 0, len(c.Filters))
	for k := range c.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, field := range keys {
		value := c.Filters[field]
		if value == AllValue {
			continue
		}
		conditions = append(conditions, CreateSimpleFilter(field, ComparisonOperatorEq, value))
	}

	if tab, ok := v.Tab(c.Tab); ok {
		conditions = append(conditions, tab.Filter)
	} else if c.Tab != "" && c.Tab != AllValue {
		plan.Fallbacks = append(plan.Fallbacks, FallbackUnknownTab)
	}

	switch len(conditions) {
	case 0:
	case 1:
		plan.Filter = &conditions[0]
	default:
		group := CreateFilterGroup(LogicalOperatorAnd, conditions...)
		plan.Filter = &group
	}

	e.compileSort(v, c.Sort, plan)

	if len(plan.Fallbacks) > 0 {
		e.logger.Debug("Criteria partially ignored",
			zap.String("view", v.name),
			zap.Strings("fallbacks", plan.Fallbacks),
			zap.String("tab", c.Tab),
			zap.String("comparator", c.Sort.Comparator),
			zap.String("direction", string(c.Sort.Direction)))
	}
	return plan
}

func (e *Engine) compileSort(v *View, s SortSpec, plan *Plan) {
	defaultSort := SortSpec{}
	if v.dateField != "" {
		defaultSort = SortSpec{Field: v.dateField, Direction: SortDirectionDesc}
	}

	switch {
	case s.Field != "" && s.Comparator != "":
		plan.Fallbacks = append(plan.Fallbacks, FallbackAmbiguousSort)
		plan.Sort = defaultSort
	case s.Comparator != "":
		fn, ok := v.comparators[s.Comparator]
		if !ok {
			plan.Fallbacks = append(plan.Fallbacks, FallbackUnknownComparator)
			plan.Sort = defaultSort
			return
		}
		plan.Sort = SortSpec{Comparator: s.Comparator}
		plan.comparator = fn
	case s.Field != "":
		direction := s.Direction
		if !direction.Valid() {
			plan.Fallbacks = append(plan.Fallbacks, FallbackInvalidDirection)
			direction = SortDirectionAsc
		}
		if direction == "" {
			direction = SortDirectionAsc
		}
		plan.Sort = SortSpec{Field: s.Field, Direction: direction}
	default:
		plan.Sort = defaultSort
	}
}

// Apply returns the records of the input that satisfy c, ordered by c's sort.
// The result is never truncated and never contains a record twice; records
// are referenced, not copied. Apply does not fail: malformed parts of c fall
// back to "no constraint" or the default order, and a record whose custom
// predicate errors is left out.
func Apply[T Record](e *Engine, v *View, records []T, c Criteria) []T {
	plan := e.Compile(v, c)
	now := e.now()

	out := make([]T, 0, len(records))
	predicateErrors := 0

	for _, rec := range records {
		if plan.Filter == nil {
			out = append(out, rec)
			continue
		}
		ok, err := e.evaluateFilter(v, rec, plan.Filter, now)
		if err != nil {
			predicateErrors++
			e.logger.Debug("Record excluded by failing predicate",
				zap.String("view", v.name),
				zap.String("id", rec.RecordID()),
				zap.Error(err))
			continue
		}
		if ok {
			out = append(out, rec)
		}
	}

	sortRecords(plan, v, out, now)

	fallbacks := plan.Fallbacks
	if predicateErrors > 0 {
		fallbacks = append(slices.Clone(fallbacks), FallbackPredicateError)
	}
	e.metrics.observe(v.name, len(out), fallbacks)
	e.logger.Debug("Query evaluated",
		zap.String("view", v.name),
		zap.Int("input", len(records)),
		zap.Int("matched", len(out)))

	return out
}

// Match evaluates c's filter against a single record. The sort part of c is
// irrelevant here.
func (e *Engine) Match(v *View, c Criteria, rec Record) bool {
	plan := e.Compile(v, c)
	if plan.Filter == nil {
		return true
	}
	ok, err := e.evaluateFilter(v, rec, plan.Filter, e.now())
	return err == nil && ok
}

type sortKey[T Record] struct {
	rec     T
	key     orderKey
	present bool
}

// sortRecords stable-sorts records in place according to the plan.
func sortRecords[T Record](plan *Plan, v *View, records []T, now time.Time) {
	switch {
	case plan.comparator != nil:
		slices.SortStableFunc(records, func(a, b T) int {
			return plan.comparator(a, b)
		})
	case plan.Sort.Field != "":
		keys := make([]sortKey[T], len(records))
		for i, rec := range records {
			value, present := v.resolve(rec, plan.Sort.Field, now)
			keys[i] = sortKey[T]{rec: rec, present: present}
			if present {
				keys[i].key = keyOf(value)
			}
		}
		desc := plan.Sort.Direction == SortDirectionDesc
		slices.SortStableFunc(keys, func(a, b sortKey[T]) int {
			switch {
			case !a.present && !b.present:
				return 0
			case !a.present:
				return 1
			case !b.present:
				return -1
			}
			c := a.key.compare(b.key)
			if desc {
				return -c
			}
			return c
		})
		for i := range keys {
			records[i] = keys[i].rec
		}
	}
}

// evaluateFilter recursively evaluates a QueryFilter against one record.
func (e *Engine) evaluateFilter(v *View, rec Record, filter *QueryFilter, now time.Time) (bool, error) {
	if filter.Condition != nil {
		return e.evaluateCondition(v, rec, filter.Condition, now)
	}
	if filter.Group != nil {
		switch filter.Group.Operator {
		case schema.LogicalAnd:
			for i := range filter.Group.Conditions {
				passes, err := e.evaluateFilter(v, rec, &filter.Group.Conditions[i], now)
				if err != nil || !passes {
					return false, err
				}
			}
			return true, nil
		case schema.LogicalOr:
			for i := range filter.Group.Conditions {
				passes, err := e.evaluateFilter(v, rec, &filter.Group.Conditions[i], now)
				if err != nil {
					return false, err
				}
				if passes {
					return true, nil
				}
			}
			return false, nil
		case schema.LogicalNot:
			all := &QueryFilter{Group: &FilterGroup{Operator: schema.LogicalAnd, Conditions: filter.Group.Conditions}}
			passes, err := e.evaluateFilter(v, rec, all, now)
			return err == nil && !passes, err
		case schema.LogicalNor:
			for i := range filter.Group.Conditions {
				passes, err := e.evaluateFilter(v, rec, &filter.Group.Conditions[i], now)
				if err != nil {
					return false, err
				}
				if passes {
					return false, nil
				}
			}
			return true, nil
		default:
			return false, fmt.Errorf("unsupported logical operator: %s", filter.Group.Operator)
		}
	}
	return false, fmt.Errorf("empty or invalid filter structure")
}

// evaluateCondition evaluates one condition. Absent fields never satisfy
// positive comparisons, always satisfy negative ones, and read as the empty
// string for text operators.
func (e *Engine) evaluateCondition(v *View, rec Record, condition *FilterCondition, now time.Time) (bool, error) {
	value, present := v.resolve(rec, condition.Field, now)

	if !condition.Operator.IsStandard() {
		fn, ok := e.filterFunction(condition.Operator)
		if !ok {
			return false, fmt.Errorf("unregistered filter function for operator: %s", condition.Operator)
		}
		return fn(value, present, condition.Value)
	}

	switch condition.Operator {
	case ComparisonOperatorEq:
		return present && equalValues(value, condition.Value), nil
	case ComparisonOperatorNeq:
		return !present || !equalValues(value, condition.Value), nil
	case ComparisonOperatorIn, ComparisonOperatorNin:
		list, err := toList(condition.Value)
		if err != nil {
			return false, err
		}
		found := present && slices.ContainsFunc(list, func(item any) bool {
			return equalValues(value, item)
		})
		if condition.Operator == ComparisonOperatorIn {
			return found, nil
		}
		return !found, nil
	case ComparisonOperatorLt, ComparisonOperatorLte, ComparisonOperatorGt, ComparisonOperatorGte:
		if !present {
			return false, nil
		}
		c, err := orderedCompare(value, condition.Value)
		if err != nil {
			return false, err
		}
		switch condition.Operator {
		case ComparisonOperatorLt:
			return c < 0, nil
		case ComparisonOperatorLte:
			return c <= 0, nil
		case ComparisonOperatorGt:
			return c > 0, nil
		default:
			return c >= 0, nil
		}
	case ComparisonOperatorContains, ComparisonOperatorNotContains:
		contains := strings.Contains(fold(toText(value, present)), fold(toText(condition.Value, true)))
		if condition.Operator == ComparisonOperatorContains {
			return contains, nil
		}
		return !contains, nil
	case ComparisonOperatorStartsWith:
		return strings.HasPrefix(fold(toText(value, present)), fold(toText(condition.Value, true))), nil
	case ComparisonOperatorEndsWith:
		return strings.HasSuffix(fold(toText(value, present)), fold(toText(condition.Value, true))), nil
	case ComparisonOperatorExists:
		return present, nil
	case ComparisonOperatorNotExists:
		return !present, nil
	}
	return false, fmt.Errorf("unsupported comparison operator: %s", condition.Operator)
}

// toList converts the value of an in/nin condition to a slice.
func toList(value FilterValue) ([]any, error) {
	switch list := value.(type) {
	case []any:
		return list, nil
	case []string:
		out := make([]any, len(list))
		for i, s := range list {
			out[i] = s
		}
		return out, nil
	}
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, fmt.Errorf("expected a list value, got %T", value)
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

package query

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"
)

// Comparator orders two records for a named custom sort. It returns a
// negative number when a sorts before b, zero when they rank equal.
type Comparator func(a, b Record) int

// DeriveFunction computes a field from a record at query time. now is the
// engine clock reading taken once per query.
type DeriveFunction func(rec Record, now time.Time) (any, bool)

// ViewConfig is the fixed, per-screen part of a query: which fields free text
// is matched against, which dimensions can be filtered, the named tabs and
// sorts, and the date field used for the default newest-first order.
type ViewConfig struct {
	Name string
	// SearchFields are matched with any-of semantics.
	SearchFields []string
	// FilterFields lists the equality filter dimensions the screen exposes.
	// It only drives Validate; Apply accepts any field.
	FilterFields []string
	Tabs         []TabPredicate
	Comparators  map[string]Comparator
	// Derived fields shadow record fields of the same name.
	Derived map[string]DeriveFunction
	// DateField drives the default sort. Without one, input order is kept.
	DateField string
}

// View is an immutable, validated ViewConfig. It is safe for concurrent use.
type View struct {
	name         string
	searchFields []string
	filterFields map[string]struct{}
	filterOrder  []string
	tabs         map[string]TabPredicate
	tabOrder     []string
	comparators  map[string]Comparator
	derived      map[string]DeriveFunction
	dateField    string
}

// NewView validates cfg and returns the corresponding View.
func NewView(cfg ViewConfig) (*View, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidView)
	}

	v := &View{
		name:         cfg.Name,
		searchFields: slices.Clone(cfg.SearchFields),
		filterFields: make(map[string]struct{}, len(cfg.FilterFields)),
		tabs:         make(map[string]TabPredicate, len(cfg.Tabs)),
		comparators:  make(map[string]Comparator, len(cfg.Comparators)),
		derived:      make(map[string]DeriveFunction, len(cfg.Derived)),
		dateField:    cfg.DateField,
	}

	for _, f := range cfg.FilterFields {
		if _, dup := v.filterFields[f]; dup {
			return nil, fmt.Errorf("%w: view %q: duplicate filter field %q", ErrInvalidView, cfg.Name, f)
		}
		v.filterFields[f] = struct{}{}
		v.filterOrder = append(v.filterOrder, f)
	}

	for _, tab := range cfg.Tabs {
		switch {
		case tab.Name == "" || tab.Name == AllValue:
			return nil, fmt.Errorf("%w: view %q: tab name %q is reserved", ErrInvalidView, cfg.Name, tab.Name)
		case tab.Filter.Condition == nil && tab.Filter.Group == nil:
			return nil, fmt.Errorf("%w: view %q: tab %q has no conditions", ErrInvalidView, cfg.Name, tab.Name)
		}
		if _, dup := v.tabs[tab.Name]; dup {
			return nil, fmt.Errorf("%w: view %q: duplicate tab %q", ErrInvalidView, cfg.Name, tab.Name)
		}
		v.tabs[tab.Name] = tab
		v.tabOrder = append(v.tabOrder, tab.Name)
	}

	for name, fn := range cfg.Comparators {
		if name == "" || fn == nil {
			return nil, fmt.Errorf("%w: view %q: comparator %q is empty", ErrInvalidView, cfg.Name, name)
		}
		v.comparators[name] = fn
	}

	for name, fn := range cfg.Derived {
		if name == "" || fn == nil {
			return nil, fmt.Errorf("%w: view %q: derived field %q is empty", ErrInvalidView, cfg.Name, name)
		}
		v.derived[name] = fn
	}

	return v, nil
}

// MustView is like NewView but panics on an invalid configuration. It is
// meant for package-level view definitions.
func MustView(cfg ViewConfig) *View {
	v, err := NewView(cfg)
	if err != nil {
		panic(err)
	}
	return v
}

// Name returns the view name.
func (v *View) Name() string { return v.name }

// SearchFields returns the fields free text is matched against.
func (v *View) SearchFields() []string { return slices.Clone(v.searchFields) }

// FilterFields returns the exposed equality filter dimensions in declaration order.
func (v *View) FilterFields() []string { return slices.Clone(v.filterOrder) }

// Tabs returns the tab names in declaration order.
func (v *View) Tabs() []string { return slices.Clone(v.tabOrder) }

// DateField returns the field used for the default sort.
func (v *View) DateField() string { return v.dateField }

// Comparators returns the names of the custom sorts, sorted.
func (v *View) Comparators() []string {
	names := make([]string, 0, len(v.comparators))
	for name := range v.comparators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tab looks up a tab predicate. Empty, AllValue and unknown names report
// false; callers treat that as "no constraint".
func (v *View) Tab(name string) (TabPredicate, bool) {
	if name == "" || name == AllValue {
		return TabPredicate{}, false
	}
	tab, ok := v.tabs[name]
	return tab, ok
}

// Comparator looks up a named custom sort.
func (v *View) Comparator(name string) (Comparator, bool) {
	fn, ok := v.comparators[name]
	return fn, ok
}

// Validate checks c against the view and reports every malformed part. A nil
// result means Apply will honor c exactly, without any lenient fallback.
func (v *View) Validate(c Criteria) error {
	var errs []error

	if c.SearchText != "" && len(v.searchFields) == 0 {
		errs = append(errs, &CriteriaError{View: v.name, Field: "search", Value: c.SearchText, Err: ErrSearchNotSupported})
	}

	if c.Tab != "" && c.Tab != AllValue {
		if _, ok := v.tabs[c.Tab]; !ok {
			errs = append(errs, &CriteriaError{View: v.name, Field: "tab", Value: c.Tab, Err: ErrUnknownTab})
		}
	}

	keys := make([]string, 0, len(c.Filters))
	for k := range c.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, ok := v.filterFields[k]; !ok {
			errs = append(errs, &CriteriaError{View: v.name, Field: k, Value: c.Filters[k], Err: ErrUnknownFilterField})
		}
	}

	if c.Sort.Field != "" && c.Sort.Comparator != "" {
		errs = append(errs, &CriteriaError{View: v.name, Field: "sort", Value: c.Sort.Comparator, Err: ErrAmbiguousSort})
	}
	if c.Sort.Comparator != "" {
		if _, ok := v.comparators[c.Sort.Comparator]; !ok {
			errs = append(errs, &CriteriaError{View: v.name, Field: "sort", Value: c.Sort.Comparator, Err: ErrUnknownComparator})
		}
	}
	if !c.Sort.Direction.Valid() {
		errs = append(errs, &CriteriaError{View: v.name, Field: "sort", Value: string(c.Sort.Direction), Err: ErrInvalidSortDirection})
	}

	return errors.Join(errs...)
}

// Resolve returns a field of rec as queries see it, derived fields included.
func (v *View) Resolve(rec Record, field string, now time.Time) (any, bool) {
	return v.resolve(rec, field, now)
}

// resolve reads a field from rec, preferring a derived field of that name.
func (v *View) resolve(rec Record, field string, now time.Time) (any, bool) {
	if fn, ok := v.derived[field]; ok {
		return fn(rec, now)
	}
	return rec.Field(field)
}

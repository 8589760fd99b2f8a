package query

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"golang.org/x/text/cases"
)

// ToFloat64 is a utility function that converts a value of various numeric types
// to a float64. Numeric strings are converted too.
func ToFloat64(v any) (float64, bool) {
	switch val := v.(type) {
	case string:
		f, err := strconv.ParseFloat(val, 64)
		return f, err == nil
	default:
		return toNumber(v)
	}
}

// toNumber converts native numeric types only.
func toNumber(v any) (float64, bool) {
	switch val := v.(type) {
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	case float32:
		return float64(val), true
	case float64:
		return val, true
	default:
		return 0, false
	}
}

// ToTime converts a time.Time or a date string in any common layout to a
// time. Strings without zone information are read as UTC.
func ToTime(v any) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, !val.IsZero()
	case *time.Time:
		if val == nil {
			return time.Time{}, false
		}
		return *val, !val.IsZero()
	case string:
		return parseDate(val)
	default:
		return time.Time{}, false
	}
}

// parseDate wraps dateparse, which has panicked on malformed input in the past.
func parseDate(s string) (t time.Time, ok bool) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, false
	}
	defer func() {
		if recover() != nil {
			t, ok = time.Time{}, false
		}
	}()
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// fold returns the Unicode case folding of s. A new Caser is used on every
// call because Casers are stateful.
func fold(s string) string {
	return cases.Fold().String(s)
}

// toText renders a field value for text matching. Missing values are the
// empty string.
func toText(v any, present bool) string {
	if !present {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// equalValues compares a record value with a filter value. Strings compare
// exactly, numbers numerically, anything else by its printed form, so a
// string filter matches typed enum values and booleans.
func equalValues(a, b any) bool {
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return as == bs
		}
	}
	if an, ok := toNumber(a); ok {
		if bn, ok := toNumber(b); ok {
			return an == bn
		}
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

// valueClass ranks the kinds of value a sortable field can hold. Values of
// different classes order by class alone, so a field mixing numbers and text
// still sorts to one order whatever the input order.
type valueClass int

const (
	classNumber valueClass = iota
	classDate
	classBool
	classText
)

// orderKey is a value reduced to its class and the part compared within it.
type orderKey struct {
	class valueClass
	num   float64
	at    time.Time
	flag  bool
	text  string
}

// keyOf classifies v. Native numbers and numeric strings are numbers; time
// values and date strings are dates; anything else is compared as folded text.
func keyOf(v any) orderKey {
	if n, ok := ToFloat64(v); ok {
		return orderKey{class: classNumber, num: n}
	}
	if b, ok := v.(bool); ok {
		return orderKey{class: classBool, flag: b}
	}
	if t, ok := ToTime(v); ok {
		return orderKey{class: classDate, at: t}
	}
	return orderKey{class: classText, text: fold(toText(v, true))}
}

func (k orderKey) compare(o orderKey) int {
	if k.class != o.class {
		return cmp.Compare(k.class, o.class)
	}
	switch k.class {
	case classNumber:
		return cmp.Compare(k.num, o.num)
	case classDate:
		return k.at.Compare(o.at)
	case classBool:
		return cmp.Compare(boolRank(k.flag), boolRank(o.flag))
	default:
		return strings.Compare(k.text, o.text)
	}
}

// compareValues orders two present values: numbers before dates before
// booleans before text, and within a class numerically, chronologically,
// false before true, or by folded text.
func compareValues(a, b any) int {
	return keyOf(a).compare(keyOf(b))
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

// orderedCompare compares values for lt/lte/gt/gte conditions. Unlike
// compareValues it refuses to fall back to text ordering.
func orderedCompare(a, b any) (int, error) {
	if an, ok := ToFloat64(a); ok {
		if bn, ok := ToFloat64(b); ok {
			return cmp.Compare(an, bn), nil
		}
	}
	if at, ok := ToTime(a); ok {
		if bt, ok := ToTime(b); ok {
			return at.Compare(bt), nil
		}
	}
	return 0, fmt.Errorf("unsupported types for ordered comparison between %T and %T", a, b)
}

package query

// ByField returns a comparator ordering records by field in the given
// direction. Records without the field sort last in both directions.
func ByField(field string, direction SortDirection) Comparator {
	desc := direction == SortDirectionDesc
	return func(a, b Record) int {
		av, aok := a.Field(field)
		bv, bok := b.Field(field)
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return 1
		case !bok:
			return -1
		}
		c := compareValues(av, bv)
		if desc {
			return -c
		}
		return c
	}
}

// TrueFirst returns a comparator putting records whose boolean field is true
// ahead of the rest. Everything else ranks equal.
func TrueFirst(field string) Comparator {
	return func(a, b Record) int {
		return boolRank(isTrue(b, field)) - boolRank(isTrue(a, field))
	}
}

// PresentFirst returns a comparator putting records that carry a non-empty
// field ahead of the rest. Everything else ranks equal.
func PresentFirst(field string) Comparator {
	return func(a, b Record) int {
		return boolRank(hasValue(b, field)) - boolRank(hasValue(a, field))
	}
}

func isTrue(r Record, field string) bool {
	v, ok := r.Field(field)
	b, isBool := v.(bool)
	return ok && isBool && b
}

func hasValue(r Record, field string) bool {
	v, ok := r.Field(field)
	if !ok {
		return false
	}
	if s, isString := v.(string); isString {
		return s != ""
	}
	return true
}

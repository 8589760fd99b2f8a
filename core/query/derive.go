package query

import (
	"math"
	"time"
)

// DaysPerYear is the year length used for elapsed-time buckets.
const DaysPerYear = 365.25

// Bucket is a labelled half-open interval [Min, Max).
type Bucket struct {
	Label string
	Min   float64
	Max   float64
}

// Contains reports whether x falls inside the bucket.
func (b Bucket) Contains(x float64) bool {
	return x >= b.Min && x < b.Max
}

// Below returns a bucket covering everything under max.
func Below(label string, max float64) Bucket {
	return Bucket{Label: label, Min: math.Inf(-1), Max: max}
}

// Between returns a bucket covering [min, max).
func Between(label string, min, max float64) Bucket {
	return Bucket{Label: label, Min: min, Max: max}
}

// AtLeast returns a bucket covering min and everything above it.
func AtLeast(label string, min float64) Bucket {
	return Bucket{Label: label, Min: min, Max: math.Inf(1)}
}

// BucketOf returns the label of the first bucket containing x.
func BucketOf(buckets []Bucket, x float64) (string, bool) {
	for _, b := range buckets {
		if b.Contains(x) {
			return b.Label, true
		}
	}
	return "", false
}

// ElapsedYears returns the time between from and now in years of DaysPerYear days.
// It is negative when from lies in the future.
func ElapsedYears(from, now time.Time) float64 {
	return now.Sub(from).Hours() / (24 * DaysPerYear)
}

// ElapsedYearsBucket derives a bucket label from the time elapsed since the
// date stored in field. The value is recomputed on every query, so a record
// moves between buckets as time passes. Records whose field is missing or
// unparsable have no value.
func ElapsedYearsBucket(field string, buckets []Bucket) DeriveFunction {
	return func(rec Record, now time.Time) (any, bool) {
		raw, ok := rec.Field(field)
		if !ok {
			return nil, false
		}
		from, ok := ToTime(raw)
		if !ok {
			return nil, false
		}
		label, ok := BucketOf(buckets, ElapsedYears(from, now))
		if !ok {
			return nil, false
		}
		return label, true
	}
}

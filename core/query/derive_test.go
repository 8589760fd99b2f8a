package query

import (
	"math"
	"testing"
	"time"

	"github.com/asaidimu/go-portal/core/schema"
	"github.com/stretchr/testify/assert"
)

func TestBucket_Contains(t *testing.T) {
	buckets := seniorityBuckets()

	tests := []struct {
		years    float64
		expected string
	}{
		{-0.5, "<1"},
		{0, "<1"},
		{0.999, "<1"},
		{1, "1-3"},
		{2.99, "1-3"},
		{3, "3-5"},
		{4.999, "3-5"},
		{5, ">5"},
		{40, ">5"},
	}

	for _, tt := range tests {
		label, ok := BucketOf(buckets, tt.years)
		assert.True(t, ok)
		assert.Equal(t, tt.expected, label, "years=%v", tt.years)
	}

	_, ok := BucketOf([]Bucket{Between("x", 0, 1)}, 2)
	assert.False(t, ok)
	_, ok = BucketOf(buckets, math.NaN())
	assert.False(t, ok)
}

func TestElapsedYears(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0.0, ElapsedYears(now, now))
	assert.Equal(t, 3.0, ElapsedYears(now.Add(-26298*time.Hour), now))
	assert.Equal(t, 1.0, ElapsedYears(now.Add(-8766*time.Hour), now))
	assert.Less(t, ElapsedYears(now.Add(time.Hour), now), 0.0)
}

func TestElapsedYearsBucket(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	derive := ElapsedYearsBucket("joinDate", seniorityBuckets())

	tests := []struct {
		name     string
		rec      schema.Document
		expected any
		present  bool
	}{
		{"string date", schema.Document{"joinDate": "2024-06-01"}, "1-3", true},
		{"time value", schema.Document{"joinDate": now.AddDate(-10, 0, 0)}, ">5", true},
		{"exactly three years", schema.Document{"joinDate": now.Add(-26298 * time.Hour).Format(time.RFC3339)}, "3-5", true},
		{"missing", schema.Document{}, nil, false},
		{"null", schema.Document{"joinDate": nil}, nil, false},
		{"unparsable", schema.Document{"joinDate": "not a date"}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := derive(tt.rec, now)
			assert.Equal(t, tt.present, ok)
			assert.Equal(t, tt.expected, v)
		})
	}
}

package query

import (
	"slices"
	"testing"

	"github.com/asaidimu/go-portal/core/schema"
	"github.com/stretchr/testify/assert"
)

func sortedIDs(records []schema.Document, cmp Comparator) []string {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b schema.Document) int { return cmp(a, b) })
	return ids(out)
}

func TestByField(t *testing.T) {
	records := []schema.Document{
		{"id": "1", "endDate": "2023-10-31"},
		{"id": "2"},
		{"id": "3", "endDate": "2023-08-15"},
		{"id": "4", "endDate": "2023-10-25"},
	}

	assert.Equal(t, []string{"3", "4", "1", "2"}, sortedIDs(records, ByField("endDate", SortDirectionAsc)))
	assert.Equal(t, []string{"1", "4", "3", "2"}, sortedIDs(records, ByField("endDate", SortDirectionDesc)))
}

func TestTrueFirst(t *testing.T) {
	records := []schema.Document{
		{"id": "1", "isFeatured": false},
		{"id": "2", "isFeatured": true},
		{"id": "3"},
		{"id": "4", "isFeatured": "true"},
		{"id": "5", "isFeatured": true},
	}

	assert.Equal(t, []string{"2", "5", "1", "3", "4"}, sortedIDs(records, TrueFirst("isFeatured")))
}

func TestPresentFirst(t *testing.T) {
	records := []schema.Document{
		{"id": "1"},
		{"id": "2", "campaignName": ""},
		{"id": "3", "campaignName": "Tháng Văn Hóa 2023"},
		{"id": "4", "campaignName": nil},
		{"id": "5", "campaignName": "Khỏe cùng Hùng Hậu"},
	}

	assert.Equal(t, []string{"3", "5", "1", "2", "4"}, sortedIDs(records, PresentFirst("campaignName")))
}

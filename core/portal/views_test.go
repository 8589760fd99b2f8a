package portal

import (
	"testing"
	"time"

	"github.com/asaidimu/go-portal/core/query"
	"github.com/asaidimu/go-portal/core/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seedNow = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func loadSeed(t *testing.T) *Seed {
	t.Helper()
	seed, err := LoadSeed()
	require.NoError(t, err)
	return seed
}

func recordIDs[T query.Record](records []T) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.RecordID())
	}
	return out
}

type viewCase struct {
	name     string
	criteria query.Criteria
	expected []string
}

// runViewCases checks each case against both the typed seed records and their
// document form, which must agree.
func runViewCases[T query.Record](t *testing.T, view *query.View, typed []T, cases []viewCase) {
	t.Helper()
	e := query.NewEngine(nil, query.WithClock(func() time.Time { return seedNow }))

	docs := mustCollections(t)[view.Name()]
	require.Len(t, docs, len(typed))

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, recordIDs(query.Apply(e, view, typed, tc.criteria)), "typed records")
			assert.Equal(t, tc.expected, recordIDs(query.Apply(e, view, docs, tc.criteria)), "documents")
			assert.NoError(t, view.Validate(tc.criteria))
		})
	}
}

func mustCollections(t *testing.T) map[string][]schema.Document {
	t.Helper()
	colls, err := loadSeed(t).Collections()
	require.NoError(t, err)
	return colls
}

func filter(field, value string) query.Criteria {
	return query.Criteria{Filters: map[string]string{field: value}}
}

func TestEmployeeView(t *testing.T) {
	runViewCases(t, EmployeeView(), loadSeed(t).Employees, []viewCase{
		{"all keeps input order", query.Criteria{}, []string{"HH001", "HH002", "HH003", "HH004", "HH005", "HH006", "HH007", "HH008"}},
		{"department", filter("department", "Ban Truyền Thông"), []string{"HH001", "HH006"}},
		{"search by name", query.Criteria{SearchText: "NGUYỄN"}, []string{"HH001", "HH006"}},
		{"search by id", query.Criteria{SearchText: "hh00"}, []string{"HH001", "HH002", "HH003", "HH004", "HH005", "HH006", "HH007", "HH008"}},
		{"search by email", query.Criteria{SearchText: "tuan.do@"}, []string{"HH005"}},
		{"status", filter("status", "On Leave"), []string{"HH004"}},
		{"tier and status", query.Criteria{Filters: map[string]string{"tier": "Gold", "status": "Active"}}, []string{"HH001", "HH003"}},
		{"seniority under one year", filter(SeniorityField, "<1"), []string{"HH005", "HH008"}},
		{"seniority one to three", filter(SeniorityField, "1-3"), []string{"HH004", "HH006"}},
		{"seniority three to five", filter(SeniorityField, "3-5"), []string{"HH001", "HH003", "HH007"}},
		{"seniority over five", filter(SeniorityField, ">5"), []string{"HH002"}},
		{"filters combine", query.Criteria{SearchText: "văn", Filters: map[string]string{SeniorityField: "3-5"}}, []string{"HH001", "HH003", "HH007"}},
	})
}

func TestNewsFeedView(t *testing.T) {
	runViewCases(t, NewsFeedView(), loadSeed(t).News, []viewCase{
		{"newest first", query.Criteria{}, []string{"1", "4", "2", "3", "5"}},
		{"featured first", query.Criteria{Sort: query.SortSpec{Comparator: SortFeaturedFirst}}, []string{"1", "2", "3", "4", "5"}},
		{"campaign first", query.Criteria{Sort: query.SortSpec{Comparator: SortHasCampaignFirst}}, []string{"1", "5", "2", "3", "4"}},
		{"unit", filter("unit", "Khối Sản Xuất"), []string{"3"}},
		{"category", filter("category", "Policy"), []string{"2"}},
		{"category all", filter("category", query.AllValue), []string{"1", "4", "2", "3", "5"}},
	})
}

func TestSurveyView(t *testing.T) {
	runViewCases(t, SurveyView(), loadSeed(t).Surveys, []viewCase{
		{"all tabs newest first", query.Criteria{Tab: query.AllValue}, []string{"5", "2", "1", "3", "4"}},
		{"open", query.Criteria{Tab: TabOpen}, []string{"2", "1"}},
		{"completed", query.Criteria{Tab: TabCompleted}, []string{"5", "3"}},
		{"expired", query.Criteria{Tab: TabExpired}, []string{"4"}},
		{"ending soon", query.Criteria{Sort: query.SortSpec{Comparator: SortEndingSoon}}, []string{"4", "3", "2", "1", "5"}},
		{"open ending soon", query.Criteria{Tab: TabOpen, Sort: query.SortSpec{Comparator: SortEndingSoon}}, []string{"2", "1"}},
		{"category and search", query.Criteria{SearchText: "khảo sát", Filters: map[string]string{"category": "General"}}, []string{"4"}},
	})
}

func TestAdminViews(t *testing.T) {
	seed := loadSeed(t)

	t.Run("admin news", func(t *testing.T) {
		runViewCases(t, AdminNewsView(), seed.AdminNews, []viewCase{
			{"newest first", query.Criteria{}, []string{"2", "4", "1", "3"}},
			{"draft", filter("status", "Draft"), []string{"2"}},
			{"search", query.Criteria{SearchText: "gala"}, []string{"4"}},
		})
	})

	t.Run("admin surveys", func(t *testing.T) {
		runViewCases(t, AdminSurveyView(), seed.AdminSurveys, []viewCase{
			{"newest first", query.Criteria{}, []string{"3", "2", "1", "4"}},
			{"archived", filter("status", "Archived"), []string{"4"}},
		})
	})

	t.Run("notifications", func(t *testing.T) {
		runViewCases(t, NotificationView(), seed.Notifications, []viewCase{
			{"newest first", query.Criteria{}, []string{"3", "2", "1", "4"}},
			{"error", filter("status", "Error"), []string{"4"}},
			{"search", query.Criteria{SearchText: "erp"}, []string{"1"}},
		})
	})

	t.Run("campaigns", func(t *testing.T) {
		runViewCases(t, CampaignView(), seed.Campaigns, []viewCase{
			{"newest first", query.Criteria{}, []string{"2", "1", "3"}},
			{"active", filter("status", "Active"), []string{"1"}},
		})
	})

	t.Run("transactions", func(t *testing.T) {
		runViewCases(t, TransactionView(), seed.Transactions, []viewCase{
			{"newest first", query.Criteria{}, []string{"TRX001", "TRX002", "TRX003", "TRX004", "TRX005", "TRX006"}},
			{"employee", query.Criteria{SearchText: "nguyễn văn hiển"}, []string{"TRX001", "TRX005"}},
			{"redeem", filter("type", "Redeem"), []string{"TRX002", "TRX004"}},
			{"dept and type", query.Criteria{Filters: map[string]string{"dept": "Ban Truyền Thông", "type": "Earn"}}, []string{"TRX001", "TRX005"}},
		})
	})

	t.Run("documents", func(t *testing.T) {
		runViewCases(t, DocumentView(), seed.Documents, []viewCase{
			{"newest first", query.Criteria{}, []string{"4", "1", "2", "3", "5"}},
			{"forms", filter("category", "Biểu mẫu"), []string{"4", "2"}},
			{"search", query.Criteria{SearchText: "quy"}, []string{"1", "5"}},
		})
	})
}

func TestViews(t *testing.T) {
	views := Views()
	assert.Len(t, views, 9)

	seen := make(map[string]bool)
	for _, v := range views {
		assert.False(t, seen[v.Name()], "duplicate view %s", v.Name())
		seen[v.Name()] = true

		found, err := LookupView(v.Name())
		require.NoError(t, err)
		assert.Equal(t, v.Name(), found.Name())
	}

	_, err := LookupView("payroll")
	assert.Error(t, err)
}

func TestSurveyView_ValidateRejectsUnknownTab(t *testing.T) {
	err := SurveyView().Validate(query.Criteria{Tab: "Archived"})
	assert.ErrorIs(t, err, query.ErrUnknownTab)
}

package portal

import (
	"fmt"

	"github.com/asaidimu/go-portal/core/query"
)

// View names, one per list screen.
const (
	ViewEmployees     = "employees"
	ViewNewsFeed      = "news-feed"
	ViewAdminNews     = "admin-news"
	ViewSurveys       = "surveys"
	ViewAdminSurveys  = "admin-surveys"
	ViewNotifications = "notifications"
	ViewCampaigns     = "campaigns"
	ViewTransactions  = "transactions"
	ViewDocuments     = "documents"
)

// Survey tab names.
const (
	TabOpen      = "Open"
	TabCompleted = "Completed"
	TabExpired   = "Expired"
)

// Named sorts.
const (
	SortFeaturedFirst    = "featured-first"
	SortHasCampaignFirst = "has-campaign-first"
	SortEndingSoon       = "ending-soon"
)

// SeniorityField is the derived employee field holding the seniority bucket.
const SeniorityField = "seniority"

// SeniorityBuckets returns the directory's seniority ranges in years.
func SeniorityBuckets() []query.Bucket {
	return []query.Bucket{
		query.Below("<1", 1),
		query.Between("1-3", 1, 3),
		query.Between("3-5", 3, 5),
		query.AtLeast(">5", 5),
	}
}

// EmployeeView is the employee directory.
func EmployeeView() *query.View {
	return query.MustView(query.ViewConfig{
		Name:         ViewEmployees,
		SearchFields: []string{"name", "id", "email"},
		FilterFields: []string{"department", "status", "tier", SeniorityField},
		Derived: map[string]query.DeriveFunction{
			SeniorityField: query.ElapsedYearsBucket("joinDate", SeniorityBuckets()),
		},
	})
}

// NewsFeedView is the employee-facing news feed.
func NewsFeedView() *query.View {
	return query.MustView(query.ViewConfig{
		Name:         ViewNewsFeed,
		FilterFields: []string{"category", "unit"},
		Comparators: map[string]query.Comparator{
			SortFeaturedFirst:    query.TrueFirst("isFeatured"),
			SortHasCampaignFirst: query.PresentFirst("campaignName"),
		},
		DateField: "date",
	})
}

// AdminNewsView is the news moderation list.
func AdminNewsView() *query.View {
	return query.MustView(query.ViewConfig{
		Name:         ViewAdminNews,
		SearchFields: []string{"title"},
		FilterFields: []string{"status"},
		DateField:    "date",
	})
}

// SurveyView is the employee-facing survey list.
func SurveyView() *query.View {
	return query.MustView(query.ViewConfig{
		Name:         ViewSurveys,
		SearchFields: []string{"title"},
		FilterFields: []string{"category"},
		Tabs: []query.TabPredicate{
			query.NewTab(TabOpen).
				Where("status").Eq(string(SurveyOpen)).
				Where("userStatus").Neq(string(SurveyCompleted)).
				Build(),
			query.NewTab(TabCompleted).
				Where("userStatus").Eq(string(SurveyCompleted)).
				Build(),
			query.NewTab(TabExpired).
				Where("status").Eq(string(SurveyClosed)).
				Where("userStatus").Neq(string(SurveyCompleted)).
				Build(),
		},
		Comparators: map[string]query.Comparator{
			SortEndingSoon: query.ByField("endDate", query.SortDirectionAsc),
		},
		DateField: "startDate",
	})
}

// AdminSurveyView is the survey administration list.
func AdminSurveyView() *query.View {
	return query.MustView(query.ViewConfig{
		Name:         ViewAdminSurveys,
		SearchFields: []string{"title"},
		FilterFields: []string{"status"},
		DateField:    "createdAt",
	})
}

// NotificationView is the notification administration list.
func NotificationView() *query.View {
	return query.MustView(query.ViewConfig{
		Name:         ViewNotifications,
		SearchFields: []string{"title"},
		FilterFields: []string{"status"},
		DateField:    "createdAt",
	})
}

// CampaignView is the campaign administration list.
func CampaignView() *query.View {
	return query.MustView(query.ViewConfig{
		Name:         ViewCampaigns,
		FilterFields: []string{"status"},
		DateField:    "startDate",
	})
}

// TransactionView is the points transaction ledger.
func TransactionView() *query.View {
	return query.MustView(query.ViewConfig{
		Name:         ViewTransactions,
		SearchFields: []string{"employee"},
		FilterFields: []string{"dept", "type"},
		DateField:    "date",
	})
}

// DocumentView is the document library.
func DocumentView() *query.View {
	return query.MustView(query.ViewConfig{
		Name:         ViewDocuments,
		SearchFields: []string{"name"},
		FilterFields: []string{"category"},
		DateField:    "uploadDate",
	})
}

// Views returns every screen view in menu order.
func Views() []*query.View {
	return []*query.View{
		NewsFeedView(),
		EmployeeView(),
		TransactionView(),
		SurveyView(),
		CampaignView(),
		AdminNewsView(),
		AdminSurveyView(),
		NotificationView(),
		DocumentView(),
	}
}

// LookupView returns the view with the given name.
func LookupView(name string) (*query.View, error) {
	for _, v := range Views() {
		if v.Name() == name {
			return v, nil
		}
	}
	return nil, fmt.Errorf("unknown view %q", name)
}

package portal

import (
	"github.com/asaidimu/go-portal/core/schema"
)

const schemaVersion = "1.0.0"

func values[T ~string](vs ...T) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return out
}

// Schemas returns the document schema of every collection, keyed by the view
// that lists it.
func Schemas() map[string]*schema.SchemaDefinition {
	return map[string]*schema.SchemaDefinition{
		ViewEmployees:     EmployeeSchema(),
		ViewNewsFeed:      NewsSchema(ViewNewsFeed),
		ViewAdminNews:     NewsSchema(ViewAdminNews),
		ViewSurveys:       SurveySchema(ViewSurveys),
		ViewAdminSurveys:  SurveySchema(ViewAdminSurveys),
		ViewNotifications: NotificationSchema(),
		ViewCampaigns:     CampaignSchema(),
		ViewTransactions:  TransactionSchema(),
		ViewDocuments:     DocumentSchema(),
	}
}

func EmployeeSchema() *schema.SchemaDefinition {
	return schema.NewSchema(ViewEmployees, schemaVersion,
		schema.Required("id", schema.FieldTypeString),
		schema.Required("name", schema.FieldTypeString),
		schema.Optional("avatar", schema.FieldTypeString),
		schema.Required("position", schema.FieldTypeString),
		schema.Required("department", schema.FieldTypeString),
		schema.Enum("tier", true, values(TierMember, TierSilver, TierGold, TierPlatinum)...),
		schema.Required("points", schema.FieldTypeInteger),
		schema.Optional("joinDate", schema.FieldTypeDate),
		schema.Enum("status", true, values(EmployeeActive, EmployeeOnLeave, EmployeeTerminated)...),
		schema.Required("email", schema.FieldTypeString),
	)
}

// NewsSchema describes news items. The feed and the moderation list share it.
func NewsSchema(name string) *schema.SchemaDefinition {
	return schema.NewSchema(name, schemaVersion,
		schema.Required("id", schema.FieldTypeString),
		schema.Required("title", schema.FieldTypeString),
		schema.Required("summary", schema.FieldTypeString),
		schema.Optional("content", schema.FieldTypeString),
		schema.Enum("category", true, values(NewsCategoryNews, NewsCategoryPolicy, NewsCategoryEvent, NewsCategorySpotlight, NewsCategoryCampaign)...),
		schema.Required("date", schema.FieldTypeDate),
		schema.Optional("image", schema.FieldTypeString),
		schema.Required("likes", schema.FieldTypeInteger),
		schema.Required("comments", schema.FieldTypeInteger),
		schema.Required("publisher", schema.FieldTypeString),
		schema.Required("unit", schema.FieldTypeString),
		schema.Required("isFeatured", schema.FieldTypeBoolean),
		schema.Optional("campaignName", schema.FieldTypeString),
		schema.Optional("attachments", schema.FieldTypeArray),
		schema.Enum("status", false, values(NewsDraft, NewsPending, NewsPublished, NewsHidden)...),
		schema.Enum("targetAudience", false, "All", "Department", "Group"),
		schema.Optional("scheduledPublishDate", schema.FieldTypeDate),
		schema.Optional("scheduledUnpublishDate", schema.FieldTypeDate),
		schema.Optional("authorId", schema.FieldTypeString),
	)
}

// SurveySchema describes surveys. The employee list and the admin list share it.
func SurveySchema(name string) *schema.SchemaDefinition {
	return schema.NewSchema(name, schemaVersion,
		schema.Required("id", schema.FieldTypeString),
		schema.Required("title", schema.FieldTypeString),
		schema.Required("description", schema.FieldTypeString),
		schema.Enum("category", true, values(SurveySatisfaction, SurveyTraining, SurveyEvent, SurveyGeneral)...),
		schema.Required("startDate", schema.FieldTypeDate),
		schema.Required("endDate", schema.FieldTypeDate),
		schema.Enum("status", true, values(SurveyDraft, SurveyOpen, SurveyClosed, SurveyArchived)...),
		schema.Enum("userStatus", false, values(SurveyNotStarted, SurveyInProgress, SurveyCompleted)...),
		schema.Required("participants", schema.FieldTypeInteger),
		schema.Required("durationMinutes", schema.FieldTypeInteger),
		schema.Required("questionCount", schema.FieldTypeInteger),
		schema.Optional("pointsReward", schema.FieldTypeInteger),
		schema.Enum("targetType", false, "All", "Department", "Group", "Tier"),
		schema.Optional("targetValue", schema.FieldTypeString),
		schema.Optional("createdAt", schema.FieldTypeDate),
	)
}

func NotificationSchema() *schema.SchemaDefinition {
	return schema.NewSchema(ViewNotifications, schemaVersion,
		schema.Required("id", schema.FieldTypeString),
		schema.Required("title", schema.FieldTypeString),
		schema.Required("preview", schema.FieldTypeString),
		schema.Enum("type", true, "General", "Urgent", "Unit"),
		schema.Enum("targetType", true, "All", "Department", "Group"),
		schema.Optional("targetValue", schema.FieldTypeString),
		schema.Optional("scheduledTime", schema.FieldTypeString),
		schema.Required("isScheduled", schema.FieldTypeBoolean),
		schema.Enum("status", true, values(NotificationDraft, NotificationSent, NotificationSending, NotificationError, NotificationScheduled)...),
		schema.Optional("sentCount", schema.FieldTypeInteger),
		schema.Optional("totalTarget", schema.FieldTypeInteger),
		schema.Optional("errorLog", schema.FieldTypeString),
		schema.Required("createdAt", schema.FieldTypeDate),
		schema.Required("sender", schema.FieldTypeString),
	)
}

func CampaignSchema() *schema.SchemaDefinition {
	return schema.NewSchema(ViewCampaigns, schemaVersion,
		schema.Required("id", schema.FieldTypeString),
		schema.Required("name", schema.FieldTypeString),
		schema.Required("goal", schema.FieldTypeString),
		schema.Required("startDate", schema.FieldTypeDate),
		schema.Required("endDate", schema.FieldTypeDate),
		schema.Enum("status", true, values(CampaignActive, CampaignUpcoming, CampaignEnded)...),
		schema.Enum("targetAudience", true, "All", "Department", "Group"),
		schema.Optional("hashtag", schema.FieldTypeString),
		schema.Optional("banner", schema.FieldTypeString),
		schema.Optional("message", schema.FieldTypeString),
		schema.Required("linkedNewsCount", schema.FieldTypeInteger),
		schema.Optional("totalViews", schema.FieldTypeInteger),
		schema.Optional("linkedNewsIds", schema.FieldTypeArray),
	)
}

func TransactionSchema() *schema.SchemaDefinition {
	return schema.NewSchema(ViewTransactions, schemaVersion,
		schema.Required("id", schema.FieldTypeString),
		schema.Required("employee", schema.FieldTypeString),
		schema.Required("dept", schema.FieldTypeString),
		schema.Enum("type", true, values(TransactionEarn, TransactionRedeem)...),
		schema.Required("amount", schema.FieldTypeInteger),
		schema.Required("date", schema.FieldTypeDate),
		schema.Required("program", schema.FieldTypeString),
	)
}

func DocumentSchema() *schema.SchemaDefinition {
	return schema.NewSchema(ViewDocuments, schemaVersion,
		schema.Required("id", schema.FieldTypeString),
		schema.Required("name", schema.FieldTypeString),
		schema.Enum("type", true, "PDF", "DOCX", "XLSX"),
		schema.Required("size", schema.FieldTypeString),
		schema.Required("uploadDate", schema.FieldTypeDate),
		schema.Enum("category", true, values(DocumentProcess, DocumentForm, DocumentTraining)...),
	)
}

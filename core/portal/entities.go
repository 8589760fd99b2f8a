// Package portal holds the records shown on the portal's list screens and the
// query views each screen uses.
package portal

// Tier is a loyalty tier.
type Tier string

const (
	TierMember   Tier = "Member"
	TierSilver   Tier = "Silver"
	TierGold     Tier = "Gold"
	TierPlatinum Tier = "Platinum"
)

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	switch t {
	case TierMember, TierSilver, TierGold, TierPlatinum:
		return true
	}
	return false
}

// EmployeeStatus is the employment state shown in the directory.
type EmployeeStatus string

const (
	EmployeeActive     EmployeeStatus = "Active"
	EmployeeOnLeave    EmployeeStatus = "On Leave"
	EmployeeTerminated EmployeeStatus = "Terminated"
)

func (s EmployeeStatus) Valid() bool {
	switch s {
	case EmployeeActive, EmployeeOnLeave, EmployeeTerminated:
		return true
	}
	return false
}

// Employee is a directory entry.
type Employee struct {
	ID         string         `json:"id" yaml:"id"`
	Name       string         `json:"name" yaml:"name"`
	Avatar     string         `json:"avatar,omitempty" yaml:"avatar,omitempty"`
	Position   string         `json:"position" yaml:"position"`
	Department string         `json:"department" yaml:"department"`
	Tier       Tier           `json:"tier" yaml:"tier"`
	Points     int            `json:"points" yaml:"points"`
	JoinDate   string         `json:"joinDate,omitempty" yaml:"joinDate,omitempty"`
	Status     EmployeeStatus `json:"status" yaml:"status"`
	Email      string         `json:"email" yaml:"email"`
}

func (e Employee) RecordID() string { return e.ID }

func (e Employee) Field(name string) (any, bool) {
	switch name {
	case "id":
		return e.ID, true
	case "name":
		return e.Name, true
	case "avatar":
		return optional(e.Avatar)
	case "position":
		return e.Position, true
	case "department":
		return e.Department, true
	case "tier":
		return string(e.Tier), true
	case "points":
		return e.Points, true
	case "joinDate":
		return optional(e.JoinDate)
	case "status":
		return string(e.Status), true
	case "email":
		return e.Email, true
	}
	return nil, false
}

// NewsStatus is the editorial state of a news item.
type NewsStatus string

const (
	NewsDraft     NewsStatus = "Draft"
	NewsPending   NewsStatus = "Pending"
	NewsPublished NewsStatus = "Published"
	NewsHidden    NewsStatus = "Hidden"
)

func (s NewsStatus) Valid() bool {
	switch s {
	case NewsDraft, NewsPending, NewsPublished, NewsHidden:
		return true
	}
	return false
}

// NewsCategory groups news items on the feed.
type NewsCategory string

const (
	NewsCategoryNews      NewsCategory = "News"
	NewsCategoryPolicy    NewsCategory = "Policy"
	NewsCategoryEvent     NewsCategory = "Event"
	NewsCategorySpotlight NewsCategory = "Spotlight"
	NewsCategoryCampaign  NewsCategory = "Campaign"
)

func (c NewsCategory) Valid() bool {
	switch c {
	case NewsCategoryNews, NewsCategoryPolicy, NewsCategoryEvent, NewsCategorySpotlight, NewsCategoryCampaign:
		return true
	}
	return false
}

// Attachment is a file linked from a news item.
type Attachment struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
	URL  string `json:"url" yaml:"url"`
	Size string `json:"size" yaml:"size"`
}

// NewsItem is an article on the news feed. The admin fields are only set on
// the moderation screen.
type NewsItem struct {
	ID           string       `json:"id" yaml:"id"`
	Title        string       `json:"title" yaml:"title"`
	Summary      string       `json:"summary" yaml:"summary"`
	Content      string       `json:"content,omitempty" yaml:"content,omitempty"`
	Category     NewsCategory `json:"category" yaml:"category"`
	Date         string       `json:"date" yaml:"date"`
	Image        string       `json:"image,omitempty" yaml:"image,omitempty"`
	Likes        int          `json:"likes" yaml:"likes"`
	Comments     int          `json:"comments" yaml:"comments"`
	Publisher    string       `json:"publisher" yaml:"publisher"`
	Unit         string       `json:"unit" yaml:"unit"`
	IsFeatured   bool         `json:"isFeatured" yaml:"isFeatured"`
	CampaignName string       `json:"campaignName,omitempty" yaml:"campaignName,omitempty"`
	Attachments  []Attachment `json:"attachments,omitempty" yaml:"attachments,omitempty"`

	Status                 NewsStatus `json:"status,omitempty" yaml:"status,omitempty"`
	TargetAudience         string     `json:"targetAudience,omitempty" yaml:"targetAudience,omitempty"`
	ScheduledPublishDate   string     `json:"scheduledPublishDate,omitempty" yaml:"scheduledPublishDate,omitempty"`
	ScheduledUnpublishDate string     `json:"scheduledUnpublishDate,omitempty" yaml:"scheduledUnpublishDate,omitempty"`
	AuthorID               string     `json:"authorId,omitempty" yaml:"authorId,omitempty"`
}

func (n NewsItem) RecordID() string { return n.ID }

func (n NewsItem) Field(name string) (any, bool) {
	switch name {
	case "id":
		return n.ID, true
	case "title":
		return n.Title, true
	case "summary":
		return n.Summary, true
	case "content":
		return optional(n.Content)
	case "category":
		return string(n.Category), true
	case "date":
		return n.Date, true
	case "image":
		return optional(n.Image)
	case "likes":
		return n.Likes, true
	case "comments":
		return n.Comments, true
	case "publisher":
		return n.Publisher, true
	case "unit":
		return n.Unit, true
	case "isFeatured":
		return n.IsFeatured, true
	case "campaignName":
		return optional(n.CampaignName)
	case "attachments":
		return n.Attachments, len(n.Attachments) > 0
	case "status":
		return optional(string(n.Status))
	case "targetAudience":
		return optional(n.TargetAudience)
	case "scheduledPublishDate":
		return optional(n.ScheduledPublishDate)
	case "scheduledUnpublishDate":
		return optional(n.ScheduledUnpublishDate)
	case "authorId":
		return optional(n.AuthorID)
	}
	return nil, false
}

// SurveyStatus is the lifecycle state of a survey.
type SurveyStatus string

const (
	SurveyDraft    SurveyStatus = "Draft"
	SurveyOpen     SurveyStatus = "Open"
	SurveyClosed   SurveyStatus = "Closed"
	SurveyArchived SurveyStatus = "Archived"
)

func (s SurveyStatus) Valid() bool {
	switch s {
	case SurveyDraft, SurveyOpen, SurveyClosed, SurveyArchived:
		return true
	}
	return false
}

// SurveyUserStatus is the current user's progress on a survey.
type SurveyUserStatus string

const (
	SurveyNotStarted SurveyUserStatus = "NotStarted"
	SurveyInProgress SurveyUserStatus = "InProgress"
	SurveyCompleted  SurveyUserStatus = "Completed"
)

func (s SurveyUserStatus) Valid() bool {
	switch s {
	case SurveyNotStarted, SurveyInProgress, SurveyCompleted:
		return true
	}
	return false
}

// SurveyCategory groups surveys.
type SurveyCategory string

const (
	SurveySatisfaction SurveyCategory = "Satisfaction"
	SurveyTraining     SurveyCategory = "Training"
	SurveyEvent        SurveyCategory = "Event"
	SurveyGeneral      SurveyCategory = "General"
)

func (c SurveyCategory) Valid() bool {
	switch c {
	case SurveySatisfaction, SurveyTraining, SurveyEvent, SurveyGeneral:
		return true
	}
	return false
}

// Survey is a questionnaire. UserStatus is only known on the employee-facing
// list; CreatedAt and the targeting fields only on the admin screen.
type Survey struct {
	ID              string           `json:"id" yaml:"id"`
	Title           string           `json:"title" yaml:"title"`
	Description     string           `json:"description" yaml:"description"`
	Category        SurveyCategory   `json:"category" yaml:"category"`
	StartDate       string           `json:"startDate" yaml:"startDate"`
	EndDate         string           `json:"endDate" yaml:"endDate"`
	Status          SurveyStatus     `json:"status" yaml:"status"`
	UserStatus      SurveyUserStatus `json:"userStatus,omitempty" yaml:"userStatus,omitempty"`
	Participants    int              `json:"participants" yaml:"participants"`
	DurationMinutes int              `json:"durationMinutes" yaml:"durationMinutes"`
	QuestionCount   int              `json:"questionCount" yaml:"questionCount"`
	PointsReward    *int             `json:"pointsReward,omitempty" yaml:"pointsReward,omitempty"`
	TargetType      string           `json:"targetType,omitempty" yaml:"targetType,omitempty"`
	TargetValue     string           `json:"targetValue,omitempty" yaml:"targetValue,omitempty"`
	CreatedAt       string           `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

func (s Survey) RecordID() string { return s.ID }

func (s Survey) Field(name string) (any, bool) {
	switch name {
	case "id":
		return s.ID, true
	case "title":
		return s.Title, true
	case "description":
		return s.Description, true
	case "category":
		return string(s.Category), true
	case "startDate":
		return s.StartDate, true
	case "endDate":
		return s.EndDate, true
	case "status":
		return string(s.Status), true
	case "userStatus":
		return optional(string(s.UserStatus))
	case "participants":
		return s.Participants, true
	case "durationMinutes":
		return s.DurationMinutes, true
	case "questionCount":
		return s.QuestionCount, true
	case "pointsReward":
		if s.PointsReward == nil {
			return nil, false
		}
		return *s.PointsReward, true
	case "targetType":
		return optional(s.TargetType)
	case "targetValue":
		return optional(s.TargetValue)
	case "createdAt":
		return optional(s.CreatedAt)
	}
	return nil, false
}

// NotificationStatus is the delivery state of a notification.
type NotificationStatus string

const (
	NotificationDraft     NotificationStatus = "Draft"
	NotificationSent      NotificationStatus = "Sent"
	NotificationSending   NotificationStatus = "Sending"
	NotificationError     NotificationStatus = "Error"
	NotificationScheduled NotificationStatus = "Scheduled"
)

func (s NotificationStatus) Valid() bool {
	switch s {
	case NotificationDraft, NotificationSent, NotificationSending, NotificationError, NotificationScheduled:
		return true
	}
	return false
}

// Notification is a message pushed to employees. Delivery itself is out of
// scope; only the administration list is modelled.
type Notification struct {
	ID            string             `json:"id" yaml:"id"`
	Title         string             `json:"title" yaml:"title"`
	Preview       string             `json:"preview" yaml:"preview"`
	Type          string             `json:"type" yaml:"type"`
	TargetType    string             `json:"targetType" yaml:"targetType"`
	TargetValue   string             `json:"targetValue,omitempty" yaml:"targetValue,omitempty"`
	ScheduledTime string             `json:"scheduledTime,omitempty" yaml:"scheduledTime,omitempty"`
	IsScheduled   bool               `json:"isScheduled" yaml:"isScheduled"`
	Status        NotificationStatus `json:"status" yaml:"status"`
	SentCount     *int               `json:"sentCount,omitempty" yaml:"sentCount,omitempty"`
	TotalTarget   *int               `json:"totalTarget,omitempty" yaml:"totalTarget,omitempty"`
	ErrorLog      string             `json:"errorLog,omitempty" yaml:"errorLog,omitempty"`
	CreatedAt     string             `json:"createdAt" yaml:"createdAt"`
	Sender        string             `json:"sender" yaml:"sender"`
}

func (n Notification) RecordID() string { return n.ID }

func (n Notification) Field(name string) (any, bool) {
	switch name {
	case "id":
		return n.ID, true
	case "title":
		return n.Title, true
	case "preview":
		return n.Preview, true
	case "type":
		return n.Type, true
	case "targetType":
		return n.TargetType, true
	case "targetValue":
		return optional(n.TargetValue)
	case "scheduledTime":
		return optional(n.ScheduledTime)
	case "isScheduled":
		return n.IsScheduled, true
	case "status":
		return string(n.Status), true
	case "sentCount":
		return optionalInt(n.SentCount)
	case "totalTarget":
		return optionalInt(n.TotalTarget)
	case "errorLog":
		return optional(n.ErrorLog)
	case "createdAt":
		return n.CreatedAt, true
	case "sender":
		return n.Sender, true
	}
	return nil, false
}

// CampaignStatus is the schedule state of a campaign.
type CampaignStatus string

const (
	CampaignActive   CampaignStatus = "Active"
	CampaignUpcoming CampaignStatus = "Upcoming"
	CampaignEnded    CampaignStatus = "Ended"
)

func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignActive, CampaignUpcoming, CampaignEnded:
		return true
	}
	return false
}

// Campaign is an internal communication campaign news items can be linked to.
type Campaign struct {
	ID              string         `json:"id" yaml:"id"`
	Name            string         `json:"name" yaml:"name"`
	Goal            string         `json:"goal" yaml:"goal"`
	StartDate       string         `json:"startDate" yaml:"startDate"`
	EndDate         string         `json:"endDate" yaml:"endDate"`
	Status          CampaignStatus `json:"status" yaml:"status"`
	TargetAudience  string         `json:"targetAudience" yaml:"targetAudience"`
	Hashtag         string         `json:"hashtag,omitempty" yaml:"hashtag,omitempty"`
	Banner          string         `json:"banner,omitempty" yaml:"banner,omitempty"`
	Message         string         `json:"message,omitempty" yaml:"message,omitempty"`
	LinkedNewsCount int            `json:"linkedNewsCount" yaml:"linkedNewsCount"`
	TotalViews      *int           `json:"totalViews,omitempty" yaml:"totalViews,omitempty"`
	LinkedNewsIDs   []string       `json:"linkedNewsIds,omitempty" yaml:"linkedNewsIds,omitempty"`
}

func (c Campaign) RecordID() string { return c.ID }

func (c Campaign) Field(name string) (any, bool) {
	switch name {
	case "id":
		return c.ID, true
	case "name":
		return c.Name, true
	case "goal":
		return c.Goal, true
	case "startDate":
		return c.StartDate, true
	case "endDate":
		return c.EndDate, true
	case "status":
		return string(c.Status), true
	case "targetAudience":
		return c.TargetAudience, true
	case "hashtag":
		return optional(c.Hashtag)
	case "banner":
		return optional(c.Banner)
	case "message":
		return optional(c.Message)
	case "linkedNewsCount":
		return c.LinkedNewsCount, true
	case "totalViews":
		return optionalInt(c.TotalViews)
	case "linkedNewsIds":
		return c.LinkedNewsIDs, len(c.LinkedNewsIDs) > 0
	}
	return nil, false
}

// TransactionType tells point credits from redemptions.
type TransactionType string

const (
	TransactionEarn   TransactionType = "Earn"
	TransactionRedeem TransactionType = "Redeem"
)

func (t TransactionType) Valid() bool {
	return t == TransactionEarn || t == TransactionRedeem
}

// Transaction is a points ledger entry. Amount is negative for redemptions.
type Transaction struct {
	ID       string          `json:"id" yaml:"id"`
	Employee string          `json:"employee" yaml:"employee"`
	Dept     string          `json:"dept" yaml:"dept"`
	Type     TransactionType `json:"type" yaml:"type"`
	Amount   int             `json:"amount" yaml:"amount"`
	Date     string          `json:"date" yaml:"date"`
	Program  string          `json:"program" yaml:"program"`
}

func (t Transaction) RecordID() string { return t.ID }

func (t Transaction) Field(name string) (any, bool) {
	switch name {
	case "id":
		return t.ID, true
	case "employee":
		return t.Employee, true
	case "dept":
		return t.Dept, true
	case "type":
		return string(t.Type), true
	case "amount":
		return t.Amount, true
	case "date":
		return t.Date, true
	case "program":
		return t.Program, true
	}
	return nil, false
}

// DocumentCategory groups library documents.
type DocumentCategory string

const (
	DocumentProcess  DocumentCategory = "Quy trình"
	DocumentForm     DocumentCategory = "Biểu mẫu"
	DocumentTraining DocumentCategory = "Đào tạo"
)

func (c DocumentCategory) Valid() bool {
	switch c {
	case DocumentProcess, DocumentForm, DocumentTraining:
		return true
	}
	return false
}

// LibraryDocument is a file in the shared document library.
type LibraryDocument struct {
	ID         string           `json:"id" yaml:"id"`
	Name       string           `json:"name" yaml:"name"`
	Type       string           `json:"type" yaml:"type"`
	Size       string           `json:"size" yaml:"size"`
	UploadDate string           `json:"uploadDate" yaml:"uploadDate"`
	Category   DocumentCategory `json:"category" yaml:"category"`
}

func (d LibraryDocument) RecordID() string { return d.ID }

func (d LibraryDocument) Field(name string) (any, bool) {
	switch name {
	case "id":
		return d.ID, true
	case "name":
		return d.Name, true
	case "type":
		return d.Type, true
	case "size":
		return d.Size, true
	case "uploadDate":
		return d.UploadDate, true
	case "category":
		return string(d.Category), true
	}
	return nil, false
}

// TierConfig holds the thresholds and benefits of a tier.
type TierConfig struct {
	ID                 string   `json:"id" yaml:"id"`
	Name               Tier     `json:"name" yaml:"name"`
	Color              string   `json:"color,omitempty" yaml:"color,omitempty"`
	MinPoints          int      `json:"minPoints" yaml:"minPoints"`
	MinSeniorityMonths int      `json:"minSeniorityMonths" yaml:"minSeniorityMonths"`
	Benefits           []string `json:"benefits,omitempty" yaml:"benefits,omitempty"`
	Icon               string   `json:"icon,omitempty" yaml:"icon,omitempty"`
}

func optional(s string) (any, bool) {
	return s, s != ""
}

func optionalInt(n *int) (any, bool) {
	if n == nil {
		return nil, false
	}
	return *n, true
}

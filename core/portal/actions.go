package portal

import (
	"context"
	"fmt"
	"time"

	"github.com/asaidimu/go-portal/core/schema"
	"github.com/asaidimu/go-portal/utils"
)

// CopySuffix is appended to the title of a duplicated survey.
const CopySuffix = " (Sao chép)"

// DocumentStore is the part of a persistence collection the screen actions
// need.
type DocumentStore interface {
	Get(ctx context.Context, id string) (schema.Document, error)
	Create(ctx context.Context, doc schema.Document) (schema.Document, error)
	Update(ctx context.Context, id string, patch schema.Document) (schema.Document, error)
}

// DuplicateSurvey stores a draft copy of the survey id. The copy gets a new
// id, the title suffix, no participants, no schedule and a creation date of
// today.
func DuplicateSurvey(ctx context.Context, store DocumentStore, id string, now time.Time) (Survey, error) {
	survey, err := load[Survey](ctx, store, id)
	if err != nil {
		return Survey{}, err
	}

	survey.ID = ""
	survey.Title += CopySuffix
	survey.Status = SurveyDraft
	survey.Participants = 0
	survey.StartDate = ""
	survey.EndDate = ""
	survey.CreatedAt = now.Format(time.DateOnly)

	doc, err := utils.StructToMap(survey)
	if err != nil {
		return Survey{}, err
	}
	created, err := store.Create(ctx, doc)
	if err != nil {
		return Survey{}, fmt.Errorf("duplicate survey %s: %w", id, err)
	}
	return utils.MapToStruct[Survey](created)
}

// ToggleLike flips the viewer's like on the news item id. liked is the
// viewer's current state; the stored like count moves by one and never drops
// below zero. It returns the updated item and the new state.
func ToggleLike(ctx context.Context, store DocumentStore, id string, liked bool) (NewsItem, bool, error) {
	item, err := load[NewsItem](ctx, store, id)
	if err != nil {
		return NewsItem{}, liked, err
	}

	likes := item.Likes + 1
	if liked {
		likes = max(item.Likes-1, 0)
	}
	updated, err := store.Update(ctx, id, schema.Document{"likes": likes})
	if err != nil {
		return NewsItem{}, liked, fmt.Errorf("toggle like on %s: %w", id, err)
	}
	item, err = utils.MapToStruct[NewsItem](updated)
	return item, !liked, err
}

// SaveCampaign creates the campaign when it has no id and updates it
// otherwise. LinkedNewsCount always follows LinkedNewsIDs. New campaigns
// start Upcoming with no views.
func SaveCampaign(ctx context.Context, store DocumentStore, campaign Campaign) (Campaign, error) {
	campaign.LinkedNewsCount = len(campaign.LinkedNewsIDs)

	if campaign.ID == "" {
		views := 0
		campaign.Status = CampaignUpcoming
		campaign.TotalViews = &views
		doc, err := utils.StructToMap(campaign)
		if err != nil {
			return Campaign{}, err
		}
		created, err := store.Create(ctx, doc)
		if err != nil {
			return Campaign{}, fmt.Errorf("create campaign: %w", err)
		}
		return utils.MapToStruct[Campaign](created)
	}

	patch, err := utils.StructToMap(campaign)
	if err != nil {
		return Campaign{}, err
	}
	if len(campaign.LinkedNewsIDs) == 0 {
		patch["linkedNewsIds"] = nil
	}
	updated, err := store.Update(ctx, campaign.ID, patch)
	if err != nil {
		return Campaign{}, fmt.Errorf("save campaign %s: %w", campaign.ID, err)
	}
	return utils.MapToStruct[Campaign](updated)
}

func load[T any](ctx context.Context, store DocumentStore, id string) (T, error) {
	doc, err := store.Get(ctx, id)
	if err != nil {
		var zero T
		return zero, err
	}
	return utils.MapToStruct[T](doc)
}

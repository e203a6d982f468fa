package domain

import (
	"context"

	"github.com/pkg/math"

	"github.com/moltfund/backend/internal/entity"
	"github.com/moltfund/backend/internal/model"
	"github.com/moltfund/backend/internal/repository"
	"github.com/moltfund/backend/pkg/errorx"
	"github.com/moltfund/backend/pkg/xcontext"
)

// feedFilters maps a public filter name to the event types it includes. An
// empty list means no type restriction.
var feedFilters = map[string][]entity.FeedEventType{
	"all": {},
	"campaigns": {
		entity.CampaignCreatedEvent,
		entity.CampaignUpdatedEvent,
		entity.CampaignMilestoneEvent,
	},
	"advocacy": {
		entity.AdvocacyAddedEvent,
		entity.AdvocacyWithdrawnEvent,
	},
	"warroom":   {entity.WarRoomPostEvent},
	"donations": {entity.DonationReceivedEvent},
}

type FeedDomain interface {
	GetFeed(ctx context.Context, req *model.GetFeedRequest) (*model.GetFeedResponse, error)
}

type feedDomain struct {
	feedEventRepo repository.FeedEventRepository
	campaignRepo  repository.CampaignRepository
	agentRepo     repository.AgentRepository
}

func NewFeedDomain(
	feedEventRepo repository.FeedEventRepository,
	campaignRepo repository.CampaignRepository,
	agentRepo repository.AgentRepository,
) *feedDomain {
	return &feedDomain{
		feedEventRepo: feedEventRepo,
		campaignRepo:  campaignRepo,
		agentRepo:     agentRepo,
	}
}

func (d *feedDomain) GetFeed(
	ctx context.Context, req *model.GetFeedRequest,
) (*model.GetFeedResponse, error) {
	if req.Filter == "" {
		req.Filter = "all"
	}

	types, ok := feedFilters[req.Filter]
	if !ok {
		return nil, errorx.New(errorx.BadRequest, "Invalid filter %s", req.Filter)
	}

	if req.Page < 1 {
		req.Page = 1
	}

	if req.PerPage == 0 {
		req.PerPage = 20
	}
	req.PerPage = math.MinInt(req.PerPage, 100)

	offset := (req.Page - 1) * req.PerPage
	events, err := d.feedEventRepo.GetList(ctx, types, offset, req.PerPage)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get feed events: %v", err)
		return nil, errorx.Unknown
	}

	// Titles and names are resolved best-effort; an event referring to a
	// row that no longer exists is still served.
	titles := map[string]string{}
	names := map[string]string{}
	for _, event := range events {
		if event.CampaignID.Valid {
			titles[event.CampaignID.String] = ""
		}

		if event.AgentID.Valid {
			names[event.AgentID.String] = ""
		}
	}

	for campaignID := range titles {
		campaign, err := d.campaignRepo.GetByID(ctx, campaignID)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot resolve campaign %s of feed: %v", campaignID, err)
			continue
		}

		titles[campaignID] = campaign.Title
	}

	agentIDs := []string{}
	for agentID := range names {
		agentIDs = append(agentIDs, agentID)
	}

	if len(agentIDs) > 0 {
		agents, err := d.agentRepo.GetByIDs(ctx, agentIDs)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot resolve agents of feed: %v", err)
		}

		for _, agent := range agents {
			names[agent.ID] = agent.Name
		}
	}

	result := []model.FeedEvent{}
	for i := range events {
		event := &events[i]
		result = append(result, model.ConvertFeedEvent(
			event, titles[event.CampaignID.String], names[event.AgentID.String]))
	}

	return &model.GetFeedResponse{Events: result}, nil
}

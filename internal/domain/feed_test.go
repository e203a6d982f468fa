package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moltfund/backend/internal/domain/feedhub"
	"github.com/moltfund/backend/internal/entity"
	"github.com/moltfund/backend/internal/model"
	"github.com/moltfund/backend/internal/repository"
	"github.com/moltfund/backend/internal/testutil"
	"github.com/moltfund/backend/pkg/errorx"
)

func seedFeedEvents(ctx context.Context, t *testing.T, hub feedhub.Hub) {
	events := []struct {
		eventType entity.FeedEventType
		agentID   string
	}{
		{entity.CampaignCreatedEvent, ""},
		{entity.DonationReceivedEvent, ""},
		{entity.AdvocacyAddedEvent, testutil.Agent1.ID},
		{entity.WarRoomPostEvent, testutil.Agent1.ID},
		{entity.CampaignMilestoneEvent, ""},
	}

	for _, e := range events {
		err := hub.Append(ctx, e.eventType, testutil.Campaign1.ID, e.agentID, nil)
		require.NoError(t, err)
	}
}

func Test_feedDomain_GetFeed_filters(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(ctx, t)

	feedEventRepo := repository.NewFeedEventRepository()
	hub := feedhub.NewHub(feedEventRepo, testutil.NewMockPublisher())
	seedFeedEvents(ctx, t, hub)

	feedDomain := NewFeedDomain(
		feedEventRepo, repository.NewCampaignRepository(), repository.NewAgentRepository())

	all, err := feedDomain.GetFeed(ctx, &model.GetFeedRequest{})
	require.NoError(t, err)
	require.Len(t, all.Events, 5)

	campaigns, err := feedDomain.GetFeed(ctx, &model.GetFeedRequest{Filter: "campaigns"})
	require.NoError(t, err)
	require.Len(t, campaigns.Events, 2)

	donations, err := feedDomain.GetFeed(ctx, &model.GetFeedRequest{Filter: "donations"})
	require.NoError(t, err)
	require.Len(t, donations.Events, 1)

	warroom, err := feedDomain.GetFeed(ctx, &model.GetFeedRequest{Filter: "warroom"})
	require.NoError(t, err)
	require.Len(t, warroom.Events, 1)
	require.Equal(t, testutil.Agent1.Name, warroom.Events[0].AgentName)
	require.Equal(t, testutil.Campaign1.Title, warroom.Events[0].CampaignTitle)
}

func Test_feedDomain_GetFeed_invalidFilter(t *testing.T) {
	ctx := testutil.MockContext(t)
	feedDomain := NewFeedDomain(
		repository.NewFeedEventRepository(),
		repository.NewCampaignRepository(),
		repository.NewAgentRepository())

	_, err := feedDomain.GetFeed(ctx, &model.GetFeedRequest{Filter: "everything"})
	require.Error(t, err)
	require.Equal(t, errorx.BadRequest, err.(errorx.Error).Code)
}

func Test_feedDomain_GetFeed_pagination(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(ctx, t)

	feedEventRepo := repository.NewFeedEventRepository()
	hub := feedhub.NewHub(feedEventRepo, testutil.NewMockPublisher())
	seedFeedEvents(ctx, t, hub)

	feedDomain := NewFeedDomain(
		feedEventRepo, repository.NewCampaignRepository(), repository.NewAgentRepository())

	page1, err := feedDomain.GetFeed(ctx, &model.GetFeedRequest{Page: 1, PerPage: 3})
	require.NoError(t, err)
	require.Len(t, page1.Events, 3)

	page2, err := feedDomain.GetFeed(ctx, &model.GetFeedRequest{Page: 2, PerPage: 3})
	require.NoError(t, err)
	require.Len(t, page2.Events, 2)

	for _, event := range page2.Events {
		for _, first := range page1.Events {
			require.NotEqual(t, first.ID, event.ID)
		}
	}
}

func Test_feedDomain_GetFeed_toleratesDanglingReferences(t *testing.T) {
	ctx := testutil.MockContext(t)

	feedEventRepo := repository.NewFeedEventRepository()
	hub := feedhub.NewHub(feedEventRepo, testutil.NewMockPublisher())
	require.NoError(t, hub.Append(ctx, entity.CampaignCreatedEvent, "gone-campaign", "", nil))

	feedDomain := NewFeedDomain(
		feedEventRepo, repository.NewCampaignRepository(), repository.NewAgentRepository())

	resp, err := feedDomain.GetFeed(ctx, &model.GetFeedRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Events, 1)
	require.Empty(t, resp.Events[0].CampaignTitle)
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moltfund/backend/internal/domain/feedhub"
	"github.com/moltfund/backend/internal/entity"
	"github.com/moltfund/backend/internal/model"
	"github.com/moltfund/backend/internal/repository"
	"github.com/moltfund/backend/internal/testutil"
	"github.com/moltfund/backend/pkg/errorx"
)

func newCampaignDomainForTest() (CampaignDomain, repository.FeedEventRepository) {
	feedEventRepo := repository.NewFeedEventRepository()
	return NewCampaignDomain(
		repository.NewCampaignRepository(),
		repository.NewCreatorRepository(),
		repository.NewDonationRepository(),
		feedhub.NewHub(feedEventRepo, testutil.NewMockPublisher()),
	), feedEventRepo
}

func Test_campaignDomain_Create(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Creator1.ID)
	testutil.CreateFixtureDb(ctx, t)
	campaignDomain, feedEventRepo := newCampaignDomainForTest()

	resp, err := campaignDomain.Create(ctx, &model.CreateCampaignRequest{
		Title:              "New campaign",
		GoalAmountUSDCents: 10000,
		BTCAddress:         "bc1-new",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)

	events, err := feedEventRepo.GetList(ctx, []entity.FeedEventType{entity.CampaignCreatedEvent}, 0, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, resp.ID, events[0].CampaignID.String)
}

func Test_campaignDomain_Create_requiresApprovedKYC(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Creator2.ID)
	testutil.CreateFixtureDb(ctx, t)
	campaignDomain, _ := newCampaignDomainForTest()

	_, err := campaignDomain.Create(ctx, &model.CreateCampaignRequest{
		Title:              "Not allowed",
		GoalAmountUSDCents: 10000,
	})
	require.Error(t, err)
	require.Equal(t, errorx.PermissionDenied, err.(errorx.Error).Code)
}

func Test_campaignDomain_Create_rejectsInvalidCategory(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Creator1.ID)
	testutil.CreateFixtureDb(ctx, t)
	campaignDomain, _ := newCampaignDomainForTest()

	_, err := campaignDomain.Create(ctx, &model.CreateCampaignRequest{
		Title:              "New campaign",
		Category:           "gaming",
		GoalAmountUSDCents: 10000,
	})
	require.Error(t, err)
	require.Equal(t, errorx.BadRequest, err.(errorx.Error).Code)
}

func Test_campaignDomain_GetList_filtersByCategory(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(ctx, t)
	campaignDomain, _ := newCampaignDomainForTest()

	resp, err := campaignDomain.GetList(ctx, &model.GetListCampaignRequest{Category: "other"})
	require.NoError(t, err)
	require.Len(t, resp.Campaigns, 1)
	require.Equal(t, testutil.Campaign1.ID, resp.Campaigns[0].ID)

	resp, err = campaignDomain.GetList(ctx, &model.GetListCampaignRequest{Category: "medical"})
	require.NoError(t, err)
	require.Empty(t, resp.Campaigns)
}

func Test_campaignDomain_Get_isCreatorVerified(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(ctx, t)
	campaignDomain, _ := newCampaignDomainForTest()

	resp, err := campaignDomain.Get(ctx, &model.GetCampaignRequest{ID: testutil.Campaign1.ID})
	require.NoError(t, err)
	require.True(t, resp.IsCreatorVerified)
	require.Equal(t, testutil.Creator1.Name, resp.CreatorName)
}

func Test_campaignDomain_Update_emitsDiffEvent(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Creator1.ID)
	testutil.CreateFixtureDb(ctx, t)
	campaignDomain, feedEventRepo := newCampaignDomainForTest()

	newTitle := "Save the whole reef"
	_, err := campaignDomain.Update(ctx, &model.UpdateCampaignRequest{
		ID:    testutil.Campaign1.ID,
		Title: &newTitle,
	})
	require.NoError(t, err)

	events, err := feedEventRepo.GetList(ctx, []entity.FeedEventType{entity.CampaignUpdatedEvent}, 0, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, newTitle, events[0].Metadata["title"])

	resp, err := campaignDomain.Get(ctx, &model.GetCampaignRequest{ID: testutil.Campaign1.ID})
	require.NoError(t, err)
	require.Equal(t, newTitle, resp.Title)
}

func Test_campaignDomain_Update_noChangeEmitsNothing(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Creator1.ID)
	testutil.CreateFixtureDb(ctx, t)
	campaignDomain, feedEventRepo := newCampaignDomainForTest()

	sameTitle := testutil.Campaign1.Title
	_, err := campaignDomain.Update(ctx, &model.UpdateCampaignRequest{
		ID:    testutil.Campaign1.ID,
		Title: &sameTitle,
	})
	require.NoError(t, err)

	events, err := feedEventRepo.GetList(ctx, []entity.FeedEventType{entity.CampaignUpdatedEvent}, 0, 10)
	require.NoError(t, err)
	require.Empty(t, events)
}

func Test_campaignDomain_Update_deniedForNonOwner(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Creator2.ID)
	testutil.CreateFixtureDb(ctx, t)
	campaignDomain, _ := newCampaignDomainForTest()

	newTitle := "Hijack"
	_, err := campaignDomain.Update(ctx, &model.UpdateCampaignRequest{
		ID:    testutil.Campaign1.ID,
		Title: &newTitle,
	})
	require.Error(t, err)
	require.Equal(t, errorx.PermissionDenied, err.(errorx.Error).Code)
}

func Test_campaignDomain_Cancel(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Creator1.ID)
	testutil.CreateFixtureDb(ctx, t)
	campaignDomain, _ := newCampaignDomainForTest()

	_, err := campaignDomain.Cancel(ctx, &model.CancelCampaignRequest{ID: testutil.Campaign1.ID})
	require.NoError(t, err)

	resp, err := campaignDomain.Get(ctx, &model.GetCampaignRequest{ID: testutil.Campaign1.ID})
	require.NoError(t, err)
	require.Equal(t, string(entity.CampaignCancelled), resp.Status)

	// A cancelled campaign cannot be completed.
	_, err = campaignDomain.Complete(ctx, &model.CompleteCampaignRequest{ID: testutil.Campaign1.ID})
	require.Error(t, err)
	require.Equal(t, errorx.BadRequest, err.(errorx.Error).Code)
}

func Test_campaignDomain_GetMyCampaigns_includesCancelled(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Creator1.ID)
	testutil.CreateFixtureDb(ctx, t)
	campaignDomain, _ := newCampaignDomainForTest()

	resp, err := campaignDomain.GetMyCampaigns(ctx, &model.GetMyCampaignsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Campaigns, 2)

	// Public listing hides the cancelled one.
	listResp, err := campaignDomain.GetList(ctx, &model.GetListCampaignRequest{})
	require.NoError(t, err)
	require.Len(t, listResp.Campaigns, 1)
	require.Equal(t, testutil.Campaign1.ID, listResp.Campaigns[0].ID)
}

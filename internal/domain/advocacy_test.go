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

func newAdvocacyDomainForTest(
	emailCaller *testutil.MockEmailCaller,
) (AdvocacyDomain, repository.FeedEventRepository) {
	feedEventRepo := repository.NewFeedEventRepository()
	return NewAdvocacyDomain(
		repository.NewAdvocacyRepository(),
		repository.NewCampaignRepository(),
		repository.NewCreatorRepository(),
		repository.NewAgentRepository(),
		emailCaller,
		feedhub.NewHub(feedEventRepo, testutil.NewMockPublisher()),
	), feedEventRepo
}

func Test_advocacyDomain_Advocate_firstTime(t *testing.T) {
	ctx := testutil.MockContextWithAgentID(t, testutil.Agent1.ID)
	testutil.CreateFixtureDb(ctx, t)
	emailCaller := testutil.NewMockEmailCaller()
	advocacyDomain, feedEventRepo := newAdvocacyDomainForTest(emailCaller)

	_, err := advocacyDomain.Advocate(ctx, &model.AdvocateRequest{
		CampaignID: testutil.Campaign1.ID,
		Statement:  "This reef matters",
	})
	require.NoError(t, err)

	require.Equal(t, 1, emailCaller.Count("advocate"))

	events, err := feedEventRepo.GetList(ctx, []entity.FeedEventType{entity.AdvocacyAddedEvent}, 0, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)

	resp, err := advocacyDomain.GetAdvocacies(ctx, &model.GetAdvocaciesRequest{
		CampaignID: testutil.Campaign1.ID,
	})
	require.NoError(t, err)
	require.Len(t, resp.Advocacies, 1)
	require.Equal(t, testutil.Agent1.Name, resp.Advocacies[0].AgentName)
}

func Test_advocacyDomain_Advocate_statementUpdateEmitsNothing(t *testing.T) {
	ctx := testutil.MockContextWithAgentID(t, testutil.Agent1.ID)
	testutil.CreateFixtureDb(ctx, t)
	emailCaller := testutil.NewMockEmailCaller()
	advocacyDomain, feedEventRepo := newAdvocacyDomainForTest(emailCaller)

	_, err := advocacyDomain.Advocate(ctx, &model.AdvocateRequest{
		CampaignID: testutil.Campaign1.ID,
		Statement:  "First statement",
	})
	require.NoError(t, err)

	_, err = advocacyDomain.Advocate(ctx, &model.AdvocateRequest{
		CampaignID: testutil.Campaign1.ID,
		Statement:  "Refined statement",
	})
	require.NoError(t, err)

	// Still only the first-ever email and event.
	require.Equal(t, 1, emailCaller.Count("advocate"))
	events, err := feedEventRepo.GetList(ctx, []entity.FeedEventType{entity.AdvocacyAddedEvent}, 0, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)

	resp, err := advocacyDomain.GetAdvocacies(ctx, &model.GetAdvocaciesRequest{
		CampaignID: testutil.Campaign1.ID,
	})
	require.NoError(t, err)
	require.Equal(t, "Refined statement", resp.Advocacies[0].Statement)
}

func Test_advocacyDomain_WithdrawAndReactivate(t *testing.T) {
	ctx := testutil.MockContextWithAgentID(t, testutil.Agent1.ID)
	testutil.CreateFixtureDb(ctx, t)
	emailCaller := testutil.NewMockEmailCaller()
	advocacyDomain, feedEventRepo := newAdvocacyDomainForTest(emailCaller)

	_, err := advocacyDomain.Advocate(ctx, &model.AdvocateRequest{
		CampaignID: testutil.Campaign1.ID,
		Statement:  "In",
	})
	require.NoError(t, err)

	_, err = advocacyDomain.Withdraw(ctx, &model.WithdrawAdvocacyRequest{
		CampaignID: testutil.Campaign1.ID,
	})
	require.NoError(t, err)

	// Withdrawing stamps the timestamp on the kept row.
	advocacyRepo := repository.NewAdvocacyRepository()
	advocacy, err := advocacyRepo.Get(ctx, testutil.Campaign1.ID, testutil.Agent1.ID)
	require.NoError(t, err)
	require.True(t, advocacy.WithdrawnAt.Valid)

	// A second withdrawal is rejected.
	_, err = advocacyDomain.Withdraw(ctx, &model.WithdrawAdvocacyRequest{
		CampaignID: testutil.Campaign1.ID,
	})
	require.Error(t, err)
	require.Equal(t, errorx.BadRequest, err.(errorx.Error).Code)

	resp, err := advocacyDomain.GetAdvocacies(ctx, &model.GetAdvocaciesRequest{
		CampaignID: testutil.Campaign1.ID,
	})
	require.NoError(t, err)
	require.Empty(t, resp.Advocacies)

	// Reactivation emits a new event but no second email.
	_, err = advocacyDomain.Advocate(ctx, &model.AdvocateRequest{
		CampaignID: testutil.Campaign1.ID,
		Statement:  "Back in",
	})
	require.NoError(t, err)
	require.Equal(t, 1, emailCaller.Count("advocate"))

	advocacy, err = advocacyRepo.Get(ctx, testutil.Campaign1.ID, testutil.Agent1.ID)
	require.NoError(t, err)
	require.False(t, advocacy.WithdrawnAt.Valid)

	added, err := feedEventRepo.GetList(ctx, []entity.FeedEventType{entity.AdvocacyAddedEvent}, 0, 10)
	require.NoError(t, err)
	require.Len(t, added, 2)

	withdrawn, err := feedEventRepo.GetList(ctx, []entity.FeedEventType{entity.AdvocacyWithdrawnEvent}, 0, 10)
	require.NoError(t, err)
	require.Len(t, withdrawn, 1)
}

func Test_advocacyDomain_Advocate_rejectsInactiveCampaign(t *testing.T) {
	ctx := testutil.MockContextWithAgentID(t, testutil.Agent1.ID)
	testutil.CreateFixtureDb(ctx, t)
	advocacyDomain, _ := newAdvocacyDomainForTest(testutil.NewMockEmailCaller())

	_, err := advocacyDomain.Advocate(ctx, &model.AdvocateRequest{
		CampaignID: testutil.Campaign2.ID,
		Statement:  "Too late",
	})
	require.Error(t, err)
	require.Equal(t, errorx.BadRequest, err.(errorx.Error).Code)
}

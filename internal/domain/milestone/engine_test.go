package milestone

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moltfund/backend/internal/domain/feedhub"
	"github.com/moltfund/backend/internal/entity"
	"github.com/moltfund/backend/internal/repository"
	"github.com/moltfund/backend/internal/testutil"
)

func Test_engine_Check_exactlyOnce(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(ctx, t)

	campaignRepo := repository.NewCampaignRepository()
	feedEventRepo := repository.NewFeedEventRepository()
	emailCaller := testutil.NewMockEmailCaller()
	engine := NewEngine(
		campaignRepo,
		repository.NewCreatorRepository(),
		emailCaller,
		feedhub.NewHub(feedEventRepo, testutil.NewMockPublisher()),
	)

	campaign, err := campaignRepo.GetByID(ctx, testutil.Campaign1.ID)
	require.NoError(t, err)

	// 60% of the goal crosses 25 and 50 in one check.
	campaign.CurrentTotalUSDCents = campaign.GoalAmountUSDCents * 60 / 100
	require.NoError(t, engine.Check(ctx, campaign))
	require.Equal(t, 2, emailCaller.Count("milestone"))
	require.Equal(t, entity.Array[int]{25, 50}, campaign.NotificationMilestonesSent)

	// Re-checking the same total notifies nothing new.
	require.NoError(t, engine.Check(ctx, campaign))
	require.Equal(t, 2, emailCaller.Count("milestone"))

	// The sent set survives a reload.
	reloaded, err := campaignRepo.GetByID(ctx, testutil.Campaign1.ID)
	require.NoError(t, err)
	require.Equal(t, entity.Array[int]{25, 50}, reloaded.NotificationMilestonesSent)

	reloaded.CurrentTotalUSDCents = reloaded.GoalAmountUSDCents
	require.NoError(t, engine.Check(ctx, reloaded))
	require.Equal(t, 4, emailCaller.Count("milestone"))
	require.Equal(t, entity.Array[int]{25, 50, 75, 100}, reloaded.NotificationMilestonesSent)

	events, err := feedEventRepo.GetList(ctx,
		[]entity.FeedEventType{entity.CampaignMilestoneEvent}, 0, 10)
	require.NoError(t, err)
	require.Len(t, events, 4)
}

func Test_engine_Check_staleSnapshotNeverRenotifies(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(ctx, t)

	campaignRepo := repository.NewCampaignRepository()
	emailCaller := testutil.NewMockEmailCaller()
	engine := NewEngine(
		campaignRepo,
		repository.NewCreatorRepository(),
		emailCaller,
		feedhub.NewHub(repository.NewFeedEventRepository(), testutil.NewMockPublisher()),
	)

	// Two overlapping cycles load their own snapshots of the same
	// 30%-funded campaign before either records anything.
	first, err := campaignRepo.GetByID(ctx, testutil.Campaign1.ID)
	require.NoError(t, err)
	first.CurrentTotalUSDCents = first.GoalAmountUSDCents * 30 / 100

	second, err := campaignRepo.GetByID(ctx, testutil.Campaign1.ID)
	require.NoError(t, err)
	second.CurrentTotalUSDCents = second.GoalAmountUSDCents * 30 / 100

	require.NoError(t, engine.Check(ctx, first))
	require.Equal(t, 1, emailCaller.Count("milestone"))

	// The second cycle's stale snapshot must not re-notify 25 nor roll
	// back the recorded set.
	require.NoError(t, engine.Check(ctx, second))
	require.Equal(t, 1, emailCaller.Count("milestone"))

	reloaded, err := campaignRepo.GetByID(ctx, testutil.Campaign1.ID)
	require.NoError(t, err)
	require.Equal(t, entity.Array[int]{25}, reloaded.NotificationMilestonesSent)
}

func Test_engine_Check_retriesAfterEmailFailure(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(ctx, t)

	campaignRepo := repository.NewCampaignRepository()
	emailCaller := testutil.NewMockEmailCaller()
	engine := NewEngine(
		campaignRepo,
		repository.NewCreatorRepository(),
		emailCaller,
		feedhub.NewHub(repository.NewFeedEventRepository(), testutil.NewMockPublisher()),
	)

	campaign, err := campaignRepo.GetByID(ctx, testutil.Campaign1.ID)
	require.NoError(t, err)
	campaign.CurrentTotalUSDCents = campaign.GoalAmountUSDCents * 30 / 100

	// Delivery fails; the threshold must stay unsent.
	emailCaller.Failed = true
	require.NoError(t, engine.Check(ctx, campaign))
	require.Empty(t, campaign.NotificationMilestonesSent)

	// The next check retries and succeeds.
	emailCaller.Failed = false
	require.NoError(t, engine.Check(ctx, campaign))
	require.Equal(t, 1, emailCaller.Count("milestone"))
	require.Equal(t, entity.Array[int]{25}, campaign.NotificationMilestonesSent)
}

func Test_engine_Check_zeroGoal(t *testing.T) {
	ctx := testutil.MockContext(t)
	engine := NewEngine(
		repository.NewCampaignRepository(),
		repository.NewCreatorRepository(),
		testutil.NewMockEmailCaller(),
		feedhub.NewHub(repository.NewFeedEventRepository(), testutil.NewMockPublisher()),
	)

	campaign := &entity.Campaign{Base: entity.Base{ID: "no-goal"}}
	require.NoError(t, engine.Check(ctx, campaign))
	require.Empty(t, campaign.NotificationMilestonesSent)
}

package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moltfund/backend/internal/domain/feedhub"
	"github.com/moltfund/backend/internal/domain/statistic"
	"github.com/moltfund/backend/internal/entity"
	"github.com/moltfund/backend/internal/model"
	"github.com/moltfund/backend/internal/repository"
	"github.com/moltfund/backend/internal/testutil"
	"github.com/moltfund/backend/pkg/errorx"
	"github.com/moltfund/backend/pkg/xcontext"
)

func newWarRoomDomainForTest() WarRoomDomain {
	agentRepo := repository.NewAgentRepository()
	return NewWarRoomDomain(
		repository.NewWarRoomPostRepository(),
		repository.NewUpvoteRepository(),
		agentRepo,
		repository.NewCampaignRepository(),
		feedhub.NewHub(repository.NewFeedEventRepository(), testutil.NewMockPublisher()),
		statistic.New(agentRepo, testutil.NewMockRedisClient()),
	)
}

func agentKarma(ctx context.Context, t *testing.T, agentID string) int64 {
	agent, err := repository.NewAgentRepository().GetByID(ctx, agentID)
	require.NoError(t, err)
	return agent.Karma
}

func Test_warRoomDomain_CreatePost(t *testing.T) {
	ctx := testutil.MockContextWithAgentID(t, testutil.Agent1.ID)
	testutil.CreateFixtureDb(ctx, t)
	warRoomDomain := newWarRoomDomainForTest()

	resp, err := warRoomDomain.CreatePost(ctx, &model.CreateWarRoomPostRequest{
		CampaignID: testutil.Campaign1.ID,
		Content:    "Strategy meeting at dawn",
	})
	require.NoError(t, err)

	reply, err := warRoomDomain.CreatePost(ctx, &model.CreateWarRoomPostRequest{
		CampaignID:   testutil.Campaign1.ID,
		Content:      "Seconded",
		ParentPostID: resp.ID,
	})
	require.NoError(t, err)
	require.NotEmpty(t, reply.ID)

	posts, err := warRoomDomain.GetPosts(ctx, &model.GetWarRoomPostsRequest{
		CampaignID: testutil.Campaign1.ID,
	})
	require.NoError(t, err)
	require.Len(t, posts.Posts, 2)
}

func Test_warRoomDomain_CreatePost_rejectsCrossCampaignParent(t *testing.T) {
	ctx := testutil.MockContextWithAgentID(t, testutil.Agent1.ID)
	testutil.CreateFixtureDb(ctx, t)
	warRoomDomain := newWarRoomDomainForTest()

	resp, err := warRoomDomain.CreatePost(ctx, &model.CreateWarRoomPostRequest{
		CampaignID: testutil.Campaign1.ID,
		Content:    "Original",
	})
	require.NoError(t, err)

	_, err = warRoomDomain.CreatePost(ctx, &model.CreateWarRoomPostRequest{
		CampaignID:   testutil.Campaign2.ID,
		Content:      "Wrong thread",
		ParentPostID: resp.ID,
	})
	require.Error(t, err)
	require.Equal(t, errorx.NotFound, err.(errorx.Error).Code)
}

func Test_warRoomDomain_Upvote_awardsKarmaExactlyOnce(t *testing.T) {
	ctx := testutil.MockContextWithAgentID(t, testutil.Agent1.ID)
	testutil.CreateFixtureDb(ctx, t)
	warRoomDomain := newWarRoomDomainForTest()

	post, err := warRoomDomain.CreatePost(ctx, &model.CreateWarRoomPostRequest{
		CampaignID: testutil.Campaign1.ID,
		Content:    "Upvote me",
	})
	require.NoError(t, err)

	upvoterCtx := xcontext.WithRequestAgentID(ctx, testutil.Agent2.ID)
	req := &model.UpvoteRequest{CampaignID: testutil.Campaign1.ID, PostID: post.ID}

	_, err = warRoomDomain.Upvote(upvoterCtx, req)
	require.NoError(t, err)
	require.EqualValues(t, 1, agentKarma(ctx, t, testutil.Agent1.ID))

	// A second upvote of the same pair changes nothing.
	_, err = warRoomDomain.Upvote(upvoterCtx, req)
	require.NoError(t, err)
	require.EqualValues(t, 1, agentKarma(ctx, t, testutil.Agent1.ID))

	posts, err := warRoomDomain.GetPosts(ctx, &model.GetWarRoomPostsRequest{
		CampaignID: testutil.Campaign1.ID,
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, posts.Posts[0].UpvoteCount)
}

func Test_warRoomDomain_RemoveUpvote_restoresKarma(t *testing.T) {
	ctx := testutil.MockContextWithAgentID(t, testutil.Agent1.ID)
	testutil.CreateFixtureDb(ctx, t)
	warRoomDomain := newWarRoomDomainForTest()

	post, err := warRoomDomain.CreatePost(ctx, &model.CreateWarRoomPostRequest{
		CampaignID: testutil.Campaign1.ID,
		Content:    "Cycle me",
	})
	require.NoError(t, err)

	upvoterCtx := xcontext.WithRequestAgentID(ctx, testutil.Agent2.ID)
	upvoteReq := &model.UpvoteRequest{CampaignID: testutil.Campaign1.ID, PostID: post.ID}
	removeReq := &model.RemoveUpvoteRequest{CampaignID: testutil.Campaign1.ID, PostID: post.ID}

	_, err = warRoomDomain.Upvote(upvoterCtx, upvoteReq)
	require.NoError(t, err)

	_, err = warRoomDomain.RemoveUpvote(upvoterCtx, removeReq)
	require.NoError(t, err)
	require.EqualValues(t, 0, agentKarma(ctx, t, testutil.Agent1.ID))

	// Removing again is a no-op.
	_, err = warRoomDomain.RemoveUpvote(upvoterCtx, removeReq)
	require.NoError(t, err)
	require.EqualValues(t, 0, agentKarma(ctx, t, testutil.Agent1.ID))

	// The pair can be upvoted again after a removal.
	_, err = warRoomDomain.Upvote(upvoterCtx, upvoteReq)
	require.NoError(t, err)
	require.EqualValues(t, 1, agentKarma(ctx, t, testutil.Agent1.ID))
}

func Test_warRoomDomain_events(t *testing.T) {
	ctx := testutil.MockContextWithAgentID(t, testutil.Agent1.ID)
	testutil.CreateFixtureDb(ctx, t)

	feedEventRepo := repository.NewFeedEventRepository()
	agentRepo := repository.NewAgentRepository()
	warRoomDomain := NewWarRoomDomain(
		repository.NewWarRoomPostRepository(),
		repository.NewUpvoteRepository(),
		agentRepo,
		repository.NewCampaignRepository(),
		feedhub.NewHub(feedEventRepo, testutil.NewMockPublisher()),
		statistic.New(agentRepo, testutil.NewMockRedisClient()),
	)

	_, err := warRoomDomain.CreatePost(ctx, &model.CreateWarRoomPostRequest{
		CampaignID: testutil.Campaign1.ID,
		Content:    "Hello",
	})
	require.NoError(t, err)

	events, err := feedEventRepo.GetList(ctx, []entity.FeedEventType{entity.WarRoomPostEvent}, 0, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, testutil.Agent1.ID, events[0].AgentID.String)
	require.Equal(t, testutil.Agent1.Name, events[0].Metadata["agent_name"])
}

package statistic

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moltfund/backend/internal/repository"
	"github.com/moltfund/backend/internal/testutil"
)

func Test_leaderboard_GetKarmaLeaderboard(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(ctx, t)

	agentRepo := repository.NewAgentRepository()
	require.NoError(t, agentRepo.IncreaseKarma(ctx, testutil.Agent1.ID, 5))
	require.NoError(t, agentRepo.IncreaseKarma(ctx, testutil.Agent2.ID, 2))

	board := New(agentRepo, testutil.NewMockRedisClient())

	// The sorted set is rebuilt lazily from the database.
	result, err := board.GetKarmaLeaderboard(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, result, 2)
	require.Equal(t, testutil.Agent1.ID, result[0].AgentID)
	require.EqualValues(t, 5, result[0].Karma)
	require.EqualValues(t, 1, result[0].Rank)
	require.Equal(t, testutil.Agent2.ID, result[1].AgentID)
	require.EqualValues(t, 2, result[1].Rank)
}

func Test_leaderboard_ChangeKarma(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(ctx, t)

	agentRepo := repository.NewAgentRepository()
	board := New(agentRepo, testutil.NewMockRedisClient())

	// Warm the sorted set, then mirror a change into it.
	_, err := board.GetKarmaLeaderboard(ctx, 0, 10)
	require.NoError(t, err)

	require.NoError(t, agentRepo.IncreaseKarma(ctx, testutil.Agent2.ID, 3))
	require.NoError(t, board.ChangeKarma(ctx, testutil.Agent2.ID, 3))

	result, err := board.GetKarmaLeaderboard(ctx, 0, 10)
	require.NoError(t, err)
	require.Equal(t, testutil.Agent2.ID, result[0].AgentID)
	require.EqualValues(t, 3, result[0].Karma)
}

func Test_leaderboard_pagination(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(ctx, t)

	agentRepo := repository.NewAgentRepository()
	require.NoError(t, agentRepo.IncreaseKarma(ctx, testutil.Agent1.ID, 5))

	board := New(agentRepo, testutil.NewMockRedisClient())

	result, err := board.GetKarmaLeaderboard(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Equal(t, testutil.Agent2.ID, result[0].AgentID)
	require.EqualValues(t, 2, result[0].Rank)
}

package statistic

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/moltfund/backend/internal/common"
	"github.com/moltfund/backend/internal/model"
	"github.com/moltfund/backend/internal/repository"
	"github.com/moltfund/backend/pkg/errorx"
	"github.com/moltfund/backend/pkg/xcontext"
	"github.com/moltfund/backend/pkg/xredis"
)

type Leaderboard interface {
	GetKarmaLeaderboard(ctx context.Context, offset, limit int) ([]model.AgentKarma, error)
	ChangeKarma(ctx context.Context, agentID string, delta int64) error
}

// leaderboard keeps agent karma in a redis sorted set, lazily rebuilt from
// the database when the key is missing.
type leaderboard struct {
	agentRepo   repository.AgentRepository
	redisClient xredis.Client
}

func New(agentRepo repository.AgentRepository, redisClient xredis.Client) *leaderboard {
	return &leaderboard{agentRepo: agentRepo, redisClient: redisClient}
}

func (l *leaderboard) GetKarmaLeaderboard(
	ctx context.Context, offset, limit int,
) ([]model.AgentKarma, error) {
	key := common.RedisKeyKarmaLeaderboard

	ok, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return nil, errorx.Unknown
	}

	// If the key didn't exist in redis, load it from database.
	if !ok {
		if err := l.loadFromDB(ctx); err != nil {
			return nil, err
		}
	}

	results, err := l.redisClient.ZRevRangeWithScores(ctx, key, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get revrange redis: %v", err)
		return nil, errorx.Unknown
	}

	agentIDs := []string{}
	for _, z := range results {
		agentIDs = append(agentIDs, z.Member.(string))
	}

	agents, err := l.agentRepo.GetByIDs(ctx, agentIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get agents of leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	names := map[string]string{}
	for _, agent := range agents {
		names[agent.ID] = agent.Name
	}

	board := []model.AgentKarma{}
	for i, z := range results {
		agentID := z.Member.(string)
		board = append(board, model.AgentKarma{
			AgentID: agentID,
			Name:    names[agentID],
			Karma:   int64(z.Score),
			Rank:    uint64(offset + i + 1),
		})
	}

	return board, nil
}

// ChangeKarma mirrors a karma mutation into the sorted set. The database
// row is the source of truth; a failed mirror only delays the leaderboard
// until the key is rebuilt.
func (l *leaderboard) ChangeKarma(ctx context.Context, agentID string, delta int64) error {
	key := common.RedisKeyKarmaLeaderboard

	ok, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		return err
	}

	if !ok {
		return l.loadFromDB(ctx)
	}

	return l.redisClient.ZIncrBy(ctx, key, delta, agentID)
}

func (l *leaderboard) loadFromDB(ctx context.Context) error {
	agents, err := l.agentRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load agents for leaderboard: %v", err)
		return errorx.Unknown
	}

	for _, agent := range agents {
		err := l.redisClient.ZAdd(ctx, common.RedisKeyKarmaLeaderboard, redis.Z{
			Member: agent.ID,
			Score:  float64(agent.Karma),
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot add agent %s to leaderboard: %v", agent.ID, err)
			return errorx.Unknown
		}
	}

	return nil
}

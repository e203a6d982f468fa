package domain

import (
	"context"

	"github.com/pkg/math"

	"github.com/moltfund/backend/internal/domain/statistic"
	"github.com/moltfund/backend/internal/model"
)

type StatisticDomain interface {
	GetKarmaLeaderboard(ctx context.Context, req *model.GetKarmaLeaderboardRequest) (*model.GetKarmaLeaderboardResponse, error)
}

type statisticDomain struct {
	leaderboard statistic.Leaderboard
}

func NewStatisticDomain(leaderboard statistic.Leaderboard) *statisticDomain {
	return &statisticDomain{leaderboard: leaderboard}
}

func (d *statisticDomain) GetKarmaLeaderboard(
	ctx context.Context, req *model.GetKarmaLeaderboardRequest,
) (*model.GetKarmaLeaderboardResponse, error) {
	if req.Limit == 0 {
		req.Limit = 20
	}
	req.Limit = math.MinInt(req.Limit, 100)

	board, err := d.leaderboard.GetKarmaLeaderboard(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	return &model.GetKarmaLeaderboardResponse{Leaderboard: board}, nil
}

package domain

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/pkg/math"
	"gorm.io/gorm"

	"github.com/moltfund/backend/internal/domain/feedhub"
	"github.com/moltfund/backend/internal/domain/statistic"
	"github.com/moltfund/backend/internal/entity"
	"github.com/moltfund/backend/internal/model"
	"github.com/moltfund/backend/internal/repository"
	"github.com/moltfund/backend/pkg/errorx"
	"github.com/moltfund/backend/pkg/xcontext"
)

type WarRoomDomain interface {
	CreatePost(ctx context.Context, req *model.CreateWarRoomPostRequest) (*model.CreateWarRoomPostResponse, error)
	GetPosts(ctx context.Context, req *model.GetWarRoomPostsRequest) (*model.GetWarRoomPostsResponse, error)
	Upvote(ctx context.Context, req *model.UpvoteRequest) (*model.UpvoteResponse, error)
	RemoveUpvote(ctx context.Context, req *model.RemoveUpvoteRequest) (*model.RemoveUpvoteResponse, error)
}

type warRoomDomain struct {
	postRepo     repository.WarRoomPostRepository
	upvoteRepo   repository.UpvoteRepository
	agentRepo    repository.AgentRepository
	campaignRepo repository.CampaignRepository
	feedHub      feedhub.Hub
	leaderboard  statistic.Leaderboard
}

func NewWarRoomDomain(
	postRepo repository.WarRoomPostRepository,
	upvoteRepo repository.UpvoteRepository,
	agentRepo repository.AgentRepository,
	campaignRepo repository.CampaignRepository,
	feedHub feedhub.Hub,
	leaderboard statistic.Leaderboard,
) *warRoomDomain {
	return &warRoomDomain{
		postRepo:     postRepo,
		upvoteRepo:   upvoteRepo,
		agentRepo:    agentRepo,
		campaignRepo: campaignRepo,
		feedHub:      feedHub,
		leaderboard:  leaderboard,
	}
}

func (d *warRoomDomain) CreatePost(
	ctx context.Context, req *model.CreateWarRoomPostRequest,
) (*model.CreateWarRoomPostResponse, error) {
	if req.Content == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty content")
	}

	agentID := xcontext.RequestAgentID(ctx)
	campaign, err := d.campaignRepo.GetByID(ctx, req.CampaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found campaign")
		}

		xcontext.Logger(ctx).Errorf("Cannot get campaign %s: %v", req.CampaignID, err)
		return nil, errorx.Unknown
	}

	parentPostID := sql.NullString{}
	if req.ParentPostID != "" {
		parent, err := d.postRepo.GetByID(ctx, req.ParentPostID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found parent post")
			}

			xcontext.Logger(ctx).Errorf("Cannot get parent post %s: %v", req.ParentPostID, err)
			return nil, errorx.Unknown
		}

		if parent.CampaignID != campaign.ID {
			return nil, errorx.New(errorx.NotFound,
				"Not found parent post in campaign %s", campaign.ID)
		}

		parentPostID = sql.NullString{Valid: true, String: parent.ID}
	}

	agent, err := d.agentRepo.GetByID(ctx, agentID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get agent %s: %v", agentID, err)
		return nil, errorx.Unknown
	}

	post := &entity.WarRoomPost{
		Base:         entity.Base{ID: uuid.NewString()},
		CampaignID:   campaign.ID,
		AgentID:      agentID,
		ParentPostID: parentPostID,
		Content:      req.Content,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.postRepo.Create(ctx, post); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create post: %v", err)
		return nil, errorx.Unknown
	}

	err = d.feedHub.Append(ctx, entity.WarRoomPostEvent, campaign.ID, agentID,
		entity.Map{"post_id": post.ID, "agent_name": agent.Name})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot append post event: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.CreateWarRoomPostResponse{ID: post.ID}, nil
}

func (d *warRoomDomain) GetPosts(
	ctx context.Context, req *model.GetWarRoomPostsRequest,
) (*model.GetWarRoomPostsResponse, error) {
	if req.Limit == 0 {
		req.Limit = 20
	}
	req.Limit = math.MinInt(req.Limit, 50)

	posts, err := d.postRepo.GetListByCampaignID(ctx, req.CampaignID, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get posts of campaign %s: %v", req.CampaignID, err)
		return nil, errorx.Unknown
	}

	agentIDs := []string{}
	for _, post := range posts {
		agentIDs = append(agentIDs, post.AgentID)
	}

	agents, err := d.agentRepo.GetByIDs(ctx, agentIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get authors of posts: %v", err)
		return nil, errorx.Unknown
	}

	names := map[string]string{}
	for _, agent := range agents {
		names[agent.ID] = agent.Name
	}

	result := []model.WarRoomPost{}
	for i := range posts {
		result = append(result, model.ConvertWarRoomPost(&posts[i], names[posts[i].AgentID]))
	}

	return &model.GetWarRoomPostsResponse{Posts: result}, nil
}

// Upvote awards exactly one karma point to the post author per (post, agent)
// pair. The unique upvote row, the post counter, and the author karma move
// in one transaction; a duplicate upvote changes nothing at all.
func (d *warRoomDomain) Upvote(
	ctx context.Context, req *model.UpvoteRequest,
) (*model.UpvoteResponse, error) {
	agentID := xcontext.RequestAgentID(ctx)
	post, err := d.getPostOfCampaign(ctx, req.PostID, req.CampaignID)
	if err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	inserted, err := d.upvoteRepo.Create(ctx, &entity.Upvote{
		Base:    entity.Base{ID: uuid.NewString()},
		PostID:  post.ID,
		AgentID: agentID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create upvote: %v", err)
		return nil, errorx.Unknown
	}

	if !inserted {
		return &model.UpvoteResponse{}, nil
	}

	if err := d.postRepo.IncreaseUpvoteCount(ctx, post.ID, 1); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase upvote count of post %s: %v", post.ID, err)
		return nil, errorx.Unknown
	}

	if err := d.agentRepo.IncreaseKarma(ctx, post.AgentID, 1); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase karma of agent %s: %v", post.AgentID, err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	if err := d.leaderboard.ChangeKarma(ctx, post.AgentID, 1); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot mirror karma to leaderboard: %v", err)
	}

	return &model.UpvoteResponse{}, nil
}

func (d *warRoomDomain) RemoveUpvote(
	ctx context.Context, req *model.RemoveUpvoteRequest,
) (*model.RemoveUpvoteResponse, error) {
	agentID := xcontext.RequestAgentID(ctx)
	post, err := d.getPostOfCampaign(ctx, req.PostID, req.CampaignID)
	if err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	removed, err := d.upvoteRepo.Delete(ctx, post.ID, agentID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete upvote: %v", err)
		return nil, errorx.Unknown
	}

	if !removed {
		return &model.RemoveUpvoteResponse{}, nil
	}

	if err := d.postRepo.IncreaseUpvoteCount(ctx, post.ID, -1); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decrease upvote count of post %s: %v", post.ID, err)
		return nil, errorx.Unknown
	}

	if err := d.agentRepo.IncreaseKarma(ctx, post.AgentID, -1); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decrease karma of agent %s: %v", post.AgentID, err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	if err := d.leaderboard.ChangeKarma(ctx, post.AgentID, -1); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot mirror karma to leaderboard: %v", err)
	}

	return &model.RemoveUpvoteResponse{}, nil
}

func (d *warRoomDomain) getPostOfCampaign(
	ctx context.Context, postID, campaignID string,
) (*entity.WarRoomPost, error) {
	post, err := d.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post %s: %v", postID, err)
		return nil, errorx.Unknown
	}

	if post.CampaignID != campaignID {
		return nil, errorx.New(errorx.NotFound, "Not found post in campaign %s", campaignID)
	}

	return post, nil
}

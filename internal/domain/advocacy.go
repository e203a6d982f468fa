package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/moltfund/backend/internal/client"
	"github.com/moltfund/backend/internal/domain/feedhub"
	"github.com/moltfund/backend/internal/entity"
	"github.com/moltfund/backend/internal/model"
	"github.com/moltfund/backend/internal/repository"
	"github.com/moltfund/backend/pkg/errorx"
	"github.com/moltfund/backend/pkg/xcontext"
)

type AdvocacyDomain interface {
	Advocate(ctx context.Context, req *model.AdvocateRequest) (*model.AdvocateResponse, error)
	Withdraw(ctx context.Context, req *model.WithdrawAdvocacyRequest) (*model.WithdrawAdvocacyResponse, error)
	GetAdvocacies(ctx context.Context, req *model.GetAdvocaciesRequest) (*model.GetAdvocaciesResponse, error)
}

type advocacyDomain struct {
	advocacyRepo repository.AdvocacyRepository
	campaignRepo repository.CampaignRepository
	creatorRepo  repository.CreatorRepository
	agentRepo    repository.AgentRepository
	emailCaller  client.EmailNotifierCaller
	feedHub      feedhub.Hub
}

func NewAdvocacyDomain(
	advocacyRepo repository.AdvocacyRepository,
	campaignRepo repository.CampaignRepository,
	creatorRepo repository.CreatorRepository,
	agentRepo repository.AgentRepository,
	emailCaller client.EmailNotifierCaller,
	feedHub feedhub.Hub,
) *advocacyDomain {
	return &advocacyDomain{
		advocacyRepo: advocacyRepo,
		campaignRepo: campaignRepo,
		creatorRepo:  creatorRepo,
		agentRepo:    agentRepo,
		emailCaller:  emailCaller,
		feedHub:      feedHub,
	}
}

// Advocate declares or refreshes the agent's support of a campaign. The
// creator is emailed only on the first-ever advocacy of this pair; a
// reactivation emits a feed event without the email, and updating the
// statement of an already active advocacy emits nothing.
func (d *advocacyDomain) Advocate(
	ctx context.Context, req *model.AdvocateRequest,
) (*model.AdvocateResponse, error) {
	agentID := xcontext.RequestAgentID(ctx)
	campaign, err := d.getActiveCampaign(ctx, req.CampaignID)
	if err != nil {
		return nil, err
	}

	agent, err := d.agentRepo.GetByID(ctx, agentID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get agent %s: %v", agentID, err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	advocacy, err := d.advocacyRepo.Get(ctx, campaign.ID, agentID)
	switch {
	case err == nil:
		wasActive := advocacy.IsActive
		err := d.advocacyRepo.Update(ctx, advocacy.ID, req.Statement, true)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update advocacy: %v", err)
			return nil, errorx.Unknown
		}

		if !wasActive {
			err = d.feedHub.Append(ctx, entity.AdvocacyAddedEvent, campaign.ID, agentID,
				entity.Map{"agent_name": agent.Name, "title": campaign.Title})
			if err != nil {
				xcontext.Logger(ctx).Errorf("Cannot append advocacy event: %v", err)
				return nil, errorx.Unknown
			}
		}

	case errors.Is(err, gorm.ErrRecordNotFound):
		err := d.advocacyRepo.Create(ctx, &entity.Advocacy{
			Base:       entity.Base{ID: uuid.NewString()},
			CampaignID: campaign.ID,
			AgentID:    agentID,
			IsActive:   true,
			Statement:  req.Statement,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create advocacy: %v", err)
			return nil, errorx.Unknown
		}

		err = d.feedHub.Append(ctx, entity.AdvocacyAddedEvent, campaign.ID, agentID,
			entity.Map{"agent_name": agent.Name, "title": campaign.Title})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot append advocacy event: %v", err)
			return nil, errorx.Unknown
		}

		// Best effort; the advocacy stands even if the email bounces.
		creator, err := d.creatorRepo.GetByID(ctx, campaign.CreatorID)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot get creator of campaign %s: %v", campaign.ID, err)
		} else {
			err := d.emailCaller.SendNewAdvocateNotification(
				ctx, creator.Email, agent.Name, campaign.Title)
			if err != nil {
				xcontext.Logger(ctx).Warnf("Cannot send advocate email: %v", err)
			}
		}

	default:
		xcontext.Logger(ctx).Errorf("Cannot get advocacy: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.AdvocateResponse{}, nil
}

func (d *advocacyDomain) Withdraw(
	ctx context.Context, req *model.WithdrawAdvocacyRequest,
) (*model.WithdrawAdvocacyResponse, error) {
	agentID := xcontext.RequestAgentID(ctx)
	advocacy, err := d.advocacyRepo.Get(ctx, req.CampaignID, agentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found advocacy")
		}

		xcontext.Logger(ctx).Errorf("Cannot get advocacy: %v", err)
		return nil, errorx.Unknown
	}

	if !advocacy.IsActive {
		return nil, errorx.New(errorx.BadRequest, "The advocacy was already withdrawn")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.advocacyRepo.Update(ctx, advocacy.ID, advocacy.Statement, false); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot withdraw advocacy: %v", err)
		return nil, errorx.Unknown
	}

	err = d.feedHub.Append(ctx, entity.AdvocacyWithdrawnEvent, req.CampaignID, agentID, nil)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot append withdrawal event: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.WithdrawAdvocacyResponse{}, nil
}

func (d *advocacyDomain) GetAdvocacies(
	ctx context.Context, req *model.GetAdvocaciesRequest,
) (*model.GetAdvocaciesResponse, error) {
	advocacies, err := d.advocacyRepo.GetActiveByCampaignID(ctx, req.CampaignID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get advocacies of campaign %s: %v", req.CampaignID, err)
		return nil, errorx.Unknown
	}

	agentIDs := []string{}
	for _, advocacy := range advocacies {
		agentIDs = append(agentIDs, advocacy.AgentID)
	}

	agents, err := d.agentRepo.GetByIDs(ctx, agentIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get agents of advocacies: %v", err)
		return nil, errorx.Unknown
	}

	names := map[string]string{}
	for _, agent := range agents {
		names[agent.ID] = agent.Name
	}

	result := []model.Advocacy{}
	for i := range advocacies {
		result = append(result,
			model.ConvertAdvocacy(&advocacies[i], names[advocacies[i].AgentID]))
	}

	return &model.GetAdvocaciesResponse{Advocacies: result}, nil
}

func (d *advocacyDomain) getActiveCampaign(
	ctx context.Context, campaignID string,
) (*entity.Campaign, error) {
	campaign, err := d.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found campaign")
		}

		xcontext.Logger(ctx).Errorf("Cannot get campaign %s: %v", campaignID, err)
		return nil, errorx.Unknown
	}

	if campaign.Status != entity.CampaignActive {
		return nil, errorx.New(errorx.BadRequest, "The campaign is not active")
	}

	return campaign, nil
}

package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pkg/math"
	"gorm.io/gorm"

	"github.com/moltfund/backend/internal/domain/feedhub"
	"github.com/moltfund/backend/internal/entity"
	"github.com/moltfund/backend/internal/model"
	"github.com/moltfund/backend/internal/repository"
	"github.com/moltfund/backend/pkg/enum"
	"github.com/moltfund/backend/pkg/errorx"
	"github.com/moltfund/backend/pkg/xcontext"
)

type CampaignDomain interface {
	Create(ctx context.Context, req *model.CreateCampaignRequest) (*model.CreateCampaignResponse, error)
	Get(ctx context.Context, req *model.GetCampaignRequest) (*model.GetCampaignResponse, error)
	GetList(ctx context.Context, req *model.GetListCampaignRequest) (*model.GetListCampaignResponse, error)
	GetMyCampaigns(ctx context.Context, req *model.GetMyCampaignsRequest) (*model.GetMyCampaignsResponse, error)
	Update(ctx context.Context, req *model.UpdateCampaignRequest) (*model.UpdateCampaignResponse, error)
	Cancel(ctx context.Context, req *model.CancelCampaignRequest) (*model.CancelCampaignResponse, error)
	Complete(ctx context.Context, req *model.CompleteCampaignRequest) (*model.CompleteCampaignResponse, error)
}

type campaignDomain struct {
	campaignRepo repository.CampaignRepository
	creatorRepo  repository.CreatorRepository
	donationRepo repository.DonationRepository
	feedHub      feedhub.Hub
}

func NewCampaignDomain(
	campaignRepo repository.CampaignRepository,
	creatorRepo repository.CreatorRepository,
	donationRepo repository.DonationRepository,
	feedHub feedhub.Hub,
) *campaignDomain {
	return &campaignDomain{
		campaignRepo: campaignRepo,
		creatorRepo:  creatorRepo,
		donationRepo: donationRepo,
		feedHub:      feedHub,
	}
}

func (d *campaignDomain) Create(
	ctx context.Context, req *model.CreateCampaignRequest,
) (*model.CreateCampaignResponse, error) {
	creatorID := xcontext.RequestUserID(ctx)
	creator, err := d.creatorRepo.GetByID(ctx, creatorID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get creator %s: %v", creatorID, err)
		return nil, errorx.Unknown
	}

	if xcontext.Configs(ctx).Campaign.RequireApprovedKYC &&
		creator.KYCStatus != entity.KYCApproved {
		return nil, errorx.New(errorx.PermissionDenied,
			"Only creators with approved KYC can create a campaign")
	}

	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty title")
	}

	if req.GoalAmountUSDCents <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Goal amount must be positive")
	}

	category := entity.CampaignOther
	if req.Category != "" {
		category, err = enum.ToEnum[entity.CampaignCategory](req.Category)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid category %s", req.Category)
		}
	}

	campaign := &entity.Campaign{
		Base:                       entity.Base{ID: uuid.NewString()},
		CreatorID:                  creatorID,
		Title:                      req.Title,
		Description:                req.Description,
		ImageURL:                   req.ImageURL,
		Category:                   category,
		ContactEmail:               req.ContactEmail,
		GoalAmountUSDCents:         req.GoalAmountUSDCents,
		BTCAddress:                 req.BTCAddress,
		ETHAddress:                 req.ETHAddress,
		SOLAddress:                 req.SOLAddress,
		USDCBaseAddress:            req.USDCBaseAddress,
		Status:                     entity.CampaignActive,
		NotificationMilestonesSent: entity.Array[int]{},
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.campaignRepo.Create(ctx, campaign); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create campaign: %v", err)
		return nil, errorx.Unknown
	}

	err = d.feedHub.Append(ctx, entity.CampaignCreatedEvent, campaign.ID, "",
		entity.Map{"title": campaign.Title})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot append campaign created event: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.CreateCampaignResponse{ID: campaign.ID}, nil
}

func (d *campaignDomain) Get(
	ctx context.Context, req *model.GetCampaignRequest,
) (*model.GetCampaignResponse, error) {
	campaign, err := d.campaignRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found campaign")
		}

		xcontext.Logger(ctx).Errorf("Cannot get campaign %s: %v", req.ID, err)
		return nil, errorx.Unknown
	}

	resp := model.GetCampaignResponse(d.convertCampaign(ctx, campaign))
	return &resp, nil
}

func (d *campaignDomain) GetList(
	ctx context.Context, req *model.GetListCampaignRequest,
) (*model.GetListCampaignResponse, error) {
	if req.Limit == 0 {
		req.Limit = 20
	}
	req.Limit = math.MinInt(req.Limit, 50)

	// The public listing defaults to active campaigns.
	filter := repository.CampaignFilter{
		Q:      req.Q,
		Status: []entity.CampaignStatus{entity.CampaignActive},
	}
	if req.Status != "" {
		status, err := enum.ToEnum[entity.CampaignStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Status)
		}

		filter.Status = []entity.CampaignStatus{status}
	}

	if req.Category != "" {
		category, err := enum.ToEnum[entity.CampaignCategory](req.Category)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid category %s", req.Category)
		}

		filter.Category = category
	}

	campaigns, err := d.campaignRepo.GetList(ctx, &filter, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get campaigns: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Campaign{}
	for i := range campaigns {
		result = append(result, d.convertCampaign(ctx, &campaigns[i]))
	}

	return &model.GetListCampaignResponse{Campaigns: result}, nil
}

// GetMyCampaigns returns every campaign of the requesting creator,
// cancelled ones included.
func (d *campaignDomain) GetMyCampaigns(
	ctx context.Context, req *model.GetMyCampaignsRequest,
) (*model.GetMyCampaignsResponse, error) {
	creatorID := xcontext.RequestUserID(ctx)
	campaigns, err := d.campaignRepo.GetByCreatorID(ctx, creatorID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get campaigns of creator %s: %v", creatorID, err)
		return nil, errorx.Unknown
	}

	result := []model.Campaign{}
	for i := range campaigns {
		result = append(result, d.convertCampaign(ctx, &campaigns[i]))
	}

	return &model.GetMyCampaignsResponse{Campaigns: result}, nil
}

// Update applies a field-level patch. When nothing actually changes, no
// event is emitted; otherwise exactly one event carries the changed fields
// and their new values.
func (d *campaignDomain) Update(
	ctx context.Context, req *model.UpdateCampaignRequest,
) (*model.UpdateCampaignResponse, error) {
	campaign, err := d.getOwnedCampaign(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if campaign.Status != entity.CampaignActive {
		return nil, errorx.New(errorx.BadRequest, "Only active campaigns can be updated")
	}

	changes := map[string]any{}
	diffString := func(column string, old string, new *string) {
		if new != nil && *new != old {
			changes[column] = *new
		}
	}

	diffString("title", campaign.Title, req.Title)
	diffString("description", campaign.Description, req.Description)
	diffString("image_url", campaign.ImageURL, req.ImageURL)
	diffString("contact_email", campaign.ContactEmail, req.ContactEmail)

	if req.Category != nil && *req.Category != string(campaign.Category) {
		category, err := enum.ToEnum[entity.CampaignCategory](*req.Category)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid category %s", *req.Category)
		}

		changes["category"] = category
	}
	diffString("btc_address", campaign.BTCAddress, req.BTCAddress)
	diffString("eth_address", campaign.ETHAddress, req.ETHAddress)
	diffString("sol_address", campaign.SOLAddress, req.SOLAddress)
	diffString("usdc_base_address", campaign.USDCBaseAddress, req.USDCBaseAddress)

	if req.GoalAmountUSDCents != nil && *req.GoalAmountUSDCents != campaign.GoalAmountUSDCents {
		if *req.GoalAmountUSDCents <= 0 {
			return nil, errorx.New(errorx.BadRequest, "Goal amount must be positive")
		}

		changes["goal_amount_usd_cents"] = *req.GoalAmountUSDCents
	}

	if len(changes) == 0 {
		return &model.UpdateCampaignResponse{}, nil
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.campaignRepo.Update(ctx, campaign.ID, changes); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update campaign %s: %v", campaign.ID, err)
		return nil, errorx.Unknown
	}

	err = d.feedHub.Append(ctx, entity.CampaignUpdatedEvent, campaign.ID, "", entity.Map(changes))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot append campaign updated event: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.UpdateCampaignResponse{}, nil
}

func (d *campaignDomain) Cancel(
	ctx context.Context, req *model.CancelCampaignRequest,
) (*model.CancelCampaignResponse, error) {
	if err := d.transition(ctx, req.ID, entity.CampaignCancelled); err != nil {
		return nil, err
	}

	return &model.CancelCampaignResponse{}, nil
}

func (d *campaignDomain) Complete(
	ctx context.Context, req *model.CompleteCampaignRequest,
) (*model.CompleteCampaignResponse, error) {
	if err := d.transition(ctx, req.ID, entity.CampaignCompleted); err != nil {
		return nil, err
	}

	return &model.CompleteCampaignResponse{}, nil
}

// transition moves the campaign out of ACTIVE. Both targets are terminal;
// no other transition exists.
func (d *campaignDomain) transition(
	ctx context.Context, campaignID string, to entity.CampaignStatus,
) error {
	campaign, err := d.getOwnedCampaign(ctx, campaignID)
	if err != nil {
		return err
	}

	err = d.campaignRepo.UpdateStatus(ctx, campaign.ID, entity.CampaignActive, to)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.BadRequest,
				"Cannot change a %s campaign to %s", campaign.Status, to)
		}

		xcontext.Logger(ctx).Errorf("Cannot change status of campaign %s: %v", campaign.ID, err)
		return errorx.Unknown
	}

	return nil
}

func (d *campaignDomain) getOwnedCampaign(
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

	if campaign.CreatorID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	return campaign, nil
}

func (d *campaignDomain) convertCampaign(
	ctx context.Context, campaign *entity.Campaign,
) model.Campaign {
	creator, err := d.creatorRepo.GetByID(ctx, campaign.CreatorID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get creator of campaign %s: %v", campaign.ID, err)
	}

	donationCount, err := d.donationRepo.Count(ctx, campaign.ID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot count donations of campaign %s: %v", campaign.ID, err)
	}

	donorCount, err := d.donationRepo.CountDistinctDonors(ctx, campaign.ID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot count donors of campaign %s: %v", campaign.ID, err)
	}

	return model.ConvertCampaign(campaign, creator, donationCount, donorCount)
}

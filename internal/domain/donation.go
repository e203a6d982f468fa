package domain

import (
	"context"

	"github.com/pkg/math"

	"github.com/moltfund/backend/internal/domain/priceoracle"
	"github.com/moltfund/backend/internal/model"
	"github.com/moltfund/backend/internal/repository"
	"github.com/moltfund/backend/pkg/errorx"
	"github.com/moltfund/backend/pkg/xcontext"
)

type DonationDomain interface {
	GetDonations(ctx context.Context, req *model.GetDonationsRequest) (*model.GetDonationsResponse, error)
	GetPrices(ctx context.Context, req *model.GetPricesRequest) (*model.GetPricesResponse, error)
}

type donationDomain struct {
	donationRepo repository.DonationRepository
	oracle       priceoracle.Oracle
}

func NewDonationDomain(
	donationRepo repository.DonationRepository,
	oracle priceoracle.Oracle,
) *donationDomain {
	return &donationDomain{donationRepo: donationRepo, oracle: oracle}
}

func (d *donationDomain) GetDonations(
	ctx context.Context, req *model.GetDonationsRequest,
) (*model.GetDonationsResponse, error) {
	if req.Limit == 0 {
		req.Limit = 20
	}
	req.Limit = math.MinInt(req.Limit, 50)

	donations, err := d.donationRepo.GetList(ctx, req.CampaignID, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get donations of campaign %s: %v", req.CampaignID, err)
		return nil, errorx.Unknown
	}

	donationCount, err := d.donationRepo.Count(ctx, req.CampaignID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count donations of campaign %s: %v", req.CampaignID, err)
		return nil, errorx.Unknown
	}

	donorCount, err := d.donationRepo.CountDistinctDonors(ctx, req.CampaignID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count donors of campaign %s: %v", req.CampaignID, err)
		return nil, errorx.Unknown
	}

	result := []model.Donation{}
	for i := range donations {
		result = append(result, model.ConvertDonation(&donations[i]))
	}

	return &model.GetDonationsResponse{
		Donations:     result,
		DonationCount: donationCount,
		DonorCount:    donorCount,
	}, nil
}

func (d *donationDomain) GetPrices(
	ctx context.Context, req *model.GetPricesRequest,
) (*model.GetPricesResponse, error) {
	prices, err := d.oracle.GetPrices(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get prices: %v", err)
		return nil, err
	}

	return &model.GetPricesResponse{Prices: prices}, nil
}

package cron

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/moltfund/backend/internal/client"
	"github.com/moltfund/backend/internal/common"
	"github.com/moltfund/backend/internal/domain/feedhub"
	"github.com/moltfund/backend/internal/domain/milestone"
	"github.com/moltfund/backend/internal/domain/priceoracle"
	"github.com/moltfund/backend/internal/entity"
	"github.com/moltfund/backend/internal/repository"
	"github.com/moltfund/backend/pkg/xcontext"
)

// Smallest-unit factor per chain.
var chainUnits = map[entity.Chain]float64{
	entity.ChainBTC:      1e8,
	entity.ChainETH:      1e18,
	entity.ChainSOL:      1e9,
	entity.ChainUSDCBase: 1e6,
}

// BalancePollerCronJob reconciles on-chain transfers into the donation
// ledger. Every write it performs is idempotent, so an interrupted or
// overlapping cycle never corrupts state; the next tick redoes unfinished
// work.
type BalancePollerCronJob struct {
	interval        time.Duration
	campaignRepo    repository.CampaignRepository
	donationRepo    repository.DonationRepository
	transferCaller  client.TransferFetcherCaller
	oracle          priceoracle.Oracle
	milestoneEngine milestone.Engine
	feedHub         feedhub.Hub
}

func NewBalancePollerCronJob(
	interval time.Duration,
	campaignRepo repository.CampaignRepository,
	donationRepo repository.DonationRepository,
	transferCaller client.TransferFetcherCaller,
	oracle priceoracle.Oracle,
	milestoneEngine milestone.Engine,
	feedHub feedhub.Hub,
) *BalancePollerCronJob {
	return &BalancePollerCronJob{
		interval:        interval,
		campaignRepo:    campaignRepo,
		donationRepo:    donationRepo,
		transferCaller:  transferCaller,
		oracle:          oracle,
		milestoneEngine: milestoneEngine,
		feedHub:         feedHub,
	}
}

func (job *BalancePollerCronJob) Do(ctx context.Context) {
	campaigns, err := job.campaignRepo.GetActive(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get active campaigns: %v", err)
		return
	}

	// Campaigns are independent; poll them in parallel and contain every
	// failure to its own campaign.
	var wait sync.WaitGroup
	for i := range campaigns {
		campaign := campaigns[i]
		wait.Add(1)
		go func() {
			defer wait.Done()
			job.pollCampaign(ctx, &campaign)
		}()
	}

	wait.Wait()
}

func (job *BalancePollerCronJob) pollCampaign(ctx context.Context, campaign *entity.Campaign) {
	addresses := map[entity.Chain]string{
		entity.ChainBTC:      campaign.BTCAddress,
		entity.ChainETH:      campaign.ETHAddress,
		entity.ChainSOL:      campaign.SOLAddress,
		entity.ChainUSDCBase: campaign.USDCBaseAddress,
	}

	limit := xcontext.Configs(ctx).Poller.PageLimit
	for chain, address := range addresses {
		if address == "" {
			continue
		}

		transfers, err := job.transferCaller.GetConfirmedTransfers(ctx, chain, address, limit)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot fetch %s transfers of campaign %s: %v",
				chain, campaign.ID, err)
			common.PromCounters[common.PollerCampaignFailure].
				WithLabelValues(string(chain)).Inc()
			continue
		}

		for _, transfer := range transfers {
			price, err := job.oracle.GetPrice(ctx, string(chain))
			if err != nil {
				xcontext.Logger(ctx).Warnf("No %s price, campaign %s postponed: %v",
					chain, campaign.ID, err)
				common.PromCounters[common.PollerCampaignFailure].
					WithLabelValues(string(chain)).Inc()
				break
			}

			usdCents := int64(math.Round(
				float64(transfer.AmountSmallestUnit) / chainUnits[chain] * price * 100))

			job.recordDonation(ctx, &entity.Donation{
				Base:               entity.Base{ID: uuid.NewString()},
				CampaignID:         campaign.ID,
				Chain:              chain,
				TxHash:             transfer.TxHash,
				AmountSmallestUnit: transfer.AmountSmallestUnit,
				AmountUSDCents:     usdCents,
				FromAddress:        transfer.FromAddress,
				BlockNumber:        transfer.BlockNumber,
				ConfirmedAt:        transfer.ConfirmedAt,
			})
		}
	}

	// The total is always recomputed from the ledger, never incremented,
	// so replays and partial cycles converge to the same value.
	total, err := job.donationRepo.SumUSDCents(ctx, campaign.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot sum donations of campaign %s: %v", campaign.ID, err)
		return
	}

	if err := job.campaignRepo.UpdateTotal(ctx, campaign.ID, total); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update total of campaign %s: %v", campaign.ID, err)
		return
	}

	campaign.CurrentTotalUSDCents = total
	if err := job.milestoneEngine.Check(ctx, campaign); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check milestones of campaign %s: %v", campaign.ID, err)
	}
}

// recordDonation writes one donation and its feed event in a single
// transaction. A replayed transfer inserts nothing and emits nothing.
func (job *BalancePollerCronJob) recordDonation(ctx context.Context, donation *entity.Donation) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	inserted, err := job.donationRepo.Create(ctx, donation)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot record donation %s of campaign %s: %v",
			donation.TxHash, donation.CampaignID, err)
		return
	}

	if !inserted {
		return
	}

	err = job.feedHub.Append(ctx, entity.DonationReceivedEvent, donation.CampaignID, "",
		entity.Map{
			"chain":            string(donation.Chain),
			"tx_hash":          donation.TxHash,
			"amount_usd_cents": donation.AmountUSDCents,
			"from_address":     donation.FromAddress,
		})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot append donation feed event of campaign %s: %v",
			donation.CampaignID, err)
		return
	}

	xcontext.WithCommitDBTransaction(ctx)
}

func (job *BalancePollerCronJob) RunNow() bool {
	return true
}

func (job *BalancePollerCronJob) Next() time.Time {
	return time.Now().Add(job.interval)
}

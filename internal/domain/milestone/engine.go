package milestone

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"

	"github.com/moltfund/backend/internal/client"
	"github.com/moltfund/backend/internal/domain/feedhub"
	"github.com/moltfund/backend/internal/entity"
	"github.com/moltfund/backend/internal/repository"
	"github.com/moltfund/backend/pkg/xcontext"
)

// Thresholds are evaluated in ascending order, so a campaign jumping several
// thresholds in one poll still notifies in the natural funding order.
var Thresholds = []int{25, 50, 75, 100}

type Engine interface {
	Check(ctx context.Context, campaign *entity.Campaign) error
}

type engine struct {
	campaignRepo repository.CampaignRepository
	creatorRepo  repository.CreatorRepository
	emailCaller  client.EmailNotifierCaller
	feedHub      feedhub.Hub
}

func NewEngine(
	campaignRepo repository.CampaignRepository,
	creatorRepo repository.CreatorRepository,
	emailCaller client.EmailNotifierCaller,
	feedHub feedhub.Hub,
) *engine {
	return &engine{
		campaignRepo: campaignRepo,
		creatorRepo:  creatorRepo,
		emailCaller:  emailCaller,
		feedHub:      feedHub,
	}
}

// Check notifies every threshold the campaign has crossed but not yet been
// notified for. A threshold is added to the sent-set only after its email
// went out, so a failed delivery is retried on the next check and a
// recorded threshold is never notified twice. The sent-set is always
// re-read from storage and persisted with a compare-and-set update;
// overlapping cycles holding stale snapshots cannot roll back a recorded
// threshold.
func (e *engine) Check(ctx context.Context, campaign *entity.Campaign) error {
	if campaign.GoalAmountUSDCents <= 0 {
		return nil
	}

	percent := int(campaign.CurrentTotalUSDCents * 100 / campaign.GoalAmountUSDCents)

	creator, err := e.creatorRepo.GetByID(ctx, campaign.CreatorID)
	if err != nil {
		return fmt.Errorf("cannot get creator of campaign %s: %w", campaign.ID, err)
	}

	sent, err := e.reloadSent(ctx, campaign.ID)
	if err != nil {
		return err
	}

	for _, threshold := range Thresholds {
		if percent < threshold || slices.Contains(sent, threshold) {
			continue
		}

		err := e.emailCaller.SendCampaignMilestone(ctx, creator.Email, campaign.Title, threshold)
		if err != nil {
			// Leave the threshold unsent; the next check retries it.
			xcontext.Logger(ctx).Errorf(
				"Cannot send milestone %d email of campaign %s: %v",
				threshold, campaign.ID, err)
			continue
		}

		sent, err = e.record(ctx, campaign.ID, sent, threshold)
		if err != nil {
			return err
		}

		campaign.NotificationMilestonesSent = sent

		err = e.feedHub.Append(ctx, entity.CampaignMilestoneEvent, campaign.ID, "",
			entity.Map{"milestone_percent": threshold, "title": campaign.Title})
		if err != nil {
			xcontext.Logger(ctx).Errorf(
				"Cannot append milestone feed event of campaign %s: %v", campaign.ID, err)
		}
	}

	return nil
}

// record appends the threshold to the stored sent-set. On a lost
// compare-and-set race it adopts the concurrent cycle's set and retries
// once, so a recorded threshold is never overwritten away.
func (e *engine) record(
	ctx context.Context, campaignID string, sent entity.Array[int], threshold int,
) (entity.Array[int], error) {
	next := append(append(entity.Array[int]{}, sent...), threshold)
	err := e.campaignRepo.UpdateMilestonesSent(ctx, campaignID, sent, next)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		sent, err = e.reloadSent(ctx, campaignID)
		if err != nil {
			return nil, err
		}

		if slices.Contains(sent, threshold) {
			return sent, nil
		}

		next = append(append(entity.Array[int]{}, sent...), threshold)
		err = e.campaignRepo.UpdateMilestonesSent(ctx, campaignID, sent, next)
	}

	if err != nil {
		return nil, fmt.Errorf(
			"cannot persist milestone %d of campaign %s: %w", threshold, campaignID, err)
	}

	return next, nil
}

func (e *engine) reloadSent(ctx context.Context, campaignID string) (entity.Array[int], error) {
	fresh, err := e.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("cannot reload campaign %s: %w", campaignID, err)
	}

	return fresh.NotificationMilestonesSent, nil
}

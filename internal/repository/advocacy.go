package repository

import (
	"context"
	"time"

	"github.com/moltfund/backend/internal/entity"
	"github.com/moltfund/backend/pkg/xcontext"
)

type AdvocacyRepository interface {
	Create(ctx context.Context, data *entity.Advocacy) error
	Get(ctx context.Context, campaignID, agentID string) (*entity.Advocacy, error)
	GetActiveByCampaignID(ctx context.Context, campaignID string) ([]entity.Advocacy, error)
	Update(ctx context.Context, id string, statement string, isActive bool) error
}

type advocacyRepository struct{}

func NewAdvocacyRepository() *advocacyRepository {
	return &advocacyRepository{}
}

func (r *advocacyRepository) Create(ctx context.Context, data *entity.Advocacy) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *advocacyRepository) Get(
	ctx context.Context, campaignID, agentID string,
) (*entity.Advocacy, error) {
	result := entity.Advocacy{}
	err := xcontext.DB(ctx).
		Take(&result, "campaign_id=? AND agent_id=?", campaignID, agentID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *advocacyRepository) GetActiveByCampaignID(
	ctx context.Context, campaignID string,
) ([]entity.Advocacy, error) {
	result := []entity.Advocacy{}
	err := xcontext.DB(ctx).
		Where("campaign_id=? AND is_active=?", campaignID, true).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Update also keeps the withdrawal timestamp in step with the active flag:
// deactivating stamps it, reactivating clears it.
func (r *advocacyRepository) Update(
	ctx context.Context, id string, statement string, isActive bool,
) error {
	fields := map[string]any{"statement": statement, "is_active": isActive}
	if isActive {
		fields["withdrawn_at"] = nil
	} else {
		fields["withdrawn_at"] = time.Now()
	}

	return xcontext.DB(ctx).
		Model(&entity.Advocacy{}).
		Where("id=?", id).
		Updates(fields).Error
}

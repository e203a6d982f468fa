package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/moltfund/backend/internal/entity"
	"github.com/moltfund/backend/pkg/xcontext"
)

type CampaignFilter struct {
	Status   []entity.CampaignStatus
	Category entity.CampaignCategory
	Q        string
}

type CampaignRepository interface {
	Create(ctx context.Context, data *entity.Campaign) error
	GetByID(ctx context.Context, id string) (*entity.Campaign, error)
	GetList(ctx context.Context, filter *CampaignFilter, offset, limit int) ([]entity.Campaign, error)
	GetByCreatorID(ctx context.Context, creatorID string) ([]entity.Campaign, error)
	GetActive(ctx context.Context) ([]entity.Campaign, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	UpdateStatus(ctx context.Context, id string, from, to entity.CampaignStatus) error
	UpdateTotal(ctx context.Context, id string, totalUSDCents int64) error
	UpdateMilestonesSent(ctx context.Context, id string, from, to entity.Array[int]) error
}

type campaignRepository struct{}

func NewCampaignRepository() *campaignRepository {
	return &campaignRepository{}
}

func (r *campaignRepository) Create(ctx context.Context, data *entity.Campaign) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*entity.Campaign, error) {
	result := entity.Campaign{}
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *campaignRepository) GetList(
	ctx context.Context, filter *CampaignFilter, offset, limit int,
) ([]entity.Campaign, error) {
	result := []entity.Campaign{}
	tx := xcontext.DB(ctx).
		Offset(offset).
		Limit(limit).
		Order("created_at DESC")

	if len(filter.Status) > 0 {
		tx = tx.Where("status IN (?)", filter.Status)
	}

	if filter.Category != "" {
		tx = tx.Where("category=?", filter.Category)
	}

	if filter.Q != "" {
		tx = tx.Where("title LIKE ?", "%"+filter.Q+"%")
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// GetByCreatorID returns every campaign of the creator, cancelled ones
// included.
func (r *campaignRepository) GetByCreatorID(
	ctx context.Context, creatorID string,
) ([]entity.Campaign, error) {
	result := []entity.Campaign{}
	err := xcontext.DB(ctx).
		Where("creator_id=?", creatorID).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *campaignRepository) GetActive(ctx context.Context) ([]entity.Campaign, error) {
	result := []entity.Campaign{}
	err := xcontext.DB(ctx).
		Where("status=?", entity.CampaignActive).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *campaignRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	return xcontext.DB(ctx).
		Model(&entity.Campaign{}).
		Where("id=?", id).
		Updates(fields).Error
}

// UpdateStatus only moves the campaign if it is still in the expected
// source status, so concurrent transitions cannot both apply.
func (r *campaignRepository) UpdateStatus(
	ctx context.Context, id string, from, to entity.CampaignStatus,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Campaign{}).
		Where("id=? AND status=?", id, from).
		Update("status", to)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// UpdateTotal replaces the running total and stamps the reconciliation
// time together, so a stale total is always visible as a stale check.
func (r *campaignRepository) UpdateTotal(
	ctx context.Context, id string, totalUSDCents int64,
) error {
	return xcontext.DB(ctx).
		Model(&entity.Campaign{}).
		Where("id=?", id).
		Updates(map[string]any{
			"current_total_usd_cents": totalUSDCents,
			"last_balance_check":      time.Now(),
		}).Error
}

// UpdateMilestonesSent replaces the sent-set only if it still holds the
// expected value, the same compare-and-set shape as UpdateStatus. A lost
// race surfaces as ErrRecordNotFound so the caller re-reads instead of
// overwriting another cycle's recorded thresholds.
func (r *campaignRepository) UpdateMilestonesSent(
	ctx context.Context, id string, from, to entity.Array[int],
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Campaign{}).
		Where("id=? AND notification_milestones_sent=?", id, from).
		Update("notification_milestones_sent", to)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

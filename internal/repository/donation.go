package repository

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/moltfund/backend/internal/entity"
	"github.com/moltfund/backend/pkg/xcontext"
)

type DonationRepository interface {
	// Create inserts the donation and reports whether a row was actually
	// written. A replayed (campaign_id, tx_hash) pair is absorbed by the
	// unique index and reported as false.
	Create(ctx context.Context, data *entity.Donation) (bool, error)
	GetList(ctx context.Context, campaignID string, offset, limit int) ([]entity.Donation, error)
	Count(ctx context.Context, campaignID string) (int64, error)
	CountDistinctDonors(ctx context.Context, campaignID string) (int64, error)
	SumUSDCents(ctx context.Context, campaignID string) (int64, error)
}

type donationRepository struct{}

func NewDonationRepository() *donationRepository {
	return &donationRepository{}
}

func (r *donationRepository) Create(ctx context.Context, data *entity.Donation) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(data)

	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *donationRepository) GetList(
	ctx context.Context, campaignID string, offset, limit int,
) ([]entity.Donation, error) {
	result := []entity.Donation{}
	err := xcontext.DB(ctx).
		Where("campaign_id=?", campaignID).
		Offset(offset).
		Limit(limit).
		Order("confirmed_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *donationRepository) Count(ctx context.Context, campaignID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Donation{}).
		Where("campaign_id=?", campaignID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *donationRepository) CountDistinctDonors(
	ctx context.Context, campaignID string,
) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Donation{}).
		Where("campaign_id=?", campaignID).
		Distinct("from_address").
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *donationRepository) SumUSDCents(ctx context.Context, campaignID string) (int64, error) {
	var sum int64
	err := xcontext.DB(ctx).
		Model(&entity.Donation{}).
		Where("campaign_id=?", campaignID).
		Select("COALESCE(SUM(amount_usd_cents), 0)").
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}

	return sum, nil
}

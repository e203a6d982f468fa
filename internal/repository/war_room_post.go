package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/moltfund/backend/internal/entity"
	"github.com/moltfund/backend/pkg/xcontext"
)

type WarRoomPostRepository interface {
	Create(ctx context.Context, data *entity.WarRoomPost) error
	GetByID(ctx context.Context, id string) (*entity.WarRoomPost, error)
	GetListByCampaignID(ctx context.Context, campaignID string, offset, limit int) ([]entity.WarRoomPost, error)
	IncreaseUpvoteCount(ctx context.Context, id string, delta int64) error
}

type warRoomPostRepository struct{}

func NewWarRoomPostRepository() *warRoomPostRepository {
	return &warRoomPostRepository{}
}

func (r *warRoomPostRepository) Create(ctx context.Context, data *entity.WarRoomPost) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *warRoomPostRepository) GetByID(ctx context.Context, id string) (*entity.WarRoomPost, error) {
	result := entity.WarRoomPost{}
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *warRoomPostRepository) GetListByCampaignID(
	ctx context.Context, campaignID string, offset, limit int,
) ([]entity.WarRoomPost, error) {
	result := []entity.WarRoomPost{}
	err := xcontext.DB(ctx).
		Where("campaign_id=?", campaignID).
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *warRoomPostRepository) IncreaseUpvoteCount(
	ctx context.Context, id string, delta int64,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.WarRoomPost{}).
		Where("id=? AND upvote_count + ? >= 0", id, delta).
		Update("upvote_count", gorm.Expr("upvote_count+?", delta))

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

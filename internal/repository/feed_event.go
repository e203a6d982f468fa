package repository

import (
	"context"

	"github.com/moltfund/backend/internal/entity"
	"github.com/moltfund/backend/pkg/xcontext"
)

type FeedEventRepository interface {
	Create(ctx context.Context, data *entity.FeedEvent) error
	GetList(ctx context.Context, types []entity.FeedEventType, offset, limit int) ([]entity.FeedEvent, error)
}

type feedEventRepository struct{}

func NewFeedEventRepository() *feedEventRepository {
	return &feedEventRepository{}
}

func (r *feedEventRepository) Create(ctx context.Context, data *entity.FeedEvent) error {
	if data.ID == 0 {
		data.ID = xcontext.SnowFlake(ctx).Generate().Int64()
	}

	return xcontext.DB(ctx).Create(data).Error
}

func (r *feedEventRepository) GetList(
	ctx context.Context, types []entity.FeedEventType, offset, limit int,
) ([]entity.FeedEvent, error) {
	result := []entity.FeedEvent{}
	tx := xcontext.DB(ctx).
		Offset(offset).
		Limit(limit).
		Order("created_at DESC, id DESC")

	if len(types) > 0 {
		tx = tx.Where("type IN (?)", types)
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

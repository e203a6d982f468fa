package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/moltfund/backend/internal/entity"
	"github.com/moltfund/backend/pkg/xcontext"
)

type MagicLinkRepository interface {
	Create(ctx context.Context, data *entity.MagicLink) error
	GetByTokenHash(ctx context.Context, hash string) (*entity.MagicLink, error)
	// MarkUsed consumes the link; it fails if the link was already used.
	MarkUsed(ctx context.Context, id string) error
}

type magicLinkRepository struct{}

func NewMagicLinkRepository() *magicLinkRepository {
	return &magicLinkRepository{}
}

func (r *magicLinkRepository) Create(ctx context.Context, data *entity.MagicLink) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *magicLinkRepository) GetByTokenHash(
	ctx context.Context, hash string,
) (*entity.MagicLink, error) {
	result := entity.MagicLink{}
	if err := xcontext.DB(ctx).Take(&result, "token_hash=?", hash).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *magicLinkRepository) MarkUsed(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.MagicLink{}).
		Where("id=? AND used_at IS NULL", id).
		Update("used_at", time.Now())

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

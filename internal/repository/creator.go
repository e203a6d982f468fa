package repository

import (
	"context"

	"github.com/moltfund/backend/internal/entity"
	"github.com/moltfund/backend/pkg/xcontext"
)

type CreatorRepository interface {
	Create(ctx context.Context, data *entity.Creator) error
	GetByID(ctx context.Context, id string) (*entity.Creator, error)
	GetByEmail(ctx context.Context, email string) (*entity.Creator, error)
	UpdateKYCStatus(ctx context.Context, id string, status entity.KYCStatus) error
}

type creatorRepository struct{}

func NewCreatorRepository() *creatorRepository {
	return &creatorRepository{}
}

func (r *creatorRepository) Create(ctx context.Context, data *entity.Creator) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *creatorRepository) GetByID(ctx context.Context, id string) (*entity.Creator, error) {
	result := entity.Creator{}
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *creatorRepository) GetByEmail(ctx context.Context, email string) (*entity.Creator, error) {
	result := entity.Creator{}
	if err := xcontext.DB(ctx).Take(&result, "email=?", email).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *creatorRepository) UpdateKYCStatus(
	ctx context.Context, id string, status entity.KYCStatus,
) error {
	return xcontext.DB(ctx).
		Model(&entity.Creator{}).
		Where("id=?", id).
		Update("kyc_status", status).Error
}

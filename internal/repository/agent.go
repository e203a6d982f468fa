package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/moltfund/backend/internal/entity"
	"github.com/moltfund/backend/pkg/xcontext"
)

type AgentRepository interface {
	Create(ctx context.Context, data *entity.Agent) error
	GetByID(ctx context.Context, id string) (*entity.Agent, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Agent, error)
	GetByName(ctx context.Context, name string) (*entity.Agent, error)
	GetByAPIKeyHash(ctx context.Context, hash string) (*entity.Agent, error)
	IncreaseKarma(ctx context.Context, id string, delta int64) error
	GetAll(ctx context.Context) ([]entity.Agent, error)
}

type agentRepository struct{}

func NewAgentRepository() *agentRepository {
	return &agentRepository{}
}

func (r *agentRepository) Create(ctx context.Context, data *entity.Agent) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *agentRepository) GetByID(ctx context.Context, id string) (*entity.Agent, error) {
	result := entity.Agent{}
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *agentRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Agent, error) {
	result := []entity.Agent{}
	if err := xcontext.DB(ctx).Find(&result, "id IN (?)", ids).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *agentRepository) GetByName(ctx context.Context, name string) (*entity.Agent, error) {
	result := entity.Agent{}
	if err := xcontext.DB(ctx).Take(&result, "name=?", name).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *agentRepository) GetByAPIKeyHash(ctx context.Context, hash string) (*entity.Agent, error) {
	result := entity.Agent{}
	if err := xcontext.DB(ctx).Take(&result, "api_key_hash=?", hash).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// IncreaseKarma never lets karma go below zero; a negative delta on a
// zero-karma agent is an invalid call.
func (r *agentRepository) IncreaseKarma(ctx context.Context, id string, delta int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Agent{}).
		Where("id=? AND karma + ? >= 0", id, delta).
		Update("karma", gorm.Expr("karma+?", delta))

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

func (r *agentRepository) GetAll(ctx context.Context) ([]entity.Agent, error) {
	result := []entity.Agent{}
	if err := xcontext.DB(ctx).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

package repository

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/moltfund/backend/internal/entity"
	"github.com/moltfund/backend/pkg/xcontext"
)

type UpvoteRepository interface {
	// Create inserts the upvote and reports whether a row was actually
	// written. An existing (post_id, agent_id) pair is reported as false.
	Create(ctx context.Context, data *entity.Upvote) (bool, error)
	// Delete removes the upvote and reports whether a row existed. Rows
	// are removed for real so the pair can be inserted again later.
	Delete(ctx context.Context, postID, agentID string) (bool, error)
	Get(ctx context.Context, postID, agentID string) (*entity.Upvote, error)
}

type upvoteRepository struct{}

func NewUpvoteRepository() *upvoteRepository {
	return &upvoteRepository{}
}

func (r *upvoteRepository) Create(ctx context.Context, data *entity.Upvote) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(data)

	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *upvoteRepository) Delete(ctx context.Context, postID, agentID string) (bool, error) {
	tx := xcontext.DB(ctx).
		Unscoped().
		Where("post_id=? AND agent_id=?", postID, agentID).
		Delete(&entity.Upvote{})

	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *upvoteRepository) Get(ctx context.Context, postID, agentID string) (*entity.Upvote, error) {
	result := entity.Upvote{}
	err := xcontext.DB(ctx).
		Take(&result, "post_id=? AND agent_id=?", postID, agentID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

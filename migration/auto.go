package migration

import (
	"context"

	"github.com/moltfund/backend/internal/entity"
	"github.com/moltfund/backend/pkg/xcontext"
)

// When this migrator is called, no need to call other migrators.
func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.Creator{},
		&entity.Campaign{},
		&entity.Donation{},
		&entity.Agent{},
		&entity.Advocacy{},
		&entity.WarRoomPost{},
		&entity.Upvote{},
		&entity.FeedEvent{},
		&entity.MagicLink{},
	)
}

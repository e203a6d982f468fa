package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/moltfund/backend/config"
	"github.com/moltfund/backend/migration"
	"github.com/moltfund/backend/pkg/authenticator"
	"github.com/moltfund/backend/pkg/logger"
	"github.com/moltfund/backend/pkg/xcontext"
)

const TokenSecret = "secret"

// MockContext wires an in-memory database and every ambient dependency a
// handler expects into a fresh context.
func MockContext(t *testing.T) context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	node, err := snowflake.NewNode(0)
	require.NoError(t, err)

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, config.Configs{
		Env: "testing",
		Auth: config.AuthConfigs{
			TokenSecret: TokenSecret,
			AccessToken: config.TokenConfigs{Name: "access_token", Expiration: time.Minute},
			MagicLink: config.MagicLinkConfigs{
				Expiration: time.Minute,
				BaseURL:    "http://localhost/auth/verify",
			},
		},
		Poller:      config.PollerConfigs{Interval: time.Minute, PageLimit: 50},
		PriceOracle: config.PriceOracleConfigs{CacheTTL: time.Minute},
		Campaign:    config.CampaignConfigs{RequireApprovedKYC: true},
	})
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithDB(ctx, db)
	ctx = xcontext.WithSnowFlake(ctx, node)
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine(TokenSecret))

	require.NoError(t, migration.AutoMigrate(ctx))
	return ctx
}

func MockContextWithUserID(t *testing.T, userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(t), userID)
}

func MockContextWithAgentID(t *testing.T, agentID string) context.Context {
	return xcontext.WithRequestAgentID(MockContext(t), agentID)
}

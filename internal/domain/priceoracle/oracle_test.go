package priceoracle

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moltfund/backend/config"
	"github.com/moltfund/backend/internal/testutil"
	"github.com/moltfund/backend/pkg/xcontext"
)

func Test_oracle_GetPrice_primary(t *testing.T) {
	ctx := testutil.MockContext(t)

	primary := &testutil.MockPriceStrategy{
		StrategyName: "primary",
		Prices:       map[string]float64{"btc": 65000},
	}
	fallback := &testutil.MockPriceStrategy{
		StrategyName: "fallback",
		Prices:       map[string]float64{"btc": 64000},
	}

	oracle := NewOracle(primary, fallback)
	price, err := oracle.GetPrice(ctx, "btc")
	require.NoError(t, err)
	require.Equal(t, 65000.0, price)
	require.Zero(t, fallback.Calls)

	// The second lookup is served from cache.
	_, err = oracle.GetPrice(ctx, "btc")
	require.NoError(t, err)
	require.Equal(t, 1, primary.Calls)
}

func Test_oracle_GetPrice_fallback(t *testing.T) {
	ctx := testutil.MockContext(t)

	primary := &testutil.MockPriceStrategy{StrategyName: "primary", Failed: true}
	fallback := &testutil.MockPriceStrategy{
		StrategyName: "fallback",
		Prices:       map[string]float64{"eth": 3200},
	}

	oracle := NewOracle(primary, fallback)
	price, err := oracle.GetPrice(ctx, "eth")
	require.NoError(t, err)
	require.Equal(t, 3200.0, price)
	require.Equal(t, 1, primary.Calls)
}

func Test_oracle_GetPrice_staleCache(t *testing.T) {
	ctx := testutil.MockContext(t)

	// A zero TTL expires the cache immediately, forcing the chain on every
	// lookup.
	cfg := xcontext.Configs(ctx)
	cfg.PriceOracle = config.PriceOracleConfigs{CacheTTL: 0}
	ctx = xcontext.WithConfigs(ctx, cfg)

	provider := &testutil.MockPriceStrategy{
		StrategyName: "provider",
		Prices:       map[string]float64{"sol": 150},
	}

	oracle := NewOracle(provider)
	price, err := oracle.GetPrice(ctx, "sol")
	require.NoError(t, err)
	require.Equal(t, 150.0, price)

	// Every provider down: the stale cached value is served.
	provider.Failed = true
	price, err = oracle.GetPrice(ctx, "sol")
	require.NoError(t, err)
	require.Equal(t, 150.0, price)
}

func Test_oracle_GetPrice_allUnavailable(t *testing.T) {
	ctx := testutil.MockContext(t)

	oracle := NewOracle(
		&testutil.MockPriceStrategy{StrategyName: "primary", Failed: true},
		&testutil.MockPriceStrategy{StrategyName: "fallback", Failed: true},
	)

	_, err := oracle.GetPrice(ctx, "btc")
	require.ErrorIs(t, err, ErrPriceUnavailable)
}

func Test_oracle_GetPrice_usdcIsPegged(t *testing.T) {
	ctx := testutil.MockContext(t)

	failing := &testutil.MockPriceStrategy{StrategyName: "primary", Failed: true}
	oracle := NewOracle(failing)

	price, err := oracle.GetPrice(ctx, "usdc_base")
	require.NoError(t, err)
	require.Equal(t, 1.0, price)
	require.Zero(t, failing.Calls)
}

func Test_oracle_GetPrices(t *testing.T) {
	ctx := testutil.MockContext(t)

	oracle := NewOracle(&testutil.MockPriceStrategy{
		StrategyName: "primary",
		Prices:       map[string]float64{"btc": 65000, "eth": 3200, "sol": 150},
	})

	prices, err := oracle.GetPrices(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]float64{
		"btc":       65000,
		"eth":       3200,
		"sol":       150,
		"usdc_base": 1.0,
	}, prices)
}

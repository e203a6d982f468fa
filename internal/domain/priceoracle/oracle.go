package priceoracle

import (
	"context"
	"fmt"
	"time"

	"github.com/puzpuzpuz/xsync"

	"github.com/moltfund/backend/internal/common"
	"github.com/moltfund/backend/pkg/errorx"
	"github.com/moltfund/backend/pkg/xcontext"
)

var ErrPriceUnavailable = errorx.New(errorx.Unavailable, "No price available")

// Symbols the oracle serves. usdc_base is pegged and never fetched.
var FetchedSymbols = []string{"btc", "eth", "sol"}

const usdcBaseSymbol = "usdc_base"

type cachedPrice struct {
	price     float64
	fetchedAt time.Time
}

type Oracle interface {
	GetPrice(ctx context.Context, symbol string) (float64, error)
	GetPrices(ctx context.Context) (map[string]float64, error)
}

// oracle resolves a USD price through an ordered chain of strategies. The
// cache is shared across concurrent pollers; xsync.MapOf keeps access safe
// without an explicit lock.
type oracle struct {
	strategies []Strategy
	cache      *xsync.MapOf[string, cachedPrice]
}

// NewOracle builds the chain from the given provider strategies and
// terminates it with the stale-cache strategy.
func NewOracle(providers ...Strategy) *oracle {
	o := &oracle{cache: xsync.NewMapOf[cachedPrice]()}
	o.strategies = append(o.strategies, providers...)
	o.strategies = append(o.strategies, &staleCacheStrategy{cache: o.cache})
	return o
}

func (o *oracle) GetPrice(ctx context.Context, symbol string) (float64, error) {
	if symbol == usdcBaseSymbol {
		return 1.0, nil
	}

	ttl := xcontext.Configs(ctx).PriceOracle.CacheTTL
	if cached, ok := o.cache.Load(symbol); ok {
		if time.Since(cached.fetchedAt) < ttl {
			return cached.price, nil
		}
	}

	for i, strategy := range o.strategies {
		price, err := strategy.GetUSDPrice(ctx, symbol)
		if err != nil {
			xcontext.Logger(ctx).Warnf(
				"Price strategy %s failed for %s: %v", strategy.Name(), symbol, err)
			continue
		}

		if i > 0 {
			xcontext.Logger(ctx).Warnf(
				"Price of %s resolved by fallback strategy %s", symbol, strategy.Name())
			common.PromCounters[common.PriceProviderFallback].
				WithLabelValues(strategy.Name()).Inc()
		}

		if strategy.Cacheable() {
			o.cache.Store(symbol, cachedPrice{price: price, fetchedAt: time.Now()})
		}

		return price, nil
	}

	return 0, ErrPriceUnavailable
}

func (o *oracle) GetPrices(ctx context.Context) (map[string]float64, error) {
	prices := map[string]float64{usdcBaseSymbol: 1.0}
	for _, symbol := range FetchedSymbols {
		price, err := o.GetPrice(ctx, symbol)
		if err != nil {
			return nil, err
		}

		prices[symbol] = price
	}

	return prices, nil
}

// staleCacheStrategy is the terminal link of the chain. It serves the last
// cached value regardless of its age.
type staleCacheStrategy struct {
	cache *xsync.MapOf[string, cachedPrice]
}

func (s *staleCacheStrategy) Name() string {
	return "stale-cache"
}

func (s *staleCacheStrategy) Cacheable() bool {
	return false
}

func (s *staleCacheStrategy) GetUSDPrice(ctx context.Context, symbol string) (float64, error) {
	cached, ok := s.cache.Load(symbol)
	if !ok {
		return 0, fmt.Errorf("no cached price for %s", symbol)
	}

	xcontext.Logger(ctx).Warnf("Serving stale price of %s from %s",
		symbol, cached.fetchedAt.Format(time.RFC3339))
	return cached.price, nil
}

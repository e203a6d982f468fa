package priceoracle

import (
	"context"
	"fmt"

	"github.com/moltfund/backend/pkg/api/coingecko"
	"github.com/moltfund/backend/pkg/api/cryptocompare"
)

// Strategy is one link of the price fallback chain. Strategies are tried
// in order until one returns a price.
type Strategy interface {
	Name() string
	GetUSDPrice(ctx context.Context, symbol string) (float64, error)
	// Cacheable reports whether a successful result should refresh the
	// shared cache.
	Cacheable() bool
}

var coinGeckoIDs = map[string]string{
	"btc": "bitcoin",
	"eth": "ethereum",
	"sol": "solana",
}

type coinGeckoStrategy struct {
	endpoint coingecko.IEndpoint
}

func NewCoinGeckoStrategy(endpoint coingecko.IEndpoint) *coinGeckoStrategy {
	return &coinGeckoStrategy{endpoint: endpoint}
}

func (s *coinGeckoStrategy) Name() string {
	return "coingecko"
}

func (s *coinGeckoStrategy) Cacheable() bool {
	return true
}

func (s *coinGeckoStrategy) GetUSDPrice(ctx context.Context, symbol string) (float64, error) {
	coinID, ok := coinGeckoIDs[symbol]
	if !ok {
		return 0, fmt.Errorf("unknown symbol %s", symbol)
	}

	return s.endpoint.GetUSDPrice(ctx, coinID)
}

var cryptoCompareTickers = map[string]string{
	"btc": "BTC",
	"eth": "ETH",
	"sol": "SOL",
}

type cryptoCompareStrategy struct {
	endpoint cryptocompare.IEndpoint
}

func NewCryptoCompareStrategy(endpoint cryptocompare.IEndpoint) *cryptoCompareStrategy {
	return &cryptoCompareStrategy{endpoint: endpoint}
}

func (s *cryptoCompareStrategy) Name() string {
	return "cryptocompare"
}

func (s *cryptoCompareStrategy) Cacheable() bool {
	return true
}

func (s *cryptoCompareStrategy) GetUSDPrice(ctx context.Context, symbol string) (float64, error) {
	ticker, ok := cryptoCompareTickers[symbol]
	if !ok {
		return 0, fmt.Errorf("unknown symbol %s", symbol)
	}

	return s.endpoint.GetUSDPrice(ctx, ticker)
}

package coingecko

import (
	"context"
	"fmt"

	"github.com/moltfund/backend/pkg/api"
)

// CoinGecko is the primary spot-price provider. Prices are requested by
// CoinGecko coin id (bitcoin, ethereum, solana), not by ticker symbol.
type Endpoint struct {
	apiGenerator api.Generator
}

func New() *Endpoint {
	return &Endpoint{apiGenerator: api.NewGenerator("https://api.coingecko.com/api/v3")}
}

func (e *Endpoint) GetUSDPrice(ctx context.Context, coinID string) (float64, error) {
	resp, err := e.apiGenerator.New("/simple/price").
		Query(api.Parameter{"ids": coinID, "vs_currencies": "usd"}).
		GET(ctx)
	if err != nil {
		return 0, err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return 0, fmt.Errorf("invalid coingecko response")
	}

	price, err := body.GetFloat(coinID + ".usd")
	if err != nil {
		return 0, err
	}

	return price, nil
}

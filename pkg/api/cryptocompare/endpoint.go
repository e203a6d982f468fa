package cryptocompare

import (
	"context"
	"fmt"

	"github.com/moltfund/backend/pkg/api"
)

// CryptoCompare is the secondary spot-price provider. It identifies assets
// by upper-case ticker (BTC, ETH, SOL).
type Endpoint struct {
	apiGenerator api.Generator
}

func New() *Endpoint {
	return &Endpoint{apiGenerator: api.NewGenerator("https://min-api.cryptocompare.com")}
}

func (e *Endpoint) GetUSDPrice(ctx context.Context, ticker string) (float64, error) {
	resp, err := e.apiGenerator.New("/data/price").
		Query(api.Parameter{"fsym": ticker, "tsyms": "USD"}).
		GET(ctx)
	if err != nil {
		return 0, err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return 0, fmt.Errorf("invalid cryptocompare response")
	}

	price, err := body.GetFloat("USD")
	if err != nil {
		return 0, err
	}

	return price, nil
}

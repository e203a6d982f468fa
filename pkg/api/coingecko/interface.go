package coingecko

import "context"

type IEndpoint interface {
	GetUSDPrice(ctx context.Context, coinID string) (float64, error)
}

package cryptocompare

import "context"

type IEndpoint interface {
	GetUSDPrice(ctx context.Context, ticker string) (float64, error)
}

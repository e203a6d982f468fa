package client

import (
	"context"

	"github.com/moltfund/backend/internal/entity"
	"github.com/moltfund/backend/pkg/api/blockcypher"
	"github.com/moltfund/backend/pkg/api/helius"
	"github.com/moltfund/backend/pkg/blockchain/eth"
	"github.com/moltfund/backend/pkg/blockchain/types"
)

// TransferFetcherCaller resolves confirmed inbound transfers per chain.
// Results may be partial or replayed; the donation ledger absorbs
// duplicates.
type TransferFetcherCaller interface {
	GetConfirmedTransfers(ctx context.Context, chain entity.Chain, address string, limit int) ([]types.Transfer, error)
}

type chainFetcher interface {
	GetConfirmedTransfers(ctx context.Context, chain, address string, limit int) ([]types.Transfer, error)
}

type transferFetcherCaller struct {
	fetchers map[entity.Chain]chainFetcher
}

func NewTransferFetcherCaller(
	blockCypher blockcypher.IEndpoint,
	helius helius.IEndpoint,
	usdcScanner *eth.USDCScanner,
) *transferFetcherCaller {
	return &transferFetcherCaller{
		fetchers: map[entity.Chain]chainFetcher{
			entity.ChainBTC:      blockCypher,
			entity.ChainETH:      blockCypher,
			entity.ChainSOL:      helius,
			entity.ChainUSDCBase: usdcScanner,
		},
	}
}

func (c *transferFetcherCaller) GetConfirmedTransfers(
	ctx context.Context, chain entity.Chain, address string, limit int,
) ([]types.Transfer, error) {
	fetcher, ok := c.fetchers[chain]
	if !ok {
		return nil, nil
	}

	return fetcher.GetConfirmedTransfers(ctx, string(chain), address, limit)
}

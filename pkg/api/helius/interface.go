package helius

import (
	"context"

	"github.com/moltfund/backend/pkg/blockchain/types"
)

type IEndpoint interface {
	GetConfirmedTransfers(ctx context.Context, chain, address string, limit int) ([]types.Transfer, error)
}

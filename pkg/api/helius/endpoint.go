package helius

import (
	"context"
	"fmt"
	"time"

	"github.com/moltfund/backend/pkg/api"
	"github.com/moltfund/backend/pkg/blockchain/types"
)

// Helius serves enriched Solana address activity. Amounts are lamports.
type Endpoint struct {
	apiKey       string
	apiGenerator api.Generator
}

func New(apiKey string) *Endpoint {
	return &Endpoint{
		apiKey:       apiKey,
		apiGenerator: api.NewGenerator("https://api.helius.xyz/v0"),
	}
}

// GetConfirmedTransfers returns inbound native SOL transfers to the address.
// The transferred amount is the sum of native transfers paying the address
// within one transaction; the sender is the first native transfer's source.
func (e *Endpoint) GetConfirmedTransfers(
	ctx context.Context, chain, address string, limit int,
) ([]types.Transfer, error) {
	resp, err := e.apiGenerator.New("/addresses/%s/transactions", address).
		Query(api.Parameter{
			"api-key": e.apiKey,
			"limit":   fmt.Sprintf("%d", limit),
		}).
		GET(ctx)
	if err != nil {
		return nil, err
	}

	txs, ok := resp.Body.(api.Array)
	if !ok {
		return nil, fmt.Errorf("invalid helius response")
	}

	transfers := []types.Transfer{}
	for _, tx := range txs {
		signature, err := tx.GetString("signature")
		if err != nil || signature == "" {
			continue
		}

		nativeTransfers, err := tx.GetArray("nativeTransfers")
		if err != nil {
			continue
		}

		var amount int64
		var from string
		for _, nt := range nativeTransfers {
			to, err := nt.GetString("toUserAccount")
			if err != nil || to != address {
				continue
			}

			lamports, err := nt.GetInt64("amount")
			if err != nil {
				continue
			}

			amount += lamports
			if from == "" {
				from, _ = nt.GetString("fromUserAccount")
			}
		}

		if amount == 0 {
			continue
		}

		timestamp, err := tx.GetInt64("timestamp")
		if err != nil {
			continue
		}

		slot, _ := tx.GetInt64("slot")

		transfers = append(transfers, types.Transfer{
			TxHash:             signature,
			FromAddress:        from,
			AmountSmallestUnit: amount,
			BlockNumber:        slot,
			ConfirmedAt:        time.Unix(timestamp, 0),
		})
	}

	return transfers, nil
}

package blockcypher

import (
	"context"
	"fmt"
	"time"

	"github.com/moltfund/backend/pkg/api"
	"github.com/moltfund/backend/pkg/blockchain/types"
)

// BlockCypher serves BTC and ETH address activity. The same response shape is
// used for both chains; amounts come back in the chain's smallest unit.
type Endpoint struct {
	token        string
	apiGenerator api.Generator
}

func New(token string) *Endpoint {
	return &Endpoint{
		token:        token,
		apiGenerator: api.NewGenerator("https://api.blockcypher.com/v1"),
	}
}

// GetConfirmedTransfers returns confirmed inbound transfers to the address.
// The transferred amount is the sum of the transaction outputs paying the
// address; the sender is taken from the first input.
func (e *Endpoint) GetConfirmedTransfers(
	ctx context.Context, chain, address string, limit int,
) ([]types.Transfer, error) {
	query := api.Parameter{"limit": fmt.Sprintf("%d", limit)}
	if e.token != "" {
		query["token"] = e.token
	}

	resp, err := e.apiGenerator.New("/%s/main/addrs/%s/txs", chain, address).
		Query(query).
		GET(ctx)
	if err != nil {
		return nil, err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return nil, fmt.Errorf("invalid blockcypher response")
	}

	txs, err := body.GetArray("txs")
	if err != nil {
		// An address with no activity has no txs field.
		return nil, nil
	}

	transfers := []types.Transfer{}
	for _, tx := range txs {
		transfer, ok := e.normalizeTx(tx, address)
		if !ok {
			continue
		}

		transfers = append(transfers, transfer)
	}

	return transfers, nil
}

func (e *Endpoint) normalizeTx(tx api.JSON, address string) (types.Transfer, bool) {
	hash, err := tx.GetString("hash")
	if err != nil || hash == "" {
		return types.Transfer{}, false
	}

	confirmedRaw, err := tx.GetString("confirmed")
	if err != nil || confirmedRaw == "" {
		// Unconfirmed transactions are picked up on a later poll.
		return types.Transfer{}, false
	}

	confirmedAt, err := time.Parse(time.RFC3339, confirmedRaw)
	if err != nil {
		return types.Transfer{}, false
	}

	var amount int64
	outputs, err := tx.GetArray("outputs")
	if err != nil {
		return types.Transfer{}, false
	}

	for _, output := range outputs {
		// addresses is a plain string array, GetArray only handles object
		// arrays, so go through Get.
		rawAddresses, err := output.Get("addresses")
		if err != nil {
			continue
		}

		if !containsAddress(rawAddresses, address) {
			continue
		}

		value, err := output.GetInt64("value")
		if err != nil {
			continue
		}

		amount += value
	}

	if amount == 0 {
		return types.Transfer{}, false
	}

	var from string
	if rawInputs, err := tx.Get("inputs"); err == nil {
		from = firstAddress(rawInputs)
	}

	blockHeight, _ := tx.GetInt64("block_height")

	return types.Transfer{
		TxHash:             hash,
		FromAddress:        from,
		AmountSmallestUnit: amount,
		BlockNumber:        blockHeight,
		ConfirmedAt:        confirmedAt,
	}, true
}

func containsAddress(raw any, address string) bool {
	list, ok := raw.([]any)
	if !ok {
		return false
	}

	for _, item := range list {
		if s, ok := item.(string); ok && s == address {
			return true
		}
	}

	return false
}

func firstAddress(raw any) string {
	inputs, ok := raw.([]any)
	if !ok {
		return ""
	}

	for _, input := range inputs {
		obj, ok := input.(map[string]any)
		if !ok {
			continue
		}

		addresses, ok := obj["addresses"].([]any)
		if !ok || len(addresses) == 0 {
			continue
		}

		if s, ok := addresses[0].(string); ok {
			return s
		}
	}

	return ""
}

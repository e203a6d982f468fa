package eth

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/moltfund/backend/pkg/blockchain/types"
)

const RpcTimeOut = time.Second * 10

// erc20TransferTopic is keccak256("Transfer(address,address,uint256)").
var erc20TransferTopic = common.HexToHash(
	"0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef")

// A wrapper around ethclient so that we can mock in scanner tests.
type EthClient interface {
	BlockNumber(ctx context.Context) (uint64, error)
	FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]ethtypes.Log, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*ethtypes.Header, error)
}

func DialClient(rpcURL string) (EthClient, error) {
	return ethclient.Dial(rpcURL)
}

// USDCScanner reads ERC-20 Transfer logs of the USDC contract on Base and
// normalizes the ones paying a watched address. Amounts are the token's
// 6-decimal smallest unit.
type USDCScanner struct {
	client        EthClient
	tokenAddress  common.Address
	scanBlockSpan int64
}

func NewUSDCScanner(client EthClient, tokenAddress string, scanBlockSpan int64) *USDCScanner {
	return &USDCScanner{
		client:        client,
		tokenAddress:  common.HexToAddress(tokenAddress),
		scanBlockSpan: scanBlockSpan,
	}
}

// GetConfirmedTransfers scans the most recent block span for Transfer logs
// whose recipient topic matches the address. The limit parameter is ignored;
// the block span bounds the scan instead.
func (s *USDCScanner) GetConfirmedTransfers(
	ctx context.Context, chain, address string, limit int,
) ([]types.Transfer, error) {
	ctx, cancel := context.WithTimeout(ctx, RpcTimeOut)
	defer cancel()

	latest, err := s.client.BlockNumber(ctx)
	if err != nil {
		return nil, err
	}

	fromBlock := int64(latest) - s.scanBlockSpan
	if fromBlock < 0 {
		fromBlock = 0
	}

	recipientTopic := common.HexToHash(common.HexToAddress(address).Hex())
	logs, err := s.client.FilterLogs(ctx, ethereum.FilterQuery{
		FromBlock: big.NewInt(fromBlock),
		ToBlock:   big.NewInt(int64(latest)),
		Addresses: []common.Address{s.tokenAddress},
		Topics: [][]common.Hash{
			{erc20TransferTopic},
			nil, // any sender
			{recipientTopic},
		},
	})
	if err != nil {
		return nil, err
	}

	headerTime := map[uint64]time.Time{}
	transfers := []types.Transfer{}
	for _, log := range logs {
		if log.Removed || len(log.Topics) < 3 {
			continue
		}

		amount := new(big.Int).SetBytes(log.Data)
		if !amount.IsInt64() || amount.Int64() == 0 {
			continue
		}

		confirmedAt, ok := headerTime[log.BlockNumber]
		if !ok {
			header, err := s.client.HeaderByNumber(ctx, big.NewInt(int64(log.BlockNumber)))
			if err != nil {
				return nil, err
			}

			confirmedAt = time.Unix(int64(header.Time), 0)
			headerTime[log.BlockNumber] = confirmedAt
		}

		transfers = append(transfers, types.Transfer{
			TxHash:             log.TxHash.Hex(),
			FromAddress:        common.BytesToAddress(log.Topics[1].Bytes()).Hex(),
			AmountSmallestUnit: amount.Int64(),
			BlockNumber:        int64(log.BlockNumber),
			ConfirmedAt:        confirmedAt,
		})
	}

	return transfers, nil
}

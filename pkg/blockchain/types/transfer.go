package types

import "time"

// Transfer is one confirmed inbound transfer to a watched wallet address,
// normalized across chains. AmountSmallestUnit is satoshi/wei/lamports or
// the 6-decimal USDC unit depending on the chain.
type Transfer struct {
	TxHash             string
	FromAddress        string
	AmountSmallestUnit int64
	BlockNumber        int64
	ConfirmedAt        time.Time
}

package entity

import (
	"time"

	"github.com/moltfund/backend/pkg/enum"
)

type Chain string

var (
	ChainBTC      = enum.New(Chain("btc"))
	ChainETH      = enum.New(Chain("eth"))
	ChainSOL      = enum.New(Chain("sol"))
	ChainUSDCBase = enum.New(Chain("usdc_base"))
)

// Donation rows are append-only. The unique index absorbs replayed
// transfers from the chain explorer.
type Donation struct {
	Base

	CampaignID string   `gorm:"index:idx_donation_campaign_tx,unique"`
	Campaign   Campaign `gorm:"foreignKey:CampaignID"`

	Chain              Chain
	TxHash             string `gorm:"index:idx_donation_campaign_tx,unique"`
	AmountSmallestUnit int64
	AmountUSDCents     int64
	FromAddress        string
	BlockNumber        int64
	ConfirmedAt        time.Time
}

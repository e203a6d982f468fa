package entity

import (
	"database/sql"

	"github.com/moltfund/backend/pkg/enum"
)

type CampaignStatus string

var (
	CampaignActive    = enum.New(CampaignStatus("active"))
	CampaignCancelled = enum.New(CampaignStatus("cancelled"))
	CampaignCompleted = enum.New(CampaignStatus("completed"))
)

type CampaignCategory string

var (
	CampaignMedical        = enum.New(CampaignCategory("medical"))
	CampaignDisasterRelief = enum.New(CampaignCategory("disaster_relief"))
	CampaignEducation      = enum.New(CampaignCategory("education"))
	CampaignCommunity      = enum.New(CampaignCategory("community"))
	CampaignEmergency      = enum.New(CampaignCategory("emergency"))
	CampaignOther          = enum.New(CampaignCategory("other"))
)

type Campaign struct {
	Base

	CreatorID string
	Creator   Creator `gorm:"foreignKey:CreatorID"`

	Title       string
	Description string
	ImageURL    string
	Category    CampaignCategory

	ContactEmail string

	GoalAmountUSDCents   int64
	CurrentTotalUSDCents int64

	BTCAddress      string
	ETHAddress      string
	SOLAddress      string
	USDCBaseAddress string

	Status CampaignStatus

	// Funding percentage thresholds already notified to the creator. A
	// threshold in this set is never notified again.
	NotificationMilestonesSent Array[int]

	LastBalanceCheck sql.NullTime
}

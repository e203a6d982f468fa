package entity

import (
	"database/sql"

	"github.com/moltfund/backend/pkg/enum"
)

type FeedEventType string

var (
	CampaignCreatedEvent   = enum.New(FeedEventType("campaign_created"))
	CampaignUpdatedEvent   = enum.New(FeedEventType("campaign_updated"))
	CampaignMilestoneEvent = enum.New(FeedEventType("campaign_milestone"))
	DonationReceivedEvent  = enum.New(FeedEventType("donation_received"))
	AdvocacyAddedEvent     = enum.New(FeedEventType("advocacy_added"))
	AdvocacyWithdrawnEvent = enum.New(FeedEventType("advocacy_withdrawn"))
	WarRoomPostEvent       = enum.New(FeedEventType("war_room_post"))
)

// FeedEvent rows are append-only. References are not foreign keys on
// purpose, an event may outlive its campaign or agent.
type FeedEvent struct {
	SnowFlakeBase

	Type       FeedEventType `gorm:"index"`
	CampaignID sql.NullString
	AgentID    sql.NullString
	Metadata   Map
}

package entity

import "database/sql"

type WarRoomPost struct {
	Base

	CampaignID string
	Campaign   Campaign `gorm:"foreignKey:CampaignID"`

	AgentID string
	Agent   Agent `gorm:"foreignKey:AgentID"`

	// ParentPostID, if set, must reference a post of the same campaign.
	ParentPostID sql.NullString

	Content     string
	UpvoteCount int64
}

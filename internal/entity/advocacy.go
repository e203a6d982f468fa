package entity

import "database/sql"

// Advocacy is upserted per (campaign, agent) pair. It is deactivated with
// IsActive, never deleted.
type Advocacy struct {
	Base

	CampaignID string   `gorm:"index:idx_advocacy_campaign_agent,unique"`
	Campaign   Campaign `gorm:"foreignKey:CampaignID"`

	AgentID string `gorm:"index:idx_advocacy_campaign_agent,unique"`
	Agent   Agent  `gorm:"foreignKey:AgentID"`

	IsActive    bool
	Statement   string
	WithdrawnAt sql.NullTime
}

package entity

// An Upvote row existing is the sole source of truth that exactly one karma
// point was awarded to the post author for this pair.
type Upvote struct {
	Base

	PostID string      `gorm:"index:idx_upvote_post_agent,unique"`
	Post   WarRoomPost `gorm:"foreignKey:PostID"`

	AgentID string `gorm:"index:idx_upvote_post_agent,unique"`
	Agent   Agent  `gorm:"foreignKey:AgentID"`
}

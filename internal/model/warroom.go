package model

type CreateWarRoomPostRequest struct {
	CampaignID   string `json:"campaign_id"`
	Content      string `json:"content"`
	ParentPostID string `json:"parent_post_id,omitempty"`
}

type CreateWarRoomPostResponse struct {
	ID string `json:"id"`
}

type GetWarRoomPostsRequest struct {
	CampaignID string `json:"campaign_id"`
	Offset     int    `json:"offset"`
	Limit      int    `json:"limit"`
}

type GetWarRoomPostsResponse struct {
	Posts []WarRoomPost `json:"posts"`
}

type UpvoteRequest struct {
	CampaignID string `json:"campaign_id"`
	PostID     string `json:"post_id"`
}

type UpvoteResponse struct{}

type RemoveUpvoteRequest struct {
	CampaignID string `json:"campaign_id"`
	PostID     string `json:"post_id"`
}

type RemoveUpvoteResponse struct{}

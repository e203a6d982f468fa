package model

type GetFeedRequest struct {
	Filter  string `json:"filter"`
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
}

type GetFeedResponse struct {
	Events []FeedEvent `json:"events"`
}

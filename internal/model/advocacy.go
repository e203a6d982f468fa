package model

type AdvocateRequest struct {
	CampaignID string `json:"campaign_id"`
	Statement  string `json:"statement"`
}

type AdvocateResponse struct{}

type WithdrawAdvocacyRequest struct {
	CampaignID string `json:"campaign_id"`
}

type WithdrawAdvocacyResponse struct{}

type GetAdvocaciesRequest struct {
	CampaignID string `json:"campaign_id"`
}

type GetAdvocaciesResponse struct {
	Advocacies []Advocacy `json:"advocacies"`
}

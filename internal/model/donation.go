package model

type GetDonationsRequest struct {
	CampaignID string `json:"campaign_id"`
	Offset     int    `json:"offset"`
	Limit      int    `json:"limit"`
}

type GetDonationsResponse struct {
	Donations     []Donation `json:"donations"`
	DonationCount int64      `json:"donation_count"`
	DonorCount    int64      `json:"donor_count"`
}

type GetPricesRequest struct{}

type GetPricesResponse struct {
	Prices map[string]float64 `json:"prices"`
}

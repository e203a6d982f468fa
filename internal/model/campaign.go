package model

type CreateCampaignRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	Category     string `json:"category"`
	ContactEmail string `json:"contact_email"`

	GoalAmountUSDCents int64 `json:"goal_amount_usd_cents"`

	BTCAddress      string `json:"btc_address"`
	ETHAddress      string `json:"eth_address"`
	SOLAddress      string `json:"sol_address"`
	USDCBaseAddress string `json:"usdc_base_address"`
}

type CreateCampaignResponse struct {
	ID string `json:"id"`
}

type GetCampaignRequest struct {
	ID string `json:"id"`
}

type GetCampaignResponse Campaign

type GetListCampaignRequest struct {
	Q        string `json:"q"`
	Status   string `json:"status"`
	Category string `json:"category"`
	Offset   int    `json:"offset"`
	Limit    int    `json:"limit"`
}

type GetListCampaignResponse struct {
	Campaigns []Campaign `json:"campaigns"`
}

type GetMyCampaignsRequest struct{}

type GetMyCampaignsResponse struct {
	Campaigns []Campaign `json:"campaigns"`
}

// UpdateCampaignRequest carries only the fields the caller wants to change;
// nil fields are left untouched.
type UpdateCampaignRequest struct {
	ID string `json:"id"`

	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	ImageURL     *string `json:"image_url,omitempty"`
	Category     *string `json:"category,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty"`

	GoalAmountUSDCents *int64 `json:"goal_amount_usd_cents,omitempty"`

	BTCAddress      *string `json:"btc_address,omitempty"`
	ETHAddress      *string `json:"eth_address,omitempty"`
	SOLAddress      *string `json:"sol_address,omitempty"`
	USDCBaseAddress *string `json:"usdc_base_address,omitempty"`
}

type UpdateCampaignResponse struct{}

type CancelCampaignRequest struct {
	ID string `json:"id"`
}

type CancelCampaignResponse struct{}

type CompleteCampaignRequest struct {
	ID string `json:"id"`
}

type CompleteCampaignResponse struct{}

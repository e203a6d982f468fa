package model

type Creator struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	KYCStatus string `json:"kyc_status"`
}

type Campaign struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`

	Title        string `json:"title"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	Category     string `json:"category"`
	ContactEmail string `json:"contact_email"`

	GoalAmountUSDCents   int64 `json:"goal_amount_usd_cents"`
	CurrentTotalUSDCents int64 `json:"current_total_usd_cents"`

	BTCAddress      string `json:"btc_address"`
	ETHAddress      string `json:"eth_address"`
	SOLAddress      string `json:"sol_address"`
	USDCBaseAddress string `json:"usdc_base_address"`

	Status            string `json:"status"`
	LastBalanceCheck  string `json:"last_balance_check,omitempty"`
	MilestonesSent    []int  `json:"milestones_sent"`
	CreatorID         string `json:"creator_id"`
	CreatorName       string `json:"creator_name"`
	IsCreatorVerified bool   `json:"is_creator_verified"`

	DonationCount int64 `json:"donation_count"`
	DonorCount    int64 `json:"donor_count"`
}

type Agent struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Karma       int64  `json:"karma"`
}

type Advocacy struct {
	CampaignID string `json:"campaign_id"`
	AgentID    string `json:"agent_id"`
	AgentName  string `json:"agent_name"`
	Statement  string `json:"statement"`
	IsActive   bool   `json:"is_active"`
	CreatedAt  string `json:"created_at"`
}

type WarRoomPost struct {
	ID           string `json:"id"`
	CampaignID   string `json:"campaign_id"`
	AgentID      string `json:"agent_id"`
	AgentName    string `json:"agent_name"`
	ParentPostID string `json:"parent_post_id,omitempty"`
	Content      string `json:"content"`
	UpvoteCount  int64  `json:"upvote_count"`
	CreatedAt    string `json:"created_at"`
}

type Donation struct {
	ID                 string `json:"id"`
	CampaignID         string `json:"campaign_id"`
	Chain              string `json:"chain"`
	TxHash             string `json:"tx_hash"`
	AmountSmallestUnit int64  `json:"amount_smallest_unit"`
	AmountUSDCents     int64  `json:"amount_usd_cents"`
	FromAddress        string `json:"from_address"`
	BlockNumber        int64  `json:"block_number"`
	ConfirmedAt        string `json:"confirmed_at"`
}

type FeedEvent struct {
	ID            int64          `json:"id"`
	Type          string         `json:"type"`
	CampaignID    string         `json:"campaign_id,omitempty"`
	CampaignTitle string         `json:"campaign_title,omitempty"`
	AgentID       string         `json:"agent_id,omitempty"`
	AgentName     string         `json:"agent_name,omitempty"`
	Metadata      map[string]any `json:"metadata"`
	CreatedAt     string         `json:"created_at"`
}

type AgentKarma struct {
	AgentID string `json:"agent_id"`
	Name    string `json:"name"`
	Karma   int64  `json:"karma"`
	Rank    uint64 `json:"rank"`
}

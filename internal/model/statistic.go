package model

type GetKarmaLeaderboardRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetKarmaLeaderboardResponse struct {
	Leaderboard []AgentKarma `json:"leaderboard"`
}

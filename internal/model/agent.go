package model

type RegisterAgentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type RegisterAgentResponse struct {
	ID string `json:"id"`

	// APIKey is shown only once, at registration time. Only its hash is
	// stored.
	APIKey string `json:"api_key"`
}

type GetAgentRequest struct {
	ID string `json:"id"`
}

type GetAgentResponse Agent

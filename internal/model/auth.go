package model

// AccessToken is the object embedded in creator session tokens.
type AccessToken struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type RequestMagicLinkRequest struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type RequestMagicLinkResponse struct{}

type VerifyMagicLinkRequest struct {
	Token string `json:"token"`
}

type VerifyMagicLinkResponse struct {
	AccessToken string  `json:"access_token"`
	Creator     Creator `json:"creator"`
}

type GetMeRequest struct{}

type GetMeResponse Creator

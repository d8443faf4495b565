package dto

// LoginRequest carries the identity the popup established through the
// Google sign-in flow. The OAuth handshake itself happens in the browser;
// the agent only exchanges its result with the backend.
type LoginRequest struct {
	UID               string `json:"uid" validate:"required"`
	Email             string `json:"email" validate:"required,email"`
	RegNo             string `json:"reg_no" validate:"required"`
	GoogleAccessToken string `json:"google_access_token" validate:"required"`
}

// LoginResponse is the backend auth exchange result.
type LoginResponse struct {
	Token string `json:"token"`
}

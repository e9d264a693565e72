package dto

// LoginRequest is the credential exchange. Username carries the email,
// matching the OAuth2 password-flow field name.
type LoginRequest struct {
	Username string `json:"username" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

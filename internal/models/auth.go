package models

// SignInRequest is the OAuth2 password-form body of /auth/signin.
type SignInRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func NewTokenResponse(token string) TokenResponse {
	return TokenResponse{AccessToken: token, TokenType: "bearer"}
}

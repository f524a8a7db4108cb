package identity

// TokenRequest carries the operator credentials.
type TokenRequest struct {
	Operator string `json:"operator" binding:"required"`
	Key      string `json:"key" binding:"required"`
}

// TokenResponse carries an access token.
type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}

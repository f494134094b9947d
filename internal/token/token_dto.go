package token

type ValidateRequest struct {
	UserID      string `json:"user_id" binding:"required"`
	AccessToken string `json:"access_token" binding:"required"`
}

type RefreshRequest struct {
	UserID       string `json:"user_id" binding:"required"`
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type ValidateResponse struct {
	Result string `json:"result"`
}

type PairResponse struct {
	UserID       string `json:"user_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	IssuedAt     int64  `json:"issued_at"`
}

package account

type RegisterRequest struct {
	UserID    string  `json:"user_id" binding:"required,max=50"`
	Name      string  `json:"name" binding:"required,max=255"`
	Password  string  `json:"password" binding:"required,min=8"`
	Role      string  `json:"role" binding:"omitempty,oneof=manager employee"`
	ManagerID *string `json:"manager_id"`
}

type LoginRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AccountResponse struct {
	UserID    string  `json:"user_id"`
	Name      string  `json:"name"`
	Role      string  `json:"role"`
	ManagerID *string `json:"manager_id,omitempty"`
}

type SessionResponse struct {
	Account      AccountResponse `json:"account"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	IssuedAt     int64           `json:"issued_at"`
}

package ledger

type SetBaseRequest struct {
	UserID string  `json:"user_id" binding:"required"`
	Salary float64 `json:"salary" binding:"required,gte=0"`
}

type SalaryResponse struct {
	UserID    string  `json:"user_id"`
	Balance   float64 `json:"balance"`
	UpdatedAt int64   `json:"updated_at"`
}

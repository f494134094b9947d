package punch

type RecordRequest struct {
	Kind      string `json:"type" binding:"required,oneof=in out"`
	Timestamp int64  `json:"time" binding:"required,gt=0"`
}

type QueryRequest struct {
	UserID string `form:"user_id"`
	Start  int64  `form:"start_time" binding:"required,gt=0"`
	End    int64  `form:"end_time" binding:"required,gtfield=Start"`
}

type ClockEventResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Kind      string `json:"type"`
	Timestamp int64  `json:"time"`
}

package anomaly

type ReportRequest struct {
	UserID string `form:"user_id"`
	Start  int64  `form:"start_time" binding:"required,gt=0"`
	End    int64  `form:"end_time" binding:"required,gtfield=Start"`
}

type RecordResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Kind       string `json:"type"`
	AnchorTime int64  `json:"time"`
	Duration   int64  `json:"duration"`
}

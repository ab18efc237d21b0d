package advance

type CreateAdvanceRequest struct {
	WorkerID string  `json:"worker_id" binding:"required,uuid"`
	Year     int     `json:"year" binding:"required,gte=2000,lte=2100"`
	Month    int     `json:"month" binding:"required,gte=1,lte=12"`
	Amount   float64 `json:"amount" binding:"required,gt=0,lte=1000000000"`
	Note     *string `json:"note" binding:"omitempty,max=255"`
}

type GetAdvancesFilterRequest struct {
	WorkerID string `form:"worker_id" binding:"omitempty,uuid"`
	Year     int    `form:"year" binding:"omitempty,gte=2000,lte=2100"`
	Month    int    `form:"month" binding:"omitempty,gte=1,lte=12"`
}

type AdvanceResponse struct {
	ID        string  `json:"id"`
	WorkerID  string  `json:"worker_id"`
	Year      int     `json:"year"`
	Month     int     `json:"month"`
	Amount    float64 `json:"amount"`
	Note      *string `json:"note,omitempty"`
	CreatedBy *string `json:"created_by,omitempty"`
	CreatedAt string  `json:"created_at"`
}

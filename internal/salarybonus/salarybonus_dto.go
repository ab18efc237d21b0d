package salarybonus

type UpsertSalaryBonusRequest struct {
	WorkerID     string   `json:"worker_id" binding:"required,uuid"`
	Year         int      `json:"year" binding:"required,gte=2000,lte=2100"`
	Month        int      `json:"month" binding:"required,gte=1,lte=12"`
	MonthlyBonus *float64 `json:"monthly_bonus" binding:"omitempty,gte=0,lte=1000000000"`
	LateBonus    *float64 `json:"late_bonus" binding:"omitempty,gte=0,lte=1000000000"`
}

type GetSalaryBonusesFilterRequest struct {
	WorkerID string `form:"worker_id" binding:"omitempty,uuid"`
	Year     int    `form:"year" binding:"omitempty,gte=2000,lte=2100"`
	Month    int    `form:"month" binding:"omitempty,gte=1,lte=12"`
}

type SalaryBonusResponse struct {
	ID           string  `json:"id"`
	WorkerID     string  `json:"worker_id"`
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	MonthlyBonus float64 `json:"monthly_bonus"`
	LateBonus    float64 `json:"late_bonus"`
	UpdatedAt    string  `json:"updated_at"`
}

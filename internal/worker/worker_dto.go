package worker

type CreateWorkerRequest struct {
	WorkerCode    string   `json:"worker_code" binding:"omitempty,max=20"`
	FullName      string   `json:"full_name" binding:"required,max=150"`
	Phone         *string  `json:"phone" binding:"omitempty,max=30"`
	DailySalary   *float64 `json:"daily_salary" binding:"required,gte=0,lte=1000000000"`
	MainSalary    *float64 `json:"main_salary" binding:"omitempty,gte=0,lte=1000000000"`
	EPFPercentage *float64 `json:"epf_percentage" binding:"omitempty,gte=0,lte=100"`
	ETFPercentage *float64 `json:"etf_percentage" binding:"omitempty,gte=0,lte=100"`
}

type UpdateWorkerRequest struct {
	FullName      string   `json:"full_name" binding:"required,max=150"`
	Phone         *string  `json:"phone" binding:"omitempty,max=30"`
	DailySalary   *float64 `json:"daily_salary" binding:"required,gte=0,lte=1000000000"`
	MainSalary    *float64 `json:"main_salary" binding:"omitempty,gte=0,lte=1000000000"`
	EPFPercentage *float64 `json:"epf_percentage" binding:"omitempty,gte=0,lte=100"`
	ETFPercentage *float64 `json:"etf_percentage" binding:"omitempty,gte=0,lte=100"`
	IsActive      *bool    `json:"is_active"`
}

type GetWorkersFilterRequest struct {
	ActiveOnly bool   `form:"active_only"`
	Search     string `form:"search" binding:"omitempty,max=100"`
}

type WorkerResponse struct {
	ID            string   `json:"id"`
	WorkerCode    string   `json:"worker_code"`
	FullName      string   `json:"full_name"`
	Phone         *string  `json:"phone,omitempty"`
	DailySalary   float64  `json:"daily_salary"`
	MainSalary    float64  `json:"main_salary"`
	EPFPercentage *float64 `json:"epf_percentage,omitempty"`
	ETFPercentage *float64 `json:"etf_percentage,omitempty"`
	IsActive      bool     `json:"is_active"`
	CreatedAt     string   `json:"created_at"`
}

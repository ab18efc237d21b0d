package settings

type UpdateSettingsRequest struct {
	EPFPercentage *float64 `json:"epf_percentage" binding:"required,gte=0,lte=100"`
	ETFPercentage *float64 `json:"etf_percentage" binding:"required,gte=0,lte=100"`
}

type SettingsResponse struct {
	EPFPercentage float64 `json:"epf_percentage"`
	ETFPercentage float64 `json:"etf_percentage"`
	// IsDefault is true while no row has been saved yet.
	IsDefault     bool    `json:"is_default"`
	UpdatedAt     *string `json:"updated_at,omitempty"`
}

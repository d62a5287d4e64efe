package policy

type PolicyResponse struct {
	ID                 string  `json:"id,omitempty"`
	Name               string  `json:"name"`
	StartTime          string  `json:"start_time"`
	EndTime            string  `json:"end_time"`
	GracePeriodMinutes int     `json:"grace_period_minutes"`
	HalfDayHours       float64 `json:"half_day_hours"`
	FullDayHours       float64 `json:"full_day_hours"`
	IsDefault          bool    `json:"is_default"`
}

package penalty

type PenaltyResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	AttendanceID string `json:"attendance_id"`
	Date         string `json:"date"`
	Type         string `json:"type"`
	Points       int    `json:"points"`
	Description  string `json:"description"`
	CreatedAt    string `json:"created_at"`
}

// PenaltySummaryResponse is the per-employee point aggregation, grouped by
// infraction type, optionally restricted to one "YYYY-MM" month.
type PenaltySummaryResponse struct {
	EmployeeID   string         `json:"employee_id"`
	Month        *string        `json:"month,omitempty"`
	PointsByType map[string]int `json:"points_by_type"`
	TotalPoints  int            `json:"total_points"`
}

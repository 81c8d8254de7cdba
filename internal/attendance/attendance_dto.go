package attendance

type ClockInRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Notes      string `json:"notes"`
}

type ClockOutRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
}

type AttendanceResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	ClockIn    string `json:"clock_in,omitempty"`
	ClockOut   string `json:"clock_out,omitempty"`
	Status     string `json:"status"`
	Notes      string `json:"notes,omitempty"`
}

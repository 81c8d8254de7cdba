package leave

type CreateLeaveRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	LeaveType  string `json:"leave_type" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	Reason     string `json:"reason"`
	ProofPath  string `json:"proof_path"`
}

type LeaveResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	LeaveType  string `json:"leave_type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	TotalDays  int    `json:"total_days"`
	Reason     string `json:"reason"`
	ProofPath  string `json:"proof_path,omitempty"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

type CreateQuotaRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Year       int    `json:"year" binding:"required,min=2000"`
	QuotaType  string `json:"quota_type" binding:"required"`
	TotalQuota int    `json:"total_quota" binding:"required,min=0"`
}

type UpdateQuotaRequest struct {
	TotalQuota int `json:"total_quota" binding:"min=0"`
}

type QuotaResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	QuotaType  string `json:"quota_type"`
	TotalQuota int    `json:"total_quota"`
	UsedQuota  int    `json:"used_quota"`
	Remaining  int    `json:"remaining"`
}

package salary

import "github.com/shopspring/decimal"

type CreateSalaryRequest struct {
	EmployeeID          string           `json:"employee_id" binding:"required,uuid"`
	BasicSalary         decimal.Decimal  `json:"basic_salary" binding:"required"`
	PositionAllowance   *decimal.Decimal `json:"position_allowance"`
	ManagementAllowance *decimal.Decimal `json:"management_allowance"`
	PhoneAllowance      *decimal.Decimal `json:"phone_allowance"`
	IncentiveAllowance  *decimal.Decimal `json:"incentive_allowance"`
	OvertimeAllowance   *decimal.Decimal `json:"overtime_allowance"`
}

type UpdateSalaryRequest struct {
	BasicSalary         decimal.Decimal  `json:"basic_salary" binding:"required"`
	PositionAllowance   *decimal.Decimal `json:"position_allowance"`
	ManagementAllowance *decimal.Decimal `json:"management_allowance"`
	PhoneAllowance      *decimal.Decimal `json:"phone_allowance"`
	IncentiveAllowance  *decimal.Decimal `json:"incentive_allowance"`
	OvertimeAllowance   *decimal.Decimal `json:"overtime_allowance"`
}

type SalaryResponse struct {
	ID                  string           `json:"id"`
	EmployeeID          string           `json:"employee_id"`
	BasicSalary         decimal.Decimal  `json:"basic_salary"`
	PositionAllowance   *decimal.Decimal `json:"position_allowance"`
	ManagementAllowance *decimal.Decimal `json:"management_allowance"`
	PhoneAllowance      *decimal.Decimal `json:"phone_allowance"`
	IncentiveAllowance  *decimal.Decimal `json:"incentive_allowance"`
	OvertimeAllowance   *decimal.Decimal `json:"overtime_allowance"`
	TotalAllowances     decimal.Decimal  `json:"total_allowances"`
	CreatedAt           string           `json:"created_at"`
	UpdatedAt           string           `json:"updated_at"`
}

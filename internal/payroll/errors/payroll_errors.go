package payrollerrors

import (
	"net/http"

	"github.com/AlfahrezaRico/backend/internal/shared/apperror"
)

var (
	ErrSalaryNotFound = apperror.New(
		apperror.CodeNotFound,
		"no salary record for this employee",
		http.StatusNotFound,
	)
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll record not found",
		http.StatusNotFound,
	)
	ErrComponentNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll component not found",
		http.StatusNotFound,
	)
	ErrDuplicateMonth = apperror.New(
		apperror.CodeConflict,
		"a payroll already exists for this employee in this month",
		http.StatusConflict,
	)
	ErrComponentNameTaken = apperror.New(
		apperror.CodeConflict,
		"a payroll component with this name already exists",
		http.StatusConflict,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"monetary amounts must be valid non-negative decimals",
		http.StatusBadRequest,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"payroll status transition not allowed",
		http.StatusBadRequest,
	)
)

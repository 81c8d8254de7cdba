package salaryerrors

import (
	"net/http"

	"github.com/AlfahrezaRico/backend/internal/shared/apperror"
)

var (
	ErrSalaryNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary record not found",
		http.StatusNotFound,
	)
	ErrSalaryExists = apperror.New(
		apperror.CodeConflict,
		"a salary record already exists for this employee",
		http.StatusConflict,
	)
	ErrInvalidBasicSalary = apperror.New(
		apperror.CodeInvalidInput,
		"basic_salary must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInvalidAllowance = apperror.New(
		apperror.CodeInvalidInput,
		"allowances must not be negative",
		http.StatusBadRequest,
	)
)

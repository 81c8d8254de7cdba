package employeeerrors

import (
	"net/http"

	"github.com/AlfahrezaRico/backend/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"an employee with this email already exists",
		http.StatusConflict,
	)
	ErrNikTaken = apperror.New(
		apperror.CodeConflict,
		"an employee with this nik already exists",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"employee_id must be a valid uuid",
		http.StatusBadRequest,
	)
	ErrInvalidHireDate = apperror.New(
		apperror.CodeInvalidInput,
		"hire_date must be formatted as YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidImportFile = apperror.New(
		apperror.CodeInvalidInput,
		"import file is not a readable xlsx workbook",
		http.StatusBadRequest,
	)
)

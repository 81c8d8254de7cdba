package nikerrors

import (
	"net/http"

	"github.com/AlfahrezaRico/backend/internal/shared/apperror"
)

var (
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid department id",
		http.StatusBadRequest,
	)
	ErrConfigNotFound = apperror.New(
		apperror.CodeNotFound,
		"nik configuration not found",
		http.StatusNotFound,
	)
	ErrNotConfigured = apperror.New(
		apperror.CodeNotConfigured,
		"no active nik configuration for this department or the default department",
		http.StatusUnprocessableEntity,
	)
	ErrConfigAlreadyActive = apperror.New(
		apperror.CodeConflict,
		"an active nik configuration already exists for this department",
		http.StatusConflict,
	)
	ErrInvalidStartSequence = apperror.New(
		apperror.CodeInvalidInput,
		"start_sequence must be at least 1",
		http.StatusBadRequest,
	)
)

package leaveerrors

import (
	"net/http"

	"github.com/AlfahrezaRico/backend/internal/shared/apperror"
)

var (
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrQuotaNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave quota not found for this employee, year, and type",
		http.StatusNotFound,
	)
	ErrQuotaExists = apperror.New(
		apperror.CodeConflict,
		"a quota already exists for this employee, year, and type",
		http.StatusConflict,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"end_date must not be before start_date",
		http.StatusBadRequest,
	)
	ErrStartDateInPast = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must not be in the past",
		http.StatusBadRequest,
	)
	ErrOverlappingRequest = apperror.New(
		apperror.CodeConflict,
		"an existing pending or approved leave overlaps this date range",
		http.StatusConflict,
	)
	ErrQuotaExceeded = apperror.New(
		apperror.CodeInvalidState,
		"remaining annual leave quota is not enough for this request",
		http.StatusBadRequest,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"leave status transition not allowed",
		http.StatusBadRequest,
	)
)

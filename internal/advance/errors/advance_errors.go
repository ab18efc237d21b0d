package advanceerrors

import (
	"net/http"

	"dairy-erp/internal/shared/apperror"
)

var (
	ErrInvalidAdvanceID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid advance id",
		http.StatusBadRequest,
	)
	ErrAdvanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"advance not found",
		http.StatusNotFound,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"advance amount must be greater than zero",
		http.StatusBadRequest,
	)
)

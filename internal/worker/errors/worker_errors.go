package workererrors

import (
	"net/http"

	"dairy-erp/internal/shared/apperror"
)

var (
	ErrInvalidWorkerID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid worker id",
		http.StatusBadRequest,
	)
	ErrWorkerNotFound = apperror.New(
		apperror.CodeNotFound,
		"worker not found",
		http.StatusNotFound,
	)
	ErrWorkerCodeExists = apperror.New(
		apperror.CodeConflict,
		"worker code already exists",
		http.StatusConflict,
	)
	ErrInvalidSalary = apperror.New(
		apperror.CodeInvalidInput,
		"salary values cannot be negative",
		http.StatusBadRequest,
	)
	ErrInvalidPercentage = apperror.New(
		apperror.CodeInvalidInput,
		"epf/etf percentage must be between 0 and 100",
		http.StatusBadRequest,
	)
)

package salarybonuserrors

import (
	"net/http"

	"dairy-erp/internal/shared/apperror"
)

var ErrInvalidBonus = apperror.New(
	apperror.CodeInvalidInput,
	"bonus values cannot be negative",
	http.StatusBadRequest,
)

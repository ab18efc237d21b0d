package settingserrors

import (
	"net/http"

	"dairy-erp/internal/shared/apperror"
)

var ErrInvalidPercentage = apperror.New(
	apperror.CodeInvalidInput,
	"epf/etf percentage must be between 0 and 100",
	http.StatusBadRequest,
)

package quotaerrors

import (
	"net/http"

	"go-school/internal/shared/apperror"
)

var (
	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"quota role must be student or teacher",
		http.StatusBadRequest,
	)
	ErrNegativeQuota = apperror.New(
		apperror.CodeInvalidInput,
		"quota values must not be negative",
		http.StatusBadRequest,
	)
)

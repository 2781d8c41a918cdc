package balanceerrors

import (
	"net/http"

	"go-school/internal/shared/apperror"
)

var (
	ErrInvalidApplicant = apperror.New(
		apperror.CodeInvalidInput,
		"applicant id is required",
		http.StatusBadRequest,
	)
	ErrNegativeBalance = apperror.New(
		apperror.CodeInvalidInput,
		"balance values must not be negative",
		http.StatusBadRequest,
	)
)

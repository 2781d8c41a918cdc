package leaveerrors

import (
	"fmt"
	"net/http"

	"go-school/internal/shared/apperror"
)

var (
	ErrInvalidApplicant = apperror.New(
		apperror.CodeInvalidInput,
		"applicant id is required",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave id",
		http.StatusBadRequest,
	)
	ErrInvalidDecision = apperror.New(
		apperror.CodeInvalidInput,
		"decision must be approved or rejected",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave not found",
		http.StatusNotFound,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"only pending leave can be reviewed",
		http.StatusConflict,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInsufficientBalance,
		"insufficient leave balance",
		http.StatusConflict,
	)
)

// InsufficientBalanceError tells the applicant how many days are left for
// the requested leave type.
type InsufficientBalanceError struct {
	LeaveType string
	Remaining int
	Requested int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient %s balance: remaining %d, requested %d", e.LeaveType, e.Remaining, e.Requested)
}

func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

func (e *InsufficientBalanceError) AppError() *apperror.AppError {
	return ErrInsufficientBalance
}

func (e *InsufficientBalanceError) Details() any {
	return map[string]any{
		"leave_type": e.LeaveType,
		"remaining":  e.Remaining,
		"requested":  e.Requested,
	}
}

package apperror

import (
	"errors"
	"net/http"
)

// HTTPError is the transport view of an error, rendered by response.Error.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// DetailedError is implemented by errors that carry structured details for the client.
type DetailedError interface {
	error
	AppError() *AppError
	Details() any
}

// ToHTTP maps any error returned by a service to its HTTP representation.
// Unknown errors never leak their message.
func ToHTTP(err error) HTTPError {
	var detailed DetailedError
	if errors.As(err, &detailed) {
		appErr := detailed.AppError()
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: detailed.Details(),
		}
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}

	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    ErrInternal.Code,
		Message: ErrInternal.Message,
	}
}

package http

import (
	"errors"
	"net/http"

	"deliveryportal/internal/core/application/usecases/queries"
	"deliveryportal/internal/core/domain/model/order"
	"deliveryportal/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps application errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, order.ErrOrderValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, order.ErrIllegalTransition), errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, queries.ErrStatsUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError renders err. Internal failures are not described to the caller.
func respondError(c echo.Context, err error) error {
	code := statusFor(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal error"
	}
	if code == http.StatusServiceUnavailable {
		message = queries.ErrStatsUnavailable.Error()
	}
	body := Error{Code: code, Message: message}
	var validation *order.ValidationError
	if errors.As(err, &validation) {
		body.Reason = string(validation.Reason)
	}
	return c.JSON(code, body)
}

// errorHandler renders errors escaping the handlers, such as unknown routes
// and parameter binding failures, in the same shape as handler errors.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(code)
		}
	}

	_ = c.JSON(code, Error{Code: code, Message: message})
}

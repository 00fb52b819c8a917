package http

import (
	"errors"
	"net/http"

	"distribution/internal/core/domain/model/inventory"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// respondError maps domain and application errors onto HTTP statuses:
// validation failures are 400, missing objects 404, illegal stage
// transitions 409, stock shortfalls 422, and lock contention 503.
func respondError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, order.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, inventory.ErrInsufficientStock):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrLockContention):
		status = http.StatusServiceUnavailable
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"themepark/internal/domain/entities"
	"themepark/internal/services"
)

// Error codes returned alongside the message in every error body.
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeInvalidPath      = "INVALID_PATH"
	CodeRideNotFound     = "RIDE_NOT_FOUND"
	CodeEmployeeNotFound = "EMPLOYEE_NOT_FOUND"
	CodeNoOperator       = "NO_OPERATOR"
	CodeQueueEmpty       = "QUEUE_EMPTY"
	CodeHistoryEmpty     = "HISTORY_EMPTY"
	CodeFileOperation    = "FILE_OPERATION_FAILED"
	CodeInternalError    = "INTERNAL_ERROR"
)

// statusFor maps a service error onto an HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrRideNotFound):
		return http.StatusNotFound, CodeRideNotFound
	case errors.Is(err, services.ErrEmployeeNotFound):
		return http.StatusNotFound, CodeEmployeeNotFound
	case errors.Is(err, entities.ErrNoOperator):
		return http.StatusConflict, CodeNoOperator
	case errors.Is(err, entities.ErrQueueEmpty):
		return http.StatusConflict, CodeQueueEmpty
	case errors.Is(err, entities.ErrHistoryEmpty):
		return http.StatusConflict, CodeHistoryEmpty
	case errors.Is(err, services.ErrInvalidPath):
		return http.StatusBadRequest, CodeInvalidPath
	case errors.Is(err, entities.ErrFileOperation):
		return http.StatusUnprocessableEntity, CodeFileOperation
	case errors.Is(err, entities.ErrInvalidAge),
		errors.Is(err, entities.ErrInvalidTickets),
		errors.Is(err, entities.ErrInvalidMaxRider),
		errors.Is(err, entities.ErrBlankName),
		errors.Is(err, entities.ErrNilVisitor):
		return http.StatusBadRequest, CodeInvalidRequest
	default:
		return http.StatusInternalServerError, CodeInternalError
	}
}

// writeError writes err as {"error": ..., "code": ...}. Internal errors are
// recorded on the context for the request logger and hidden from the client.
func writeError(c *gin.Context, err error) {
	status, code := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		msg = "internal server error"
	}
	c.JSON(status, gin.H{"error": msg, "code": code})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": CodeInvalidRequest})
}

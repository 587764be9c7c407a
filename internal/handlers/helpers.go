package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "github.com/piyush-pb/Personal-Finance-Tracker/internal/errors"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/validator"
)

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Fields  []apperrors.FieldError `json:"fields,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// SuccessResponse is returned by delete endpoints.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, message and field errors.
// Otherwise it returns a generic internal server error. The error is also
// attached to the context so ErrorHandler can log and report it.
func respondWithError(c *gin.Context, err error) {
	_ = c.Error(err)

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.ErrInternalServer
	}

	c.JSON(appErr.StatusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    appErr.Code,
			Message: appErr.Message,
			Fields:  appErr.Fields,
		},
	})
}

// bindJSON decodes the request body into dst. Type mismatches and malformed
// JSON become ErrInvalidInput.
func bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		if fields := validator.FieldErrors(err); len(fields) > 0 {
			return apperrors.WithFields(apperrors.ErrInvalidInput, fields)
		}
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid JSON body")
	}
	return nil
}

// queryError converts a query binding failure into ErrInvalidInput.
func queryError(err error) error {
	if fields := validator.FieldErrors(err); len(fields) > 0 {
		return apperrors.WithFields(apperrors.ErrInvalidInput, fields)
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid query parameters")
}

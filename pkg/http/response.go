package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// JSONResponse writes data with the given status.
func JSONResponse(c echo.Context, statusCode int, data interface{}) error {
	return c.JSON(statusCode, data)
}

// SuccessResponse writes a 200 response.
func SuccessResponse(c echo.Context, data interface{}) error {
	return JSONResponse(c, http.StatusOK, data)
}

// ErrorResponse writes an ErrorBody.
func ErrorResponse(c echo.Context, statusCode int, code, message string) error {
	return JSONResponse(c, statusCode, ErrorBody{Error: code, Message: message})
}

// ValidationErrorResponse writes a 400 with validation details.
func ValidationErrorResponse(c echo.Context, details []ValidationError) error {
	msg := "invalid request"
	if len(details) > 0 && details[0].Message != "" {
		msg = details[0].Message
	}
	return JSONResponse(c, http.StatusBadRequest, ErrorBody{
		Error:   CodeInvalidRequest,
		Message: msg,
		Details: details,
	})
}

// InternalServerErrorResponse writes internal server error.
func InternalServerErrorResponse(c echo.Context) error {
	return ErrorResponse(c, http.StatusInternalServerError, CodeInternal, "Something went wrong")
}

// AppErrorResponse writes application error response.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return ErrorResponse(c, appErr.Status, appErr.Code, appErr.Message)
	}
	return InternalServerErrorResponse(c)
}

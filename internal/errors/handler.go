package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"meetconnect/internal/logger"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that renders every
// failure as an ErrorResponse.
func NewHTTPErrorHandler(exposeInternal bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := render(err, exposeInternal)
		if status >= http.StatusInternalServerError {
			logger.Log.Errorw("request failed",
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"error", err,
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.Log.Warnw("failed to write error response", "error", err)
		}
	}
}

func render(err error, exposeInternal bool) (int, ErrorResponse) {
	var httpErr *echo.HTTPError
	if stderrors.As(err, &httpErr) {
		// The JWT middleware wraps our own errors inside echo errors.
		if inner, ok := httpErr.Internal.(*Error); ok {
			return inner.StatusCode(), inner.ToErrorResponse(exposeInternal)
		}
		if inner, ok := httpErr.Message.(*Error); ok {
			return inner.StatusCode(), inner.ToErrorResponse(exposeInternal)
		}
		resp := ErrorResponse{Success: false, Message: http.StatusText(httpErr.Code)}
		if msg, ok := httpErr.Message.(string); ok && msg != "" {
			resp.Message = msg
		} else if httpErr.Message != nil {
			resp.Message = fmt.Sprint(httpErr.Message)
		}
		if exposeInternal && httpErr.Internal != nil {
			resp.Error = httpErr.Internal.Error()
		}
		return httpErr.Code, resp
	}

	appErr := MapError(err)
	return appErr.StatusCode(), appErr.ToErrorResponse(exposeInternal)
}

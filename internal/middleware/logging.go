package middleware

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// RequestLogger writes one structured entry per request.
func RequestLogger(log *zap.SugaredLogger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:       true,
		LogURI:          true,
		LogMethod:       true,
		LogLatency:      true,
		LogRequestID:    true,
		LogRemoteIP:     true,
		LogResponseSize: true,
		LogError:        true,
		HandleError:     true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []any{
				"request_id", v.RequestID,
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
				"response_size", v.ResponseSize,
			}
			if v.Error != nil {
				log.Warnw("request", append(fields, "error", v.Error.Error())...)
				return nil
			}
			log.Infow("request", fields...)
			return nil
		},
	})
}

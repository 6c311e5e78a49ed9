package server

import (
	"time"

	"github.com/existflow/taskapi/internal/logger"
	"github.com/labstack/echo/v4"
)

// requestLogger logs one line per request once the response is written
func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		req := c.Request()

		err := next(c)
		if err != nil {
			// run the error handler now so the logged status is the final one
			c.Error(err)
		}

		res := c.Response()
		fields := []logger.Field{
			logger.F("request_id", res.Header().Get(echo.HeaderXRequestID)),
			logger.F("method", req.Method),
			logger.F("uri", req.RequestURI),
			logger.F("status", res.Status),
			logger.F("size", res.Size),
			logger.F("duration", time.Since(start).String()),
		}

		switch {
		case res.Status >= 500:
			logger.Error("HTTP Response", fields...)
		case res.Status >= 400:
			logger.Warn("HTTP Response", fields...)
		default:
			logger.Info("HTTP Response", fields...)
		}
		return nil
	}
}

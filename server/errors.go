package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/existflow/taskapi/internal/db"
	"github.com/existflow/taskapi/internal/logger"
	"github.com/existflow/taskapi/internal/validate"
	"github.com/labstack/echo/v4"
)

// errorResponse is the body of every 4xx that carries one
type errorResponse struct {
	Error  string                `json:"error"`
	Fields []validate.FieldError `json:"fields,omitempty"`
}

// problem is the body of a 500
type problem struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// handleError maps handler errors to responses
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		verr *validate.Error
		berr *echo.BindingError
		herr *echo.HTTPError
	)

	switch {
	case errors.Is(err, db.ErrNotFound):
		s.respond(c, http.StatusNotFound, nil)

	case errors.Is(err, db.ErrInvalidProject):
		ref := validate.Referential("projectId")
		s.respond(c, http.StatusBadRequest, errorResponse{Error: "invalid projectId", Fields: ref.Fields})

	case errors.As(err, &verr):
		s.respond(c, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: verr.Fields})

	case errors.As(err, &berr):
		s.respond(c, http.StatusBadRequest, errorResponse{
			Error: "invalid query parameter",
			Fields: []validate.FieldError{{
				Field:   berr.Field,
				Kind:    validate.KindInvalid,
				Message: fmt.Sprintf("%s has an invalid value", berr.Field),
			}},
		})

	case errors.As(err, &herr):
		switch herr.Code {
		case http.StatusNotFound:
			s.respond(c, http.StatusNotFound, nil)
		case http.StatusBadRequest:
			s.respond(c, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %v", herr.Message)})
		default:
			if herr.Code >= http.StatusInternalServerError {
				s.internalError(c, err)
				return
			}
			s.respond(c, herr.Code, errorResponse{Error: fmt.Sprint(herr.Message)})
		}

	default:
		s.internalError(c, err)
	}
}

func (s *Server) internalError(c echo.Context, err error) {
	logger.Error("Unhandled error",
		logger.F("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		logger.F("method", c.Request().Method),
		logger.F("uri", c.Request().RequestURI),
		logger.F("error", err))

	body := problem{
		Title:  "unexpected error",
		Status: http.StatusInternalServerError,
	}
	if s.opts.ExposeErrors {
		body.Detail = err.Error()
	}
	s.respond(c, http.StatusInternalServerError, body)
}

// respond writes body as JSON, or no body when body is nil or the request is HEAD
func (s *Server) respond(c echo.Context, code int, body any) {
	var err error
	if body == nil || c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, body)
	}
	if err != nil {
		logger.Warn("Failed to write error response", logger.F("error", err))
	}
}

package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/examdesk/internal/common"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func classify(err error) (int, string, string) {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		msg, ok := he.Message.(string)
		if !ok {
			msg = http.StatusText(he.Code)
		}
		return he.Code, "http", msg
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest, "validation", err.Error()
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "not_found", common.ErrorNotFound.Error()
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, "unauthorized", common.ErrorUnauthorized.Error()
	}
	return http.StatusInternalServerError, "internal", common.ErrorInternal.Error()
}

func (s *Server) errorHandler(err error, c echo.Context) {
	code, typ, msg := classify(err)
	if code >= http.StatusInternalServerError {
		s.logger.Error(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
	}

	if c.Response().Committed {
		return
	}
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, ErrorBody{Type: typ, Message: msg, Code: code})
	}
	if err != nil {
		s.logger.Warn(c.Request().Context(), "error response not written", "error", err)
	}
}

package httpapi

import (
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func (s *Server) document(c echo.Context) error {
	doc, content, err := s.documents.Open(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", doc.Filename))
	return c.Blob(http.StatusOK, "application/pdf", content)
}

func (s *Server) webhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable body").SetInternal(err)
	}
	if err := s.webhooks.HandleWebhook(c.Request().Context(), body, c.Request().Header.Get(SignatureHeader)); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

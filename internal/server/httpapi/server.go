// Package httpapi is the plain HTTP edge: the payment gateway webhook,
// document download and a health probe.
package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dmitrijs2005/examdesk/internal/logging"
	"github.com/dmitrijs2005/examdesk/internal/server/models"
)

// SignatureHeader carries the webhook HMAC.
const SignatureHeader = "X-Razorpay-Signature"

// maxWebhookBody bounds what the gateway may post.
const maxWebhookBody = "1M"

type Documents interface {
	Open(ctx context.Context, id string) (*models.Document, []byte, error)
}

type Webhooks interface {
	HandleWebhook(ctx context.Context, body []byte, signature string) error
}

type Server struct {
	address   string
	app       *echo.Echo
	documents Documents
	webhooks  Webhooks
	logger    logging.Logger
}

func NewServer(address string, l logging.Logger, docs Documents, hooks Webhooks) *Server {
	s := &Server{
		address:   address,
		app:       echo.New(),
		documents: docs,
		webhooks:  hooks,
		logger:    l.With("module", "http_server"),
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	s.app.HideBanner = true
	s.app.HidePort = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.Recover())
	s.app.Use(middleware.RequestID())
	s.app.Use(requestAttrs)
	s.app.HTTPErrorHandler = s.errorHandler

	s.app.GET("/healthz", s.health)
	s.app.GET("/documents/:id", s.document)
	s.app.POST("/payments/webhook", s.webhook, middleware.BodyLimit(maxWebhookBody))
}

// requestAttrs tags the request context so handler logs carry the request id.
func requestAttrs(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		ctx := logging.WithAttrs(req.Context(),
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			"path", req.URL.Path)
		c.SetRequest(req.WithContext(ctx))
		return next(c)
	}
}

// Run serves until ctx is done, then shuts down.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping HTTP server...")
		_ = s.app.Shutdown(context.Background())
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
	if err := s.app.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.app.ServeHTTP(w, r)
}

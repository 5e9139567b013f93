// Package server wires the ExamDesk server: database, Redis, object storage,
// the payment gateway, the services and both network edges.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/examdesk/internal/logging"
	"github.com/dmitrijs2005/examdesk/internal/pdfdoc"
	"github.com/dmitrijs2005/examdesk/internal/server/config"
	"github.com/dmitrijs2005/examdesk/internal/server/gateway"
	"github.com/dmitrijs2005/examdesk/internal/server/httpapi"
	"github.com/dmitrijs2005/examdesk/internal/server/kv"
	"github.com/dmitrijs2005/examdesk/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/examdesk/internal/server/services"
	"github.com/dmitrijs2005/examdesk/internal/server/storage"

	gs "github.com/dmitrijs2005/examdesk/internal/server/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	rdb    *redis.Client
	grpc   *gs.GRPCServer
	http   *httpapi.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	db, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	rdb, err := kv.Open(ctx, c.RedisAddr, c.RedisPassword, c.RedisDB)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("redis init error: %w", err)
	}

	app := &App{config: c, logger: logger, db: db, rdb: rdb}
	if err := app.init(ctx, rm); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

func (app *App) init(ctx context.Context, rm repomanager.RepositoryManager) error {
	c := app.config

	st, err := storage.NewS3Storage(ctx, c)
	if err != nil {
		return fmt.Errorf("storage init error: %w", err)
	}

	var logo []byte
	if c.LogoPath != "" {
		if logo, err = os.ReadFile(c.LogoPath); err != nil {
			return fmt.Errorf("logo: %w", err)
		}
	}
	gen := pdfdoc.NewGenerator(pdfdoc.DefaultLayout(), logo)

	gw := gateway.NewClient(c.GatewayBaseURL, c.GatewayKeyID, c.GatewayKeySecret, c.GatewayWebhookSecret, c.GatewayTimeout)
	sessions := kv.NewSessionStore(app.rdb, c.SessionTTL)
	limiter := kv.NewLimiter(app.rdb, c.OrderRateLimit, c.OrderRateWindow, "ratelimit:orders:")

	docs := services.NewDocumentService(app.db, rm, st, gen, app.logger)
	admin := services.NewAdminService(app.db, rm, c, docs, app.logger)
	if c.BootstrapAdminUser != "" {
		if err := admin.EnsureAdmin(ctx, c.BootstrapAdminUser, c.BootstrapAdminPassword); err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
	}

	svc := gs.Services{
		Registration: services.NewRegistrationService(app.db, rm, c, sessions, limiter, gw, st, docs, app.logger),
		Exams:        services.NewExamService(app.db, rm, c, app.logger),
		Progress:     services.NewProgressService(app.db, rm, c, kv.NewProgressStore(app.rdb), app.logger),
		Catalog:      services.NewCatalogService(app.db, rm),
		Admin:        admin,
	}

	app.grpc = gs.NewGRPCServer(c.EndpointAddrGRPC, app.logger, svc, c.SecretKey)
	app.http = httpapi.NewServer(c.EndpointAddrHTTP, app.logger, docs, services.NewPaymentService(app.db, rm, gw, app.logger))
	return nil
}

// Run serves both edges until a signal arrives or one of them fails.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.grpc.Run(ctx) })
	g.Go(func() error { return app.http.Run(ctx) })

	err := g.Wait()
	app.logger.Info(context.Background(), "App stopped")
	return err
}

func (app *App) Close() {
	if app.rdb != nil {
		_ = app.rdb.Close()
	}
	if app.db != nil {
		_ = app.db.Close()
	}
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/harborview-hotels/frontdesk-backend/api/routes"
	"github.com/harborview-hotels/frontdesk-backend/internal/auth"
	booking "github.com/harborview-hotels/frontdesk-backend/internal/bookings"
	export "github.com/harborview-hotels/frontdesk-backend/internal/exports"
	"github.com/harborview-hotels/frontdesk-backend/internal/frontdesk"
	guest "github.com/harborview-hotels/frontdesk-backend/internal/guests"
	"github.com/harborview-hotels/frontdesk-backend/internal/mailer"
	payment "github.com/harborview-hotels/frontdesk-backend/internal/payments"
	report "github.com/harborview-hotels/frontdesk-backend/internal/reports"
	room "github.com/harborview-hotels/frontdesk-backend/internal/rooms"
	"github.com/harborview-hotels/frontdesk-backend/internal/staff"
	"github.com/harborview-hotels/frontdesk-backend/pkg/auth/session"
	"github.com/harborview-hotels/frontdesk-backend/pkg/clock"
	"github.com/harborview-hotels/frontdesk-backend/pkg/config"
	"github.com/harborview-hotels/frontdesk-backend/pkg/db"
	"github.com/harborview-hotels/frontdesk-backend/pkg/logger"
	"github.com/harborview-hotels/frontdesk-backend/pkg/metrics"
	"github.com/harborview-hotels/frontdesk-backend/pkg/migrate"
	"github.com/harborview-hotels/frontdesk-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	clk := clock.System()
	conn := dbClient.DB()
	roomRepo := room.NewRepository(conn)
	guestRepo := guest.NewRepository(conn)
	bookingRepo := booking.NewRepository(conn)
	checkInRepo := frontdesk.NewRepository(conn)
	paymentRepo := payment.NewRepository(conn)
	reportRepo := report.NewRepository(conn)

	outboundMailer, err := mailer.FromConfig(cfg.Mail, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create mail transport", err)
		os.Exit(1)
	}
	notifier, err := mailer.NewNotifier(outboundMailer, cfg.Hotel.Name)
	if err != nil {
		logg.Error(context.Background(), "failed to create booking notifier", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		Staff:         staff.NewRepository(conn),
		Sessions:      sessionManager,
		Limiter:       redisClient,
		JWT:           cfg.JWT,
		AuthRateLimit: cfg.AuthRateLimit,
		Password:      cfg.Password,
		Logger:        logg,
		Clock:         clk,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	roomService, err := room.NewService(roomRepo, clk)
	if err != nil {
		logg.Error(context.Background(), "failed to create room service", err)
		os.Exit(1)
	}

	guestService, err := guest.NewService(guestRepo, clk)
	if err != nil {
		logg.Error(context.Background(), "failed to create guest service", err)
		os.Exit(1)
	}

	bookingService, err := booking.NewService(bookingRepo, roomRepo, guestRepo, clk)
	if err != nil {
		logg.Error(context.Background(), "failed to create booking service", err)
		os.Exit(1)
	}

	deskService, err := frontdesk.NewService(frontdesk.ServiceParams{
		DBClient: dbClient,
		CheckIns: checkInRepo,
		Rooms:    roomRepo,
		Bookings: bookingRepo,
		Guests:   guestService,
		Notifier: notifier,
		Logger:   logg,
		Clock:    clk,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create front-desk service", err)
		os.Exit(1)
	}

	paymentService, err := payment.NewService(dbClient, paymentRepo, bookingRepo, logg, clk)
	if err != nil {
		logg.Error(context.Background(), "failed to create payment service", err)
		os.Exit(1)
	}

	reportService, err := report.NewService(reportRepo, roomRepo, checkInRepo, clk)
	if err != nil {
		logg.Error(context.Background(), "failed to create report service", err)
		os.Exit(1)
	}

	exportService, err := export.NewService(bookingRepo, paymentRepo, clk)
	if err != nil {
		logg.Error(context.Background(), "failed to create export service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			httpMetrics,
			sessionManager,
			authService,
			roomService,
			guestService,
			bookingService,
			deskService,
			paymentService,
			reportService,
			exportService,
		),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutting down api server")
		graceCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(graceCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
